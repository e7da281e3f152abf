package models

import (
	"gorm.io/datatypes"
)

// Media entity origins. A post carries media under both "entities" and
// "extended_entities"; rows record which section they came from.
const (
	MediaOriginEntities = "entities"
	MediaOriginExtended = "extended"
)

// PostHashtag is a hashtag attached to a post. Attached entities have no
// natural primary key in the export, so re-imports perform
// existence-checked inserts over all scalar fields.
type PostHashtag struct {
	ID         int64  `gorm:"primaryKey;autoIncrement;column:id"`
	PostID     string `gorm:"type:varchar(64);not null;index:roost_post_hashtags_post;column:post_id"`
	Text       string `gorm:"type:varchar(256);not null;column:text"`
	StartIndex *int64 `gorm:"column:start_index"`
	EndIndex   *int64 `gorm:"column:end_index"`
}

// TableName specifies the table name for PostHashtag
func (PostHashtag) TableName() string {
	return "post_hashtags"
}

// PostSymbol is a cashtag/symbol attached to a post.
type PostSymbol struct {
	ID         int64  `gorm:"primaryKey;autoIncrement;column:id"`
	PostID     string `gorm:"type:varchar(64);not null;index:roost_post_symbols_post;column:post_id"`
	Text       string `gorm:"type:varchar(64);not null;column:text"`
	StartIndex *int64 `gorm:"column:start_index"`
	EndIndex   *int64 `gorm:"column:end_index"`
}

// TableName specifies the table name for PostSymbol
func (PostSymbol) TableName() string {
	return "post_symbols"
}

// PostMention is a user mention attached to a post.
type PostMention struct {
	ID         int64   `gorm:"primaryKey;autoIncrement;column:id"`
	PostID     string  `gorm:"type:varchar(64);not null;index:roost_post_mentions_post;column:post_id"`
	UserID     *string `gorm:"type:varchar(64);column:user_id"`
	UserIDStr  *string `gorm:"type:varchar(64);column:user_id_str"`
	Name       string  `gorm:"type:varchar(128);not null;column:name"`
	ScreenName string  `gorm:"type:varchar(64);not null;column:screen_name"`
	StartIndex *int64  `gorm:"column:start_index"`
	EndIndex   *int64  `gorm:"column:end_index"`
}

// TableName specifies the table name for PostMention
func (PostMention) TableName() string {
	return "post_mentions"
}

// PostURL is a URL attached to a post.
type PostURL struct {
	ID          int64  `gorm:"primaryKey;autoIncrement;column:id"`
	PostID      string `gorm:"type:varchar(64);not null;index:roost_post_urls_post;column:post_id"`
	URL         string `gorm:"type:varchar(1024);not null;column:url"`
	ExpandedURL string `gorm:"type:varchar(2048);not null;column:expanded_url"`
	DisplayURL  string `gorm:"type:varchar(1024);not null;column:display_url"`
	StartIndex  *int64 `gorm:"column:start_index"`
	EndIndex    *int64 `gorm:"column:end_index"`
}

// TableName specifies the table name for PostURL
func (PostURL) TableName() string {
	return "post_urls"
}

// PostMedia is a media attachment on a post.
type PostMedia struct {
	ID            int64          `gorm:"primaryKey;autoIncrement;column:id"`
	PostID        string         `gorm:"type:varchar(64);not null;index:roost_post_media_post;column:post_id"`
	Origin        string         `gorm:"type:varchar(16);not null;default:'entities';column:origin"`
	MediaID       *string        `gorm:"type:varchar(64);column:media_id"`
	MediaIDStr    *string        `gorm:"type:varchar(64);column:media_id_str"`
	MediaType     string         `gorm:"type:varchar(32);not null;column:media_type"`
	URL           string         `gorm:"type:varchar(1024);not null;column:url"`
	ExpandedURL   string         `gorm:"type:varchar(2048);not null;column:expanded_url"`
	DisplayURL    string         `gorm:"type:varchar(1024);not null;column:display_url"`
	MediaURL      string         `gorm:"type:varchar(1024);not null;column:media_url"`
	MediaURLHTTPS string         `gorm:"type:varchar(1024);not null;column:media_url_https"`
	Sizes         datatypes.JSON `gorm:"type:jsonb;column:sizes"`
	VideoInfo     datatypes.JSON `gorm:"type:jsonb;column:video_info"`
	AdditionalMediaInfo datatypes.JSON `gorm:"type:jsonb;column:additional_media_info"`

	SourceStatusID    *string `gorm:"type:varchar(64);column:source_status_id"`
	SourceStatusIDStr *string `gorm:"type:varchar(64);column:source_status_id_str"`
	SourceUserID      *string `gorm:"type:varchar(64);column:source_user_id"`
	SourceUserIDStr   *string `gorm:"type:varchar(64);column:source_user_id_str"`
}

// TableName specifies the table name for PostMedia
func (PostMedia) TableName() string {
	return "post_media"
}
