package models

import (
	"time"

	"gorm.io/datatypes"
)

// Post kind tags. Ordinary and community posts share the table and are
// distinguished by Kind.
const (
	PostKindPost      = "post"
	PostKindCommunity = "community"
)

// Post represents an exported post. The post id is owned by exactly one
// account for the lifetime of the store; imports asserting a different
// owner for an existing id are rejected, never merged.
type Post struct {
	PostID    string     `gorm:"primaryKey;type:varchar(64);column:post_id"`
	AccountID string     `gorm:"type:varchar(64);not null;index:roost_posts_account_created,priority:1;column:account_id"`
	PostIDStr *string    `gorm:"type:varchar(64);column:post_id_str"`
	Kind      string     `gorm:"type:varchar(16);not null;default:'post';index:roost_posts_kind;column:kind"`
	CreatedAt *time.Time `gorm:"index:roost_posts_account_created,priority:2;column:created_at"`
	FullText  string     `gorm:"type:text;not null;column:full_text"`
	Lang      string     `gorm:"type:varchar(16);not null;column:lang"`
	Source    string     `gorm:"type:varchar(256);not null;column:source"`

	Retweeted     bool   `gorm:"not null;default:false;column:retweeted"`
	Favorited     bool   `gorm:"not null;default:false;column:favorited"`
	Truncated     bool   `gorm:"not null;default:false;column:truncated"`
	FavoriteCount *int64 `gorm:"column:favorite_count"`
	RetweetCount  *int64 `gorm:"column:retweet_count"`

	DisplayTextRange datatypes.JSON `gorm:"type:jsonb;column:display_text_range"`

	InReplyToStatusID    *string `gorm:"type:varchar(64);column:in_reply_to_status_id"`
	InReplyToStatusIDStr *string `gorm:"type:varchar(64);column:in_reply_to_status_id_str"`
	InReplyToUserID      *string `gorm:"type:varchar(64);column:in_reply_to_user_id"`
	InReplyToUserIDStr   *string `gorm:"type:varchar(64);column:in_reply_to_user_id_str"`
	InReplyToScreenName  *string `gorm:"type:varchar(64);column:in_reply_to_screen_name"`

	PossiblySensitive *bool          `gorm:"column:possibly_sensitive"`
	EditInfo          datatypes.JSON `gorm:"type:jsonb;column:edit_info"`

	// Community post fields
	CommunityID    *string        `gorm:"type:varchar(64);column:community_id"`
	CommunityIDStr *string        `gorm:"type:varchar(64);column:community_id_str"`
	Scopes         datatypes.JSON `gorm:"type:jsonb;column:scopes"`

	OwnerAccount *Account `gorm:"foreignKey:AccountID;references:AccountID"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "posts"
}

// Note represents a long-form note, keyed by its own id.
type Note struct {
	NoteID    string         `gorm:"primaryKey;type:varchar(64);column:note_id"`
	AccountID string         `gorm:"type:varchar(64);not null;index:roost_notes_account;column:account_id"`
	CreatedAt string         `gorm:"type:varchar(64);not null;column:created_at"`
	UpdatedAt string         `gorm:"type:varchar(64);not null;column:updated_at"`
	Lifecycle datatypes.JSON `gorm:"type:jsonb;column:lifecycle"`
	Core      datatypes.JSON `gorm:"type:jsonb;column:core"`
}

// TableName specifies the table name for Note
func (Note) TableName() string {
	return "notes"
}
