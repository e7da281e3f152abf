package models

// Like records that an account liked a post. Composite-unique on
// (account_id, post_id): distinct accounts may each like the same post id
// without collision, and re-imports update the row in place.
type Like struct {
	ID          int64   `gorm:"primaryKey;autoIncrement;column:id"`
	AccountID   string  `gorm:"type:varchar(64);not null;uniqueIndex:roost_likes_ux1,priority:1;column:account_id"`
	PostID      string  `gorm:"type:varchar(64);not null;uniqueIndex:roost_likes_ux1,priority:2;column:post_id"`
	FullText    *string `gorm:"type:text;column:full_text"`
	ExpandedURL *string `gorm:"type:varchar(1024);column:expanded_url"`
}

// TableName specifies the table name for Like
func (Like) TableName() string {
	return "likes"
}
