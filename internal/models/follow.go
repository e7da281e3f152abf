package models

// Follower records another account following the archive owner.
// Composite-unique on (account_id, follower_account_id).
type Follower struct {
	ID                int64  `gorm:"primaryKey;autoIncrement;column:id"`
	AccountID         string `gorm:"type:varchar(64);not null;uniqueIndex:roost_followers_ux1,priority:1;column:account_id"`
	FollowerAccountID string `gorm:"type:varchar(64);not null;uniqueIndex:roost_followers_ux1,priority:2;column:follower_account_id"`
	UserLink          string `gorm:"type:varchar(256);not null;column:user_link"`
}

// TableName specifies the table name for Follower
func (Follower) TableName() string {
	return "followers"
}

// Following records the archive owner following another account.
// Composite-unique on (account_id, followed_account_id).
type Following struct {
	ID                int64  `gorm:"primaryKey;autoIncrement;column:id"`
	AccountID         string `gorm:"type:varchar(64);not null;uniqueIndex:roost_followings_ux1,priority:1;column:account_id"`
	FollowedAccountID string `gorm:"type:varchar(64);not null;uniqueIndex:roost_followings_ux1,priority:2;column:followed_account_id"`
	UserLink          string `gorm:"type:varchar(256);not null;column:user_link"`
}

// TableName specifies the table name for Following
func (Following) TableName() string {
	return "followings"
}
