package models

// Account represents a distinct archive owner seen across imports.
// Identifiers are opaque external IDs assigned by the export source,
// never synthetic.
type Account struct {
	AccountID   string `gorm:"primaryKey;type:varchar(64);column:account_id"`
	Username    string `gorm:"type:varchar(64);not null;index:roost_accounts_username;column:username"`
	DisplayName string `gorm:"type:varchar(128);not null;column:account_display_name"`
	CreatedAt   string `gorm:"type:varchar(64);not null;column:created_at"`
	CreatedVia  string `gorm:"type:varchar(64);not null;column:created_via"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "accounts"
}

// Profile holds the one-to-one profile data for an account. Upserted by
// replacement on every import.
type Profile struct {
	AccountID      string `gorm:"primaryKey;type:varchar(64);column:account_id"`
	Bio            string `gorm:"type:text;not null;column:bio"`
	Website        string `gorm:"type:varchar(256);not null;column:website"`
	Location       string `gorm:"type:varchar(128);not null;column:location"`
	AvatarMediaURL string `gorm:"type:varchar(1024);not null;column:avatar_media_url"`
	HeaderMediaURL string `gorm:"type:varchar(1024);not null;column:header_media_url"`

	Account *Account `gorm:"foreignKey:AccountID;references:AccountID"`
}

// TableName specifies the table name for Profile
func (Profile) TableName() string {
	return "profiles"
}

// UploadOptions holds an account's privacy and import-window settings.
// One row per account, enforced by the unique index.
type UploadOptions struct {
	ID          int64  `gorm:"primaryKey;autoIncrement;column:id"`
	AccountID   string `gorm:"type:varchar(64);not null;uniqueIndex:roost_upload_options_ux1;column:account_id"`
	KeepPrivate bool   `gorm:"not null;column:keep_private"`
	UploadLikes bool   `gorm:"not null;column:upload_likes"`
	StartDate   string `gorm:"type:varchar(64);not null;column:start_date"`
	EndDate     string `gorm:"type:varchar(64);not null;column:end_date"`
}

// TableName specifies the table name for UploadOptions
func (UploadOptions) TableName() string {
	return "upload_options"
}
