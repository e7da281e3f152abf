package models

import (
	"github.com/pgvector/pgvector-go"
)

// PostSearch is the full-text index row for a post. Exactly one row per
// post with non-empty text; replaced (delete-then-insert) inside the same
// transaction as every post upsert so the index always reflects the
// latest text. The stored tsvector column and its GIN index are created
// by db.Migrate since GORM tags cannot express generated columns.
type PostSearch struct {
	PostID    string `gorm:"primaryKey;type:varchar(64);column:post_id"`
	AccountID string `gorm:"type:varchar(64);not null;index:roost_post_search_account;column:account_id"`
	FullText  string `gorm:"type:text;not null;column:full_text"`
}

// TableName specifies the table name for PostSearch
func (PostSearch) TableName() string {
	return "post_search"
}

// PostEmbedding is a vector index row. The table is created lazily by the
// first successful embedding batch, which fixes the vector dimensionality
// for the store; this model is used for reads and writes after creation.
type PostEmbedding struct {
	ID        int64           `gorm:"primaryKey;autoIncrement;column:id"`
	AccountID string          `gorm:"type:varchar(64);not null;column:account_id"`
	PostID    string          `gorm:"type:varchar(64);not null;column:post_id"`
	Embedding pgvector.Vector `gorm:"type:vector;column:embedding"`
}

// TableName specifies the table name for PostEmbedding
func (PostEmbedding) TableName() string {
	return "post_embeddings"
}
