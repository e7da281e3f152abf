package db

import (
	"fmt"

	"github.com/roostlabs/roost/internal/models"
)

// Raw DDL for what GORM tags cannot express: the stored tsvector column
// over post_search.full_text and its GIN index. The 'simple' configuration
// keeps matching language-neutral, since exports carry mixed-language text.
var searchDDL = []string{
	`ALTER TABLE post_search ADD COLUMN IF NOT EXISTS textsearch tsvector
	 GENERATED ALWAYS AS (to_tsvector('simple', coalesce(full_text, ''))) STORED`,
	`CREATE INDEX IF NOT EXISTS roost_post_search_textsearch
	 ON post_search USING GIN (textsearch)`,
}

// Migrate creates or updates the schema. The post_embeddings table is not
// migrated here: it is created by the first successful embedding batch,
// which fixes the vector dimensionality for the store.
func (d *DB) Migrate() error {
	if err := d.Exec(`CREATE EXTENSION IF NOT EXISTS vector`).Error; err != nil {
		return fmt.Errorf("failed to create pgvector extension: %w", err)
	}

	if err := d.AutoMigrate(
		&models.Account{},
		&models.Profile{},
		&models.UploadOptions{},
		&models.Post{},
		&models.Note{},
		&models.Like{},
		&models.Follower{},
		&models.Following{},
		&models.PostHashtag{},
		&models.PostSymbol{},
		&models.PostMention{},
		&models.PostURL{},
		&models.PostMedia{},
		&models.PostSearch{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	for _, ddl := range searchDDL {
		if err := d.Exec(ddl).Error; err != nil {
			return fmt.Errorf("failed to apply search DDL: %w", err)
		}
	}

	return nil
}
