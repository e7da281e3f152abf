package search

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/roostlabs/roost/internal/models"
)

// SyncPost replaces the search index row for a post. Delete-then-insert
// keeps exactly one row per post id; posts with empty text carry no row,
// so the index row count always matches the count of posts with text.
// Callers run this inside the same transaction as the post upsert.
func SyncPost(ctx context.Context, tx *gorm.DB, postID, accountID, fullText string) error {
	if err := tx.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&models.PostSearch{}).Error; err != nil {
		return fmt.Errorf("failed to clear search row for post %s: %w", postID, err)
	}
	if fullText == "" {
		return nil
	}
	row := &models.PostSearch{
		PostID:    postID,
		AccountID: accountID,
		FullText:  fullText,
	}
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to insert search row for post %s: %w", postID, err)
	}
	return nil
}
