package importer

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/roostlabs/roost/internal/coerce"
	"github.com/roostlabs/roost/internal/db"
	"github.com/roostlabs/roost/internal/models"
)

// LikeIndexer handles like upserts
type LikeIndexer struct {
	logger *zap.Logger
}

// NewLikeIndexer creates a new like indexer
func NewLikeIndexer(logger *zap.Logger) *LikeIndexer {
	return &LikeIndexer{logger: logger}
}

// Process upserts one like record, keyed by (owner, post id). Distinct
// owners may each like the same post id without collision.
func (li *LikeIndexer) Process(ctx context.Context, tx *gorm.DB, owner string, record map[string]interface{}, counts map[string]int) error {
	raw, _ := record["like"].(map[string]interface{})
	postID := coerce.String(raw["tweetId"])
	if postID == "" {
		return nil
	}

	repo := db.NewLikeRepository(db.NewRepository(tx))
	existing, err := repo.GetByAccountAndPost(ctx, owner, postID)
	if err != nil {
		return fmt.Errorf("failed to check like existence: %w", err)
	}

	if existing == nil {
		like := &models.Like{
			AccountID:   owner,
			PostID:      postID,
			FullText:    coerce.OptFieldString(raw, "fullText"),
			ExpandedURL: coerce.OptFieldString(raw, "expandedUrl"),
		}
		if err := repo.Create(ctx, like); err != nil {
			return fmt.Errorf("failed to create like for post %s: %w", postID, err)
		}
		counts[CountLike]++
		return nil
	}

	existing.FullText = coerce.OptFieldString(raw, "fullText")
	existing.ExpandedURL = coerce.OptFieldString(raw, "expandedUrl")
	return repo.Update(ctx, existing)
}
