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

// FollowIndexer handles follower and following upserts
type FollowIndexer struct {
	logger *zap.Logger
}

// NewFollowIndexer creates a new follow indexer
func NewFollowIndexer(logger *zap.Logger) *FollowIndexer {
	return &FollowIndexer{logger: logger}
}

// ProcessFollower upserts one follower record, keyed by
// (owner, follower account id).
func (fi *FollowIndexer) ProcessFollower(ctx context.Context, tx *gorm.DB, owner string, record map[string]interface{}, counts map[string]int) error {
	raw, _ := record["follower"].(map[string]interface{})
	followerID := coerce.String(raw["accountId"])
	if followerID == "" {
		return nil
	}
	userLink := coerce.String(raw["userLink"])

	repo := db.NewFollowRepository(db.NewRepository(tx))
	existing, err := repo.GetFollower(ctx, owner, followerID)
	if err != nil {
		return fmt.Errorf("failed to check follower existence: %w", err)
	}

	if existing == nil {
		row := &models.Follower{
			AccountID:         owner,
			FollowerAccountID: followerID,
			UserLink:          userLink,
		}
		if err := tx.WithContext(ctx).Create(row).Error; err != nil {
			return fmt.Errorf("failed to create follower %s: %w", followerID, err)
		}
		counts[CountFollower]++
		return nil
	}

	existing.UserLink = userLink
	return tx.WithContext(ctx).Save(existing).Error
}

// ProcessFollowing upserts one following record, keyed by
// (owner, followed account id).
func (fi *FollowIndexer) ProcessFollowing(ctx context.Context, tx *gorm.DB, owner string, record map[string]interface{}, counts map[string]int) error {
	raw, _ := record["following"].(map[string]interface{})
	followedID := coerce.String(raw["accountId"])
	if followedID == "" {
		return nil
	}
	userLink := coerce.String(raw["userLink"])

	repo := db.NewFollowRepository(db.NewRepository(tx))
	existing, err := repo.GetFollowing(ctx, owner, followedID)
	if err != nil {
		return fmt.Errorf("failed to check following existence: %w", err)
	}

	if existing == nil {
		row := &models.Following{
			AccountID:         owner,
			FollowedAccountID: followedID,
			UserLink:          userLink,
		}
		if err := tx.WithContext(ctx).Create(row).Error; err != nil {
			return fmt.Errorf("failed to create following %s: %w", followedID, err)
		}
		counts[CountFollowing]++
		return nil
	}

	existing.UserLink = userLink
	return tx.WithContext(ctx).Save(existing).Error
}
