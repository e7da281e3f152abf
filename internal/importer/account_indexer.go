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

// AccountIndexer handles account and profile upserts
type AccountIndexer struct {
	logger *zap.Logger
}

// NewAccountIndexer creates a new account indexer
func NewAccountIndexer(logger *zap.Logger) *AccountIndexer {
	return &AccountIndexer{logger: logger}
}

// ProcessAccount upserts one account record, keyed by account id.
func (ai *AccountIndexer) ProcessAccount(ctx context.Context, tx *gorm.DB, record map[string]interface{}, counts map[string]int) error {
	account, _ := record["account"].(map[string]interface{})
	accountID := coerce.String(account["accountId"])
	if accountID == "" {
		return nil
	}

	repo := db.NewAccountRepository(db.NewRepository(tx))
	existing, err := repo.GetByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to check account existence: %w", err)
	}

	if existing == nil {
		row := &models.Account{
			AccountID:   accountID,
			Username:    coerce.String(account["username"]),
			DisplayName: coerce.String(account["accountDisplayName"]),
			CreatedAt:   coerce.String(account["createdAt"]),
			CreatedVia:  coerce.String(account["createdVia"]),
		}
		if err := repo.Create(ctx, row); err != nil {
			return fmt.Errorf("failed to create account %s: %w", accountID, err)
		}
		counts[CountAccount]++
		ai.logger.Debug("Created account", zap.String("account_id", accountID))
		return nil
	}

	existing.Username = coerce.String(account["username"])
	existing.DisplayName = coerce.String(account["accountDisplayName"])
	existing.CreatedAt = coerce.String(account["createdAt"])
	existing.CreatedVia = coerce.String(account["createdVia"])
	return repo.Update(ctx, existing)
}

// ProcessProfile upserts the owner's profile record. A profile is
// one-to-one with its account and replaced wholesale on re-import.
func (ai *AccountIndexer) ProcessProfile(ctx context.Context, tx *gorm.DB, owner string, record map[string]interface{}, counts map[string]int) error {
	profile, _ := record["profile"].(map[string]interface{})
	description, _ := profile["description"].(map[string]interface{})

	repo := db.NewProfileRepository(db.NewRepository(tx))
	existing, err := repo.GetByAccountID(ctx, owner)
	if err != nil {
		return fmt.Errorf("failed to check profile existence: %w", err)
	}

	if existing == nil {
		row := &models.Profile{
			AccountID:      owner,
			Bio:            coerce.String(description["bio"]),
			Website:        coerce.String(description["website"]),
			Location:       coerce.String(description["location"]),
			AvatarMediaURL: coerce.String(profile["avatarMediaUrl"]),
			HeaderMediaURL: coerce.String(profile["headerMediaUrl"]),
		}
		if err := repo.Create(ctx, row); err != nil {
			return fmt.Errorf("failed to create profile for %s: %w", owner, err)
		}
		counts[CountProfile]++
		return nil
	}

	existing.Bio = coerce.String(description["bio"])
	existing.Website = coerce.String(description["website"])
	existing.Location = coerce.String(description["location"])
	existing.AvatarMediaURL = coerce.String(profile["avatarMediaUrl"])
	existing.HeaderMediaURL = coerce.String(profile["headerMediaUrl"])
	return repo.Update(ctx, existing)
}

// OptionsIndexer handles upload-options upserts
type OptionsIndexer struct {
	logger *zap.Logger
}

// NewOptionsIndexer creates a new upload-options indexer
func NewOptionsIndexer(logger *zap.Logger) *OptionsIndexer {
	return &OptionsIndexer{logger: logger}
}

// Process upserts the owner's upload options, unique per account.
func (oi *OptionsIndexer) Process(ctx context.Context, tx *gorm.DB, owner string, record map[string]interface{}, counts map[string]int) error {
	repo := db.NewUploadOptionsRepository(db.NewRepository(tx))
	existing, err := repo.GetByAccountID(ctx, owner)
	if err != nil {
		return fmt.Errorf("failed to check upload options existence: %w", err)
	}

	if existing == nil {
		row := &models.UploadOptions{
			AccountID:   owner,
			KeepPrivate: coerce.Bool(record["keepPrivate"]),
			UploadLikes: coerce.Bool(record["uploadLikes"]),
			StartDate:   coerce.String(record["startDate"]),
			EndDate:     coerce.String(record["endDate"]),
		}
		if err := repo.Create(ctx, row); err != nil {
			return fmt.Errorf("failed to create upload options for %s: %w", owner, err)
		}
		counts[CountUploadOptions]++
		return nil
	}

	existing.KeepPrivate = coerce.Bool(record["keepPrivate"])
	existing.UploadLikes = coerce.Bool(record["uploadLikes"])
	existing.StartDate = coerce.String(record["startDate"])
	existing.EndDate = coerce.String(record["endDate"])
	return repo.Update(ctx, existing)
}
