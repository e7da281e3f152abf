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

// NoteIndexer handles long-form note upserts
type NoteIndexer struct {
	logger *zap.Logger
}

// NewNoteIndexer creates a new note indexer
func NewNoteIndexer(logger *zap.Logger) *NoteIndexer {
	return &NoteIndexer{logger: logger}
}

// Process upserts one note record, keyed by note id.
func (ni *NoteIndexer) Process(ctx context.Context, tx *gorm.DB, owner string, record map[string]interface{}, counts map[string]int) error {
	raw, _ := record["noteTweet"].(map[string]interface{})
	noteID := coerce.String(raw["noteTweetId"])
	if noteID == "" {
		return nil
	}

	repo := db.NewNoteRepository(db.NewRepository(tx))
	existing, err := repo.GetByID(ctx, noteID)
	if err != nil {
		return fmt.Errorf("failed to check note existence: %w", err)
	}

	if existing == nil {
		note := &models.Note{NoteID: noteID}
		applyNote(note, owner, raw)
		if err := repo.Create(ctx, note); err != nil {
			return fmt.Errorf("failed to create note %s: %w", noteID, err)
		}
		counts[CountNote]++
		return nil
	}

	applyNote(existing, owner, raw)
	return repo.Update(ctx, existing)
}
