// Package importer walks a canonical export document and persists every
// record into the store with idempotent, ownership-checked upserts. A
// call returns per-kind counts of rows newly inserted (updates are not
// counted). Commits happen in batches; a mid-run failure loses at most
// the current batch.
package importer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/roostlabs/roost/internal/archive"
	"github.com/roostlabs/roost/internal/coerce"
	"github.com/roostlabs/roost/internal/db"
	"github.com/roostlabs/roost/internal/models"
	"github.com/roostlabs/roost/pkg/logging"
)

// Count keys reported by Import.
const (
	CountUploadOptions = "upload_options"
	CountAccount       = "account"
	CountProfile       = "profile"
	CountPost          = "post"
	CountCommunityPost = "community_post"
	CountNote          = "note"
	CountLike          = "like"
	CountFollower      = "follower"
	CountFollowing     = "following"
	CountPostHashtag   = "post_hashtag"
	CountPostSymbol    = "post_symbol"
	CountPostMention   = "post_mention"
	CountPostURL       = "post_url"
	CountPostMedia     = "post_media"
)

var countKeys = []string{
	CountUploadOptions,
	CountAccount,
	CountProfile,
	CountPost,
	CountCommunityPost,
	CountNote,
	CountLike,
	CountFollower,
	CountFollowing,
	CountPostHashtag,
	CountPostSymbol,
	CountPostMention,
	CountPostURL,
	CountPostMedia,
}

// Engine is the upsert engine. Imports against one store must be
// serialized by the caller; the engine takes no locks.
type Engine struct {
	db        *db.DB
	batchSize int
	logger    *zap.Logger

	accounts *AccountIndexer
	posts    *PostIndexer
	notes    *NoteIndexer
	likes    *LikeIndexer
	follows  *FollowIndexer
	options  *OptionsIndexer
}

// NewEngine creates a new upsert engine
func NewEngine(database *db.DB, batchSize int) *Engine {
	if batchSize <= 0 {
		batchSize = 1000
	}
	logger := logging.GetLogger().With(zap.String("component", "importer"))

	return &Engine{
		db:        database,
		batchSize: batchSize,
		logger:    logger,
		accounts:  NewAccountIndexer(logger),
		posts:     NewPostIndexer(logger),
		notes:     NewNoteIndexer(logger),
		likes:     NewLikeIndexer(logger),
		follows:   NewFollowIndexer(logger),
		options:   NewOptionsIndexer(logger),
	}
}

// Import persists every record in the document and returns the per-kind
// counts of newly inserted rows. It fails with MissingOwnerError before
// any writes when owner-scoped records have no resolvable owner, and
// with CrossOwnerConflictError when a post id already belongs to a
// different account.
func (e *Engine) Import(ctx context.Context, doc *archive.Document) (map[string]int, error) {
	counts := newCounts()

	owner := ResolveOwner(doc)
	if owner == "" && HasOwnerScopedRecords(doc) {
		return nil, &MissingOwnerError{}
	}

	r := &run{engine: e, owner: owner, counts: counts}
	if err := r.begin(ctx); err != nil {
		return nil, err
	}

	if err := e.importAll(ctx, r, doc); err != nil {
		r.tx.Rollback()
		return nil, err
	}

	if err := r.commit(); err != nil {
		return nil, err
	}

	e.logger.Info("Import finished",
		zap.String("owner", owner),
		zap.Any("inserted", counts))

	return counts, nil
}

func (e *Engine) importAll(ctx context.Context, r *run, doc *archive.Document) error {
	if r.owner != "" {
		for _, record := range doc.Records(archive.KindUploadOptions) {
			if err := e.options.Process(ctx, r.tx, r.owner, record, r.counts); err != nil {
				return err
			}
		}
	}

	for _, record := range doc.Records(archive.KindAccount) {
		if err := e.accounts.ProcessAccount(ctx, r.tx, record, r.counts); err != nil {
			return err
		}
	}

	if r.owner != "" {
		for _, record := range doc.Records(archive.KindProfile) {
			if err := e.accounts.ProcessProfile(ctx, r.tx, r.owner, record, r.counts); err != nil {
				return err
			}
		}
	}

	steps := []struct {
		kind string
		fn   func(context.Context, *gorm.DB, string, map[string]interface{}, map[string]int) error
	}{
		{archive.KindTweets, func(ctx context.Context, tx *gorm.DB, owner string, rec map[string]interface{}, counts map[string]int) error {
			return e.posts.Process(ctx, tx, owner, rec, models.PostKindPost, counts)
		}},
		{archive.KindCommunity, func(ctx context.Context, tx *gorm.DB, owner string, rec map[string]interface{}, counts map[string]int) error {
			return e.posts.Process(ctx, tx, owner, rec, models.PostKindCommunity, counts)
		}},
		{archive.KindNote, e.notes.Process},
		{archive.KindLike, e.likes.Process},
		{archive.KindFollower, e.follows.ProcessFollower},
		{archive.KindFollowing, e.follows.ProcessFollowing},
	}

	for _, step := range steps {
		for _, record := range doc.Records(step.kind) {
			if r.owner == "" {
				continue
			}
			if err := step.fn(ctx, r.tx, r.owner, record, r.counts); err != nil {
				return err
			}
			if err := r.advance(ctx); err != nil {
				return err
			}
		}
	}

	return nil
}

// run holds the transactional state of one Import call. The transaction
// is rotated every batchSize top-level records so a failure loses at
// most one batch.
type run struct {
	engine    *Engine
	tx        *gorm.DB
	owner     string
	counts    map[string]int
	processed int
}

func (r *run) begin(ctx context.Context) error {
	tx := r.engine.db.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to start transaction: %w", tx.Error)
	}
	r.tx = tx
	return nil
}

func (r *run) commit() error {
	if err := r.tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

func (r *run) advance(ctx context.Context) error {
	r.processed++
	if r.processed%r.engine.batchSize != 0 {
		return nil
	}
	if err := r.commit(); err != nil {
		return err
	}
	r.engine.logger.Debug("Committed import batch",
		zap.Int("processed", r.processed))
	return r.begin(ctx)
}

// ResolveOwner extracts the owning account id for a whole document from
// the first account record.
func ResolveOwner(doc *archive.Document) string {
	accounts := doc.Records(archive.KindAccount)
	if len(accounts) == 0 {
		return ""
	}
	account, _ := accounts[0]["account"].(map[string]interface{})
	if account == nil {
		return ""
	}
	return strings.TrimSpace(coerce.String(account["accountId"]))
}

// HasOwnerScopedRecords reports whether the document carries any record
// kind that must be attributed to an owner account.
func HasOwnerScopedRecords(doc *archive.Document) bool {
	for _, kind := range []string{
		archive.KindUploadOptions,
		archive.KindProfile,
		archive.KindTweets,
		archive.KindCommunity,
		archive.KindNote,
		archive.KindLike,
		archive.KindFollower,
		archive.KindFollowing,
	} {
		if len(doc.Records(kind)) > 0 {
			return true
		}
	}
	return false
}

func newCounts() map[string]int {
	counts := make(map[string]int, len(countKeys))
	for _, key := range countKeys {
		counts[key] = 0
	}
	return counts
}
