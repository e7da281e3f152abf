// Package semantic maintains the vector index over post text and answers
// nearest-neighbor queries. Embedding generation is a full rebuild: the
// first successful batch fixes the index dimensionality and clears prior
// content, so re-running after a provider failure is always safe.
package semantic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"github.com/roostlabs/roost/internal/db"
	"github.com/roostlabs/roost/internal/embedding"
	"github.com/roostlabs/roost/internal/models"
	"github.com/roostlabs/roost/internal/search"
	"github.com/roostlabs/roost/pkg/config"
	"github.com/roostlabs/roost/pkg/logging"
)

// ErrEmbeddingsUnavailable is returned by semantic queries before any
// embedding batch has been written. Recoverable by running EmbedPending.
var ErrEmbeddingsUnavailable = errors.New("no embeddings found, run embedding generation first")

// Service generates embeddings and serves semantic queries.
type Service struct {
	db       *db.DB
	cfg      *config.EmbeddingConfig
	embedder embedding.Embedder
	logger   *zap.Logger
}

// NewService creates a new semantic index service. A nil embedder means
// an OpenAI-compatible client is built per call from the resolved
// credentials; tests pass their own.
func NewService(database *db.DB, cfg *config.EmbeddingConfig, embedder embedding.Embedder) *Service {
	return &Service{
		db:       database,
		cfg:      cfg,
		embedder: embedder,
		logger:   logging.GetLogger().With(zap.String("component", "semantic")),
	}
}

type postText struct {
	PostID    string
	AccountID string
	FullText  string
}

type semanticRow struct {
	PostID             string
	AccountID          string
	Username           string
	AccountDisplayName string
	CreatedAt          *time.Time
	FullText           string
	Kind               string
}

// EmbedPending embeds the text of every post with non-empty text and
// rebuilds the vector index. Returns the number of rows written. A
// provider failure aborts the remaining batches; batches already
// committed stay, and the next call rebuilds from scratch.
func (s *Service) EmbedPending(ctx context.Context, modelOverride string, batchSize int) (int, error) {
	resolved, err := embedding.Resolve(modelOverride, s.cfg)
	if err != nil {
		return 0, err
	}
	embedder := s.embedder
	if embedder == nil {
		embedder = embedding.NewClient(resolved.BaseURL, resolved.APIKey)
	}
	if batchSize <= 0 {
		batchSize = 100
	}

	var rows []postText
	if err := s.db.DB.WithContext(ctx).
		Model(&models.Post{}).
		Select("post_id, account_id, full_text").
		Where("full_text <> ''").
		Scan(&rows).Error; err != nil {
		return 0, fmt.Errorf("failed to list posts for embedding: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	inserted := 0
	firstBatch := true
	for _, batch := range chunk(rows, batchSize) {
		texts := make([]string, len(batch))
		for i, row := range batch {
			texts[i] = row.FullText
		}

		vectors, err := embedder.Embed(ctx, texts, resolved.Model)
		if err != nil {
			return inserted, fmt.Errorf("embedding batch failed: %w", err)
		}
		if len(vectors) != len(batch) {
			return inserted, fmt.Errorf("embedding batch returned %d vectors for %d texts", len(vectors), len(batch))
		}
		if len(vectors) == 0 {
			continue
		}

		if firstBatch {
			if err := s.rebuildIndex(ctx, len(vectors[0])); err != nil {
				return inserted, err
			}
			firstBatch = false
		}

		tx := s.db.DB.WithContext(ctx).Begin()
		if tx.Error != nil {
			return inserted, fmt.Errorf("failed to start transaction: %w", tx.Error)
		}
		for i, row := range batch {
			record := &models.PostEmbedding{
				AccountID: row.AccountID,
				PostID:    row.PostID,
				Embedding: pgvector.NewVector(vectors[i]),
			}
			if err := tx.Create(record).Error; err != nil {
				tx.Rollback()
				return inserted, fmt.Errorf("failed to insert embedding for post %s: %w", row.PostID, err)
			}
		}
		if err := tx.Commit().Error; err != nil {
			return inserted, fmt.Errorf("failed to commit embedding batch: %w", err)
		}
		inserted += len(batch)

		s.logger.Debug("Committed embedding batch",
			zap.Int("batch", len(batch)),
			zap.Int("total", inserted))
	}

	s.logger.Info("Embedding rebuild finished",
		zap.Int("inserted", inserted),
		zap.String("model", resolved.Model))

	return inserted, nil
}

// rebuildIndex recreates the vector table sized to the provider's
// dimensionality. The prior table is dropped so switching to a model
// with a different vector width re-sizes the column instead of failing
// every insert against the stale type.
func (s *Service) rebuildIndex(ctx context.Context, dimensions int) error {
	if err := s.db.DB.WithContext(ctx).Exec("DROP TABLE IF EXISTS post_embeddings").Error; err != nil {
		return fmt.Errorf("failed to drop vector index: %w", err)
	}
	ddl := fmt.Sprintf(`
		CREATE TABLE post_embeddings (
		  id BIGSERIAL PRIMARY KEY,
		  account_id VARCHAR(64) NOT NULL,
		  post_id VARCHAR(64) NOT NULL,
		  embedding vector(%d) NOT NULL
		)`, dimensions)
	if err := s.db.DB.WithContext(ctx).Exec(ddl).Error; err != nil {
		return fmt.Errorf("failed to create vector index: %w", err)
	}
	if err := s.db.DB.WithContext(ctx).Exec(
		"CREATE INDEX roost_post_embeddings_account ON post_embeddings (account_id)").Error; err != nil {
		return fmt.Errorf("failed to index vector table: %w", err)
	}
	return nil
}

// SearchSemantic embeds the query once, retrieves the nearest vectors
// and joins back to posts with the same author and date filters as
// keyword search, ordered by recency among neighbors.
func (s *Service) SearchSemantic(ctx context.Context, params search.Params, modelOverride string) ([]search.Result, error) {
	if strings.TrimSpace(params.Query) == "" {
		return []search.Result{}, nil
	}

	available, err := s.embeddingsAvailable(ctx)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrEmbeddingsUnavailable
	}

	resolved, err := embedding.Resolve(modelOverride, s.cfg)
	if err != nil {
		return nil, err
	}
	embedder := s.embedder
	if embedder == nil {
		embedder = embedding.NewClient(resolved.BaseURL, resolved.APIKey)
	}

	accountID, found, err := search.ResolveAuthor(ctx, db.NewRepository(s.db.DB), params.Author)
	if err != nil {
		return nil, err
	}
	if !found {
		return []search.Result{}, nil
	}

	vectors, err := embedder.Embed(ctx, []string{params.Query}, resolved.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("query embedding returned %d vectors", len(vectors))
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	candidateFilter := ""
	candidateArgs := []interface{}{}
	if accountID != "" {
		candidateFilter = " WHERE e.account_id = ?"
		candidateArgs = append(candidateArgs, accountID)
	}

	var dateFilter strings.Builder
	var dateArgs []interface{}
	appendCreatedAtFilters(&dateFilter, &dateArgs, params)

	query := `
		WITH candidates AS (
		  SELECT e.post_id
		  FROM post_embeddings e` + candidateFilter + `
		  ORDER BY e.embedding <=> ?
		  LIMIT ?
		)
		SELECT
		  p.post_id,
		  a.account_id,
		  a.username,
		  a.account_display_name,
		  p.created_at,
		  p.full_text,
		  p.kind
		FROM candidates c
		JOIN posts p ON p.post_id = c.post_id
		JOIN accounts a ON a.account_id = p.account_id
		WHERE 1 = 1` + dateFilter.String() + `
		ORDER BY p.created_at IS NULL, p.created_at DESC
		LIMIT ?`

	args := append(candidateArgs, pgvector.NewVector(vectors[0]), limit)
	args = append(args, dateArgs...)
	args = append(args, limit)

	var rows []semanticRow
	if err := s.db.DB.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("semantic search failed: %w", err)
	}

	results := make([]search.Result, 0, len(rows))
	for _, row := range rows {
		created := row.CreatedAt
		if created != nil {
			utc := created.UTC()
			created = &utc
		}
		results = append(results, search.Result{
			PostID:           row.PostID,
			OwnerID:          row.AccountID,
			OwnerHandle:      row.Username,
			OwnerDisplayName: row.AccountDisplayName,
			CreatedAt:        created,
			FullText:         row.FullText,
			Kind:             row.Kind,
		})
	}
	return results, nil
}

func (s *Service) embeddingsAvailable(ctx context.Context) (bool, error) {
	if !s.db.DB.Migrator().HasTable("post_embeddings") {
		return false, nil
	}
	var count int64
	if err := s.db.DB.WithContext(ctx).Table("post_embeddings").Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count embeddings: %w", err)
	}
	return count > 0, nil
}

func appendCreatedAtFilters(sb *strings.Builder, args *[]interface{}, params search.Params) {
	if params.Since != nil {
		sb.WriteString(" AND p.created_at >= ?")
		*args = append(*args, search.DayStart(*params.Since))
	}
	if params.Until != nil {
		sb.WriteString(" AND p.created_at <= ?")
		*args = append(*args, search.DayEnd(*params.Until))
	}
}

// chunk splits rows into batches of at most size elements, in order.
func chunk(rows []postText, size int) [][]postText {
	if size <= 0 || len(rows) == 0 {
		return nil
	}
	batches := make([][]postText, 0, (len(rows)+size-1)/size)
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		batches = append(batches, rows[start:end])
	}
	return batches
}
