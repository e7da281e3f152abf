package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/roostlabs/roost/internal/db"
	"github.com/roostlabs/roost/pkg/logging"
)

// Params narrows a keyword or semantic query. Since and Until are
// inclusive calendar dates; posts whose timestamp failed to coerce
// (NULL created_at) never match a dated query.
type Params struct {
	Query  string
	Author string
	Since  *time.Time
	Until  *time.Time
	Limit  int
}

// Result is one search hit joined back to the post and its owner.
type Result struct {
	PostID           string     `json:"post_id"`
	OwnerID          string     `json:"owner_id"`
	OwnerHandle      string     `json:"owner_handle"`
	OwnerDisplayName string     `json:"owner_display_name"`
	CreatedAt        *time.Time `json:"created_at"`
	FullText         string     `json:"full_text"`
	Kind             string     `json:"kind"`
}

// Service answers ranked keyword queries over the search index.
type Service struct {
	db     *db.DB
	logger *zap.Logger
}

// NewService creates a new search service
func NewService(database *db.DB) *Service {
	return &Service{
		db:     database,
		logger: logging.GetLogger().With(zap.String("component", "search")),
	}
}

type resultRow struct {
	PostID             string
	AccountID          string
	Username           string
	AccountDisplayName string
	CreatedAt          *time.Time
	FullText           string
	Kind               string
}

// SearchKeyword runs a ranked full-text query. A blank query returns an
// empty result without touching the index; an author handle that matches
// no account returns an empty result rather than an error.
func (s *Service) SearchKeyword(ctx context.Context, params Params) ([]Result, error) {
	if strings.TrimSpace(params.Query) == "" {
		return []Result{}, nil
	}

	accountID, resolved, err := ResolveAuthor(ctx, db.NewRepository(s.db.DB), params.Author)
	if err != nil {
		return nil, err
	}
	if !resolved {
		return []Result{}, nil
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	var filterSQL strings.Builder
	var filterArgs []interface{}
	appendDateFilters(&filterSQL, &filterArgs, accountID, params.Since, params.Until)

	query := `
		SELECT
		  p.post_id,
		  a.account_id,
		  a.username,
		  a.account_display_name,
		  p.created_at,
		  p.full_text,
		  p.kind
		FROM post_search s
		JOIN posts p ON p.post_id = s.post_id
		JOIN accounts a ON a.account_id = p.account_id
		WHERE s.textsearch @@ plainto_tsquery('simple', ?)` +
		filterSQL.String() + `
		ORDER BY ts_rank(s.textsearch, plainto_tsquery('simple', ?)) DESC,
		  p.created_at IS NULL, p.created_at DESC
		LIMIT ?`

	args := []interface{}{params.Query}
	args = append(args, filterArgs...)
	args = append(args, params.Query, limit)

	var rows []resultRow
	if err := s.db.DB.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("keyword search failed: %w", err)
	}

	s.logger.Debug("Keyword search",
		zap.String("query", params.Query),
		zap.Int("hits", len(rows)))

	return toResults(rows), nil
}

// ResolveAuthor maps an optional handle to an account id. The second
// return is false when a handle was given but matches no account.
func ResolveAuthor(ctx context.Context, repo *db.Repository, author string) (string, bool, error) {
	handle := NormalizeAuthor(author)
	if handle == "" {
		return "", true, nil
	}
	account, err := db.NewAccountRepository(repo).GetByUsername(ctx, handle)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve author %s: %w", handle, err)
	}
	if account == nil {
		return "", false, nil
	}
	return account.AccountID, true, nil
}

// NormalizeAuthor trims whitespace and a leading "@" from a handle.
func NormalizeAuthor(author string) string {
	author = strings.TrimSpace(author)
	return strings.TrimPrefix(author, "@")
}

// DayStart returns the inclusive lower bound for a calendar date, in UTC.
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayEnd returns the inclusive upper bound for a calendar date, in UTC.
func DayEnd(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, time.UTC)
}

func appendDateFilters(sb *strings.Builder, args *[]interface{}, accountID string, since, until *time.Time) {
	if accountID != "" {
		sb.WriteString(" AND p.account_id = ?")
		*args = append(*args, accountID)
	}
	if since != nil {
		sb.WriteString(" AND p.created_at >= ?")
		*args = append(*args, DayStart(*since))
	}
	if until != nil {
		sb.WriteString(" AND p.created_at <= ?")
		*args = append(*args, DayEnd(*until))
	}
}

func toResults(rows []resultRow) []Result {
	results := make([]Result, 0, len(rows))
	for _, row := range rows {
		created := row.CreatedAt
		if created != nil {
			utc := created.UTC()
			created = &utc
		}
		results = append(results, Result{
			PostID:           row.PostID,
			OwnerID:          row.AccountID,
			OwnerHandle:      row.Username,
			OwnerDisplayName: row.AccountDisplayName,
			CreatedAt:        created,
			FullText:         row.FullText,
			Kind:             row.Kind,
		})
	}
	return results
}
