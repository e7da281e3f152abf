package importer

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/roostlabs/roost/internal/coerce"
	"github.com/roostlabs/roost/internal/db"
	"github.com/roostlabs/roost/internal/models"
	"github.com/roostlabs/roost/internal/search"
)

// PostIndexer handles post upserts, their search index rows and their
// attached entities.
type PostIndexer struct {
	logger *zap.Logger
}

// NewPostIndexer creates a new post indexer
func NewPostIndexer(logger *zap.Logger) *PostIndexer {
	return &PostIndexer{logger: logger}
}

// Process upserts one post record. An existing post under a different
// owner aborts the call with CrossOwnerConflictError; its row and search
// index row are left untouched.
func (pi *PostIndexer) Process(ctx context.Context, tx *gorm.DB, owner string, record map[string]interface{}, kind string, counts map[string]int) error {
	tweet, _ := record["tweet"].(map[string]interface{})
	postID := coerce.String(tweet["id"])
	if postID == "" {
		return nil
	}

	repo := db.NewPostRepository(db.NewRepository(tx))
	existing, err := repo.GetByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("failed to check post existence: %w", err)
	}

	if existing != nil && existing.AccountID != owner {
		return &CrossOwnerConflictError{
			PostID:        postID,
			ExistingOwner: existing.AccountID,
			IncomingOwner: owner,
		}
	}

	if existing == nil {
		post := mapPost(owner, kind, tweet)
		if err := repo.Create(ctx, post); err != nil {
			return fmt.Errorf("failed to create post %s: %w", postID, err)
		}
		if kind == models.PostKindCommunity {
			counts[CountCommunityPost]++
		} else {
			counts[CountPost]++
		}
		pi.logger.Debug("Created post",
			zap.String("post_id", postID),
			zap.String("kind", kind))
	} else {
		applyPost(existing, owner, kind, tweet)
		if err := repo.Update(ctx, existing); err != nil {
			return fmt.Errorf("failed to update post %s: %w", postID, err)
		}
	}

	if err := search.SyncPost(ctx, tx, postID, owner, coerce.String(tweet["full_text"])); err != nil {
		return err
	}

	return pi.processAttachments(ctx, tx, postID, kind, tweet, counts)
}

func (pi *PostIndexer) processAttachments(ctx context.Context, tx *gorm.DB, postID, kind string, tweet map[string]interface{}, counts map[string]int) error {
	entities, _ := tweet["entities"].(map[string]interface{})

	for _, raw := range entityList(entities, "hashtags") {
		start, end := coerce.IndexPair(raw["indices"])
		row := &models.PostHashtag{
			PostID:     postID,
			Text:       coerce.String(raw["text"]),
			StartIndex: start,
			EndIndex:   end,
		}
		inserted, err := insertIfAbsent(ctx, tx, &models.PostHashtag{},
			"post_id = ? AND text = ? AND start_index IS NOT DISTINCT FROM ? AND end_index IS NOT DISTINCT FROM ?",
			[]interface{}{postID, row.Text, start, end}, row)
		if err != nil {
			return err
		}
		if inserted {
			counts[CountPostHashtag]++
		}
	}

	for _, raw := range entityList(entities, "symbols") {
		start, end := coerce.IndexPair(raw["indices"])
		row := &models.PostSymbol{
			PostID:     postID,
			Text:       coerce.String(raw["text"]),
			StartIndex: start,
			EndIndex:   end,
		}
		inserted, err := insertIfAbsent(ctx, tx, &models.PostSymbol{},
			"post_id = ? AND text = ? AND start_index IS NOT DISTINCT FROM ? AND end_index IS NOT DISTINCT FROM ?",
			[]interface{}{postID, row.Text, start, end}, row)
		if err != nil {
			return err
		}
		if inserted {
			counts[CountPostSymbol]++
		}
	}

	for _, raw := range entityList(entities, "user_mentions") {
		start, end := coerce.IndexPair(raw["indices"])
		row := &models.PostMention{
			PostID:     postID,
			UserID:     coerce.OptString(raw["id"]),
			UserIDStr:  coerce.OptString(raw["id_str"]),
			Name:       coerce.String(raw["name"]),
			ScreenName: coerce.String(raw["screen_name"]),
			StartIndex: start,
			EndIndex:   end,
		}
		inserted, err := insertIfAbsent(ctx, tx, &models.PostMention{},
			"post_id = ? AND user_id IS NOT DISTINCT FROM ? AND user_id_str IS NOT DISTINCT FROM ? AND name = ? AND screen_name = ? AND start_index IS NOT DISTINCT FROM ? AND end_index IS NOT DISTINCT FROM ?",
			[]interface{}{postID, row.UserID, row.UserIDStr, row.Name, row.ScreenName, start, end}, row)
		if err != nil {
			return err
		}
		if inserted {
			counts[CountPostMention]++
		}
	}

	for _, raw := range entityList(entities, "urls") {
		start, end := coerce.IndexPair(raw["indices"])
		row := &models.PostURL{
			PostID:      postID,
			URL:         coerce.String(raw["url"]),
			ExpandedURL: coerce.String(raw["expanded_url"]),
			DisplayURL:  coerce.String(raw["display_url"]),
			StartIndex:  start,
			EndIndex:    end,
		}
		inserted, err := insertIfAbsent(ctx, tx, &models.PostURL{},
			"post_id = ? AND url = ? AND expanded_url = ? AND display_url = ? AND start_index IS NOT DISTINCT FROM ? AND end_index IS NOT DISTINCT FROM ?",
			[]interface{}{postID, row.URL, row.ExpandedURL, row.DisplayURL, start, end}, row)
		if err != nil {
			return err
		}
		if inserted {
			counts[CountPostURL]++
		}
	}

	// Community exports carry no media sections.
	if kind == models.PostKindCommunity {
		return nil
	}

	for _, raw := range entityList(entities, "media") {
		if err := pi.processMedia(ctx, tx, postID, models.MediaOriginEntities, raw, counts); err != nil {
			return err
		}
	}

	extended, _ := tweet["extended_entities"].(map[string]interface{})
	for _, raw := range entityList(extended, "media") {
		if err := pi.processMedia(ctx, tx, postID, models.MediaOriginExtended, raw, counts); err != nil {
			return err
		}
	}

	return nil
}

func (pi *PostIndexer) processMedia(ctx context.Context, tx *gorm.DB, postID, origin string, raw map[string]interface{}, counts map[string]int) error {
	row := &models.PostMedia{
		PostID:            postID,
		Origin:            origin,
		MediaID:           coerce.OptString(raw["id"]),
		MediaIDStr:        coerce.OptString(raw["id_str"]),
		MediaType:         coerce.String(raw["type"]),
		URL:               coerce.String(raw["url"]),
		ExpandedURL:       coerce.String(raw["expanded_url"]),
		DisplayURL:        coerce.String(raw["display_url"]),
		MediaURL:          coerce.String(raw["media_url"]),
		MediaURLHTTPS:     coerce.String(raw["media_url_https"]),
		Sizes:             jsonValue(raw["sizes"]),
		SourceStatusID:    coerce.OptString(raw["source_status_id"]),
		SourceStatusIDStr: coerce.OptString(raw["source_status_id_str"]),
		SourceUserID:      coerce.OptString(raw["source_user_id"]),
		SourceUserIDStr:   coerce.OptString(raw["source_user_id_str"]),
	}
	// Video details only appear in the extended section.
	if origin == models.MediaOriginExtended {
		row.VideoInfo = jsonValue(raw["video_info"])
		row.AdditionalMediaInfo = jsonValue(raw["additional_media_info"])
	}

	inserted, err := insertIfAbsent(ctx, tx, &models.PostMedia{},
		"post_id = ? AND origin = ? AND media_id IS NOT DISTINCT FROM ? AND media_id_str IS NOT DISTINCT FROM ? AND url = ? AND media_url = ?",
		[]interface{}{postID, origin, row.MediaID, row.MediaIDStr, row.URL, row.MediaURL}, row)
	if err != nil {
		return err
	}
	if inserted {
		counts[CountPostMedia]++
	}
	return nil
}

// insertIfAbsent inserts an attachment row unless an identical one is
// already present. Nullable fields compare with IS NOT DISTINCT FROM so
// NULL offsets match themselves on re-import.
func insertIfAbsent(ctx context.Context, tx *gorm.DB, model interface{}, query string, args []interface{}, row interface{}) (bool, error) {
	var count int64
	if err := tx.WithContext(ctx).Model(model).Where(query, args...).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check attachment existence: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		return false, fmt.Errorf("failed to insert attachment: %w", err)
	}
	return true, nil
}

func entityList(section map[string]interface{}, key string) []map[string]interface{} {
	if section == nil {
		return nil
	}
	items, _ := section[key].([]interface{})
	records := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		if record, ok := item.(map[string]interface{}); ok {
			records = append(records, record)
		}
	}
	return records
}
