package importer

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/roostlabs/roost/internal/coerce"
	"github.com/roostlabs/roost/internal/models"
)

// jsonValue marshals a raw export value into a jsonb column value, nil
// when the field is absent.
func jsonValue(value interface{}) datatypes.JSON {
	if value == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}

// displayRangeJSON keeps the valid integers of a display_text_range
// array, preserving a present-but-partial field as a shorter array.
func displayRangeJSON(value interface{}) datatypes.JSON {
	items, ok := value.([]interface{})
	if !ok {
		return nil
	}
	bounds := make([]int64, 0, len(items))
	for _, item := range items {
		if n := coerce.Int64(item); n != nil {
			bounds = append(bounds, *n)
		}
	}
	return jsonValue(bounds)
}

// applyPost overwrites a post's scalar fields from the raw export map.
// Community-only fields are touched only for community posts, matching
// the export where ordinary posts never carry them.
func applyPost(post *models.Post, owner, kind string, tweet map[string]interface{}) {
	post.AccountID = owner
	post.Kind = kind
	post.PostIDStr = coerce.OptString(tweet["id_str"])
	post.CreatedAt = coerce.Time(tweet["created_at"])
	post.FullText = coerce.String(tweet["full_text"])
	post.Lang = coerce.String(tweet["lang"])
	post.Source = coerce.String(tweet["source"])
	post.Retweeted = coerce.Bool(tweet["retweeted"])
	post.Favorited = coerce.Bool(tweet["favorited"])
	post.Truncated = coerce.Bool(tweet["truncated"])
	post.FavoriteCount = coerce.Int64(tweet["favorite_count"])
	post.RetweetCount = coerce.Int64(tweet["retweet_count"])
	post.DisplayTextRange = displayRangeJSON(tweet["display_text_range"])
	post.InReplyToStatusID = coerce.OptString(tweet["in_reply_to_status_id"])
	post.InReplyToStatusIDStr = coerce.OptString(tweet["in_reply_to_status_id_str"])
	post.InReplyToUserID = coerce.OptString(tweet["in_reply_to_user_id"])
	post.InReplyToUserIDStr = coerce.OptString(tweet["in_reply_to_user_id_str"])
	post.InReplyToScreenName = coerce.OptString(tweet["in_reply_to_screen_name"])
	post.PossiblySensitive = coerce.OptBool(tweet["possibly_sensitive"])
	post.EditInfo = jsonValue(tweet["edit_info"])

	if kind == models.PostKindCommunity {
		post.CommunityID = coerce.OptString(tweet["community_id"])
		post.CommunityIDStr = coerce.OptString(tweet["community_id_str"])
		post.Scopes = jsonValue(tweet["scopes"])
	}
}

// mapPost builds a fresh post row from the raw export map.
func mapPost(owner, kind string, tweet map[string]interface{}) *models.Post {
	post := &models.Post{PostID: coerce.String(tweet["id"])}
	applyPost(post, owner, kind, tweet)
	return post
}

// applyNote overwrites a note's fields from the raw export map.
func applyNote(note *models.Note, owner string, raw map[string]interface{}) {
	note.AccountID = owner
	note.CreatedAt = coerce.String(raw["createdAt"])
	note.UpdatedAt = coerce.String(raw["updatedAt"])
	note.Lifecycle = jsonValue(raw["lifecycle"])
	note.Core = jsonValue(raw["core"])
}
