// Package archive normalizes a raw social-media export into one canonical
// in-memory document keyed by record kind. Inputs are either a single
// parsed JSON document already shaped as the record-kind map, or a zip
// container holding a manifest that lists per-kind, possibly multi-part,
// script-wrapped JSON fragments.
package archive

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Record kinds present in an export.
const (
	KindAccount       = "account"
	KindProfile       = "profile"
	KindTweets        = "tweets"
	KindCommunity     = "community-tweet"
	KindNote          = "note-tweet"
	KindLike          = "like"
	KindFollower      = "follower"
	KindFollowing     = "following"
	KindUploadOptions = "upload-options"
)

// Kinds lists every record kind in canonical order.
var Kinds = []string{
	KindAccount,
	KindProfile,
	KindTweets,
	KindCommunity,
	KindNote,
	KindLike,
	KindFollower,
	KindFollowing,
	KindUploadOptions,
}

// Document is the canonical, manifest-independent representation of an
// export: one ordered record list per record kind. Kinds absent from the
// source are simply absent from the map; Records returns an empty list
// for them.
type Document struct {
	kinds map[string][]map[string]interface{}
}

// NewDocument creates an empty canonical document.
func NewDocument() *Document {
	return &Document{kinds: make(map[string][]map[string]interface{})}
}

// Records returns the ordered record list for a kind. Missing kinds yield
// an empty list, never an error.
func (d *Document) Records(kind string) []map[string]interface{} {
	return d.kinds[kind]
}

// Append appends records to a kind, preserving order across parts.
func (d *Document) Append(kind string, records []map[string]interface{}) {
	d.kinds[kind] = append(d.kinds[kind], records...)
}

// ParseDocument normalizes an already-parsed JSON structure into a
// canonical document. This input form bypasses all manifest and wrapper
// logic. The upload-options kind historically appears as a bare object
// rather than a list; both shapes are accepted.
func ParseDocument(data map[string]interface{}) *Document {
	doc := NewDocument()
	for _, kind := range Kinds {
		value, ok := data[kind]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case []interface{}:
			for _, item := range v {
				if record, ok := item.(map[string]interface{}); ok {
					doc.Append(kind, []map[string]interface{}{record})
				}
			}
		case map[string]interface{}:
			doc.Append(kind, []map[string]interface{}{v})
		}
	}
	return doc
}

// LoadJSON reads a single-document JSON export.
func LoadJSON(r io.Reader) (*Document, error) {
	var data map[string]interface{}
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, &MalformedArchiveError{Fragment: "document", Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}
	return ParseDocument(data), nil
}

// LoadFile loads an export from disk, dispatching on the zip magic bytes.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	magic := make([]byte, 2)
	if _, err := io.ReadFull(f, magic); err != nil {
		return nil, &MalformedArchiveError{Fragment: path, Reason: "file too short"}
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	if magic[0] == 'P' && magic[1] == 'K' {
		info, err := f.Stat()
		if err != nil {
			return nil, err
		}
		return LoadZip(f, info.Size())
	}
	return LoadJSON(f)
}
