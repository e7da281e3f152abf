package archive

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func wrapYTD(globalName string, payload interface{}) string {
	body, _ := json.Marshal(payload)
	return fmt.Sprintf("window.%s = %s\n", globalName, body)
}

func wrapManifest(payload interface{}) string {
	body, _ := json.Marshal(payload)
	return fmt.Sprintf("window.__THAR_CONFIG = %s\n", body)
}

func buildZip(t *testing.T, files map[string]string) (*bytes.Reader, int64) {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("failed to create zip entry %s: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write zip entry %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return bytes.NewReader(buf.Bytes()), int64(buf.Len())
}

func accountPayload() []interface{} {
	return []interface{}{
		map[string]interface{}{
			"account": map[string]interface{}{
				"createdVia":         "oauth:1",
				"username":           "example",
				"accountId":          "42",
				"createdAt":          "2016-03-08T05:42:24.075Z",
				"accountDisplayName": "Example",
			},
		},
	}
}

func TestLoadZipNormalizesDatasets(t *testing.T) {
	tweets := []interface{}{
		map[string]interface{}{
			"tweet": map[string]interface{}{
				"id":         "111",
				"id_str":     "111",
				"created_at": "Thu Jan 22 21:04:29 +0000 2026",
				"full_text":  "hello",
			},
		},
	}
	manifest := map[string]interface{}{
		"dataTypes": map[string]interface{}{
			"account": map[string]interface{}{
				"files": []interface{}{map[string]interface{}{"fileName": "data/account.js"}},
			},
			"tweets": map[string]interface{}{
				"files": []interface{}{map[string]interface{}{"fileName": "data/tweets.js"}},
			},
		},
	}

	r, size := buildZip(t, map[string]string{
		"data/manifest.js": wrapManifest(manifest),
		"data/account.js":  wrapYTD("YTD.account.part0", accountPayload()),
		"data/tweets.js":   wrapYTD("YTD.tweets.part0", tweets),
	})

	doc, err := LoadZip(r, size)
	if err != nil {
		t.Fatalf("LoadZip() error = %v", err)
	}

	accounts := doc.Records(KindAccount)
	if len(accounts) != 1 {
		t.Fatalf("expected 1 account record, got %d", len(accounts))
	}
	account := accounts[0]["account"].(map[string]interface{})
	if account["accountId"] != "42" {
		t.Errorf("accountId = %v, want 42", account["accountId"])
	}

	posts := doc.Records(KindTweets)
	if len(posts) != 1 {
		t.Fatalf("expected 1 tweet record, got %d", len(posts))
	}
	tweet := posts[0]["tweet"].(map[string]interface{})
	if tweet["id_str"] != "111" {
		t.Errorf("id_str = %v, want 111", tweet["id_str"])
	}

	// Missing manifest entries yield empty lists, not errors.
	if got := doc.Records(KindLike); len(got) != 0 {
		t.Errorf("expected empty like list, got %d records", len(got))
	}
}

func TestLoadZipMergesMultipartFiles(t *testing.T) {
	part0 := []interface{}{
		map[string]interface{}{"tweet": map[string]interface{}{"id": "1", "id_str": "1", "full_text": "a"}},
	}
	part1 := []interface{}{
		map[string]interface{}{"tweet": map[string]interface{}{"id": "2", "id_str": "2", "full_text": "b"}},
	}
	manifest := map[string]interface{}{
		"dataTypes": map[string]interface{}{
			"account": map[string]interface{}{
				"files": []interface{}{map[string]interface{}{"fileName": "data/account.js"}},
			},
			"tweets": map[string]interface{}{
				"files": []interface{}{
					map[string]interface{}{"fileName": "data/tweets-part0.js"},
					map[string]interface{}{"fileName": "data/tweets-part1.js"},
				},
			},
		},
	}

	r, size := buildZip(t, map[string]string{
		"data/manifest.js":    wrapManifest(manifest),
		"data/account.js":     wrapYTD("YTD.account.part0", accountPayload()),
		"data/tweets-part0.js": wrapYTD("YTD.tweets.part0", part0),
		"data/tweets-part1.js": wrapYTD("YTD.tweets.part1", part1),
	})

	doc, err := LoadZip(r, size)
	if err != nil {
		t.Fatalf("LoadZip() error = %v", err)
	}

	posts := doc.Records(KindTweets)
	if len(posts) != 2 {
		t.Fatalf("expected 2 merged tweet records, got %d", len(posts))
	}
	first := posts[0]["tweet"].(map[string]interface{})
	second := posts[1]["tweet"].(map[string]interface{})
	if first["id_str"] != "1" || second["id_str"] != "2" {
		t.Errorf("manifest file order not preserved: got %v then %v", first["id_str"], second["id_str"])
	}
}

func TestLoadZipMatchesSingleDocument(t *testing.T) {
	tweets := []interface{}{
		map[string]interface{}{"tweet": map[string]interface{}{"id": "1", "full_text": "a"}},
		map[string]interface{}{"tweet": map[string]interface{}{"id": "2", "full_text": "b"}},
	}
	manifest := map[string]interface{}{
		"dataTypes": map[string]interface{}{
			"account": map[string]interface{}{
				"files": []interface{}{map[string]interface{}{"fileName": "data/account.js"}},
			},
			"tweets": map[string]interface{}{
				"files": []interface{}{
					map[string]interface{}{"fileName": "data/tweets-part0.js"},
					map[string]interface{}{"fileName": "data/tweets-part1.js"},
				},
			},
		},
	}

	r, size := buildZip(t, map[string]string{
		"data/manifest.js":     wrapManifest(manifest),
		"data/account.js":      wrapYTD("YTD.account.part0", accountPayload()),
		"data/tweets-part0.js": wrapYTD("YTD.tweets.part0", tweets[:1]),
		"data/tweets-part1.js": wrapYTD("YTD.tweets.part1", tweets[1:]),
	})

	fromZip, err := LoadZip(r, size)
	if err != nil {
		t.Fatalf("LoadZip() error = %v", err)
	}

	fromDoc := ParseDocument(map[string]interface{}{
		"account": accountPayload(),
		"tweets":  tweets,
	})

	for _, kind := range Kinds {
		zipRecords, _ := json.Marshal(fromZip.Records(kind))
		docRecords, _ := json.Marshal(fromDoc.Records(kind))
		if len(fromZip.Records(kind)) != len(fromDoc.Records(kind)) || !bytes.Equal(zipRecords, docRecords) {
			t.Errorf("kind %s differs between zip and single-document input:\nzip: %s\ndoc: %s", kind, zipRecords, docRecords)
		}
	}
}

func TestLoadZipMalformed(t *testing.T) {
	manifest := map[string]interface{}{
		"dataTypes": map[string]interface{}{
			"tweets": map[string]interface{}{
				"files": []interface{}{map[string]interface{}{"fileName": "data/tweets.js"}},
			},
		},
	}

	tests := []struct {
		name  string
		files map[string]string
	}{
		{
			name: "missing manifest",
			files: map[string]string{
				"data/tweets.js": wrapYTD("YTD.tweets.part0", []interface{}{}),
			},
		},
		{
			name: "fragment missing wrapper",
			files: map[string]string{
				"data/manifest.js": wrapManifest(manifest),
				"data/tweets.js":   `[{"tweet":{"id":"1"}}]`,
			},
		},
		{
			name: "fragment with bad JSON body",
			files: map[string]string{
				"data/manifest.js": wrapManifest(manifest),
				"data/tweets.js":   "window.YTD.tweets.part0 = [{broken",
			},
		},
		{
			name: "manifest references missing file",
			files: map[string]string{
				"data/manifest.js": wrapManifest(manifest),
			},
		},
		{
			name: "wrapper with unexpected prefix",
			files: map[string]string{
				"data/manifest.js": wrapManifest(manifest),
				"data/tweets.js":   "var tweets = []",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, size := buildZip(t, tt.files)
			_, err := LoadZip(r, size)
			var malformed *MalformedArchiveError
			if !errors.As(err, &malformed) {
				t.Fatalf("LoadZip() error = %v, want MalformedArchiveError", err)
			}
		})
	}
}

func TestParseDocumentUploadOptionsObject(t *testing.T) {
	doc := ParseDocument(map[string]interface{}{
		"upload-options": map[string]interface{}{
			"keepPrivate": false,
			"uploadLikes": true,
		},
	})

	records := doc.Records(KindUploadOptions)
	if len(records) != 1 {
		t.Fatalf("expected bare upload-options object to normalize to 1 record, got %d", len(records))
	}
	if records[0]["uploadLikes"] != true {
		t.Errorf("uploadLikes = %v, want true", records[0]["uploadLikes"])
	}
}
