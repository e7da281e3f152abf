package archive

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"
)

const manifestName = "manifest.js"

// manifest mirrors the container's data/manifest.js structure: a map of
// record kind to the ordered list of fragment files holding its records.
type manifest struct {
	DataTypes map[string]manifestDataType `json:"dataTypes"`
}

type manifestDataType struct {
	Files []manifestFile `json:"files"`
}

type manifestFile struct {
	FileName string `json:"fileName"`
}

// LoadZip normalizes a zip container into a canonical document. The
// manifest lists, per record kind, one or more script-wrapped JSON
// fragments; fragments of the same kind are concatenated in manifest file
// order. Kinds without a manifest entry yield empty lists.
func LoadZip(r io.ReaderAt, size int64) (*Document, error) {
	reader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, &MalformedArchiveError{Fragment: "container", Reason: fmt.Sprintf("not a readable zip: %v", err)}
	}

	entries := make(map[string]*zip.File, len(reader.File))
	for _, f := range reader.File {
		entries[f.Name] = f
	}

	m, err := readManifest(reader, entries)
	if err != nil {
		return nil, err
	}

	doc := NewDocument()
	for _, kind := range Kinds {
		dataType, ok := m.DataTypes[kind]
		if !ok {
			continue
		}
		for _, file := range dataType.Files {
			records, err := readFragment(entries, file.FileName)
			if err != nil {
				return nil, err
			}
			doc.Append(kind, records)
		}
	}
	return doc, nil
}

// readManifest locates and parses the manifest entry.
func readManifest(reader *zip.Reader, entries map[string]*zip.File) (*manifest, error) {
	var manifestEntry *zip.File
	for _, f := range reader.File {
		if path.Base(f.Name) == manifestName {
			manifestEntry = f
			break
		}
	}
	if manifestEntry == nil {
		return nil, &MalformedArchiveError{Fragment: manifestName, Reason: "no manifest entry in container"}
	}

	body, err := readWrapped(manifestEntry)
	if err != nil {
		return nil, err
	}

	var m manifest
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, &MalformedArchiveError{Fragment: manifestEntry.Name, Reason: fmt.Sprintf("invalid manifest JSON: %v", err)}
	}
	return &m, nil
}

// readFragment reads one script-wrapped fragment and parses its JSON array.
func readFragment(entries map[string]*zip.File, name string) ([]map[string]interface{}, error) {
	entry, ok := entries[name]
	if !ok {
		return nil, &MalformedArchiveError{Fragment: name, Reason: "manifest references a missing file"}
	}

	body, err := readWrapped(entry)
	if err != nil {
		return nil, err
	}

	var items []interface{}
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, &MalformedArchiveError{Fragment: name, Reason: fmt.Sprintf("invalid fragment JSON: %v", err)}
	}

	records := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		if record, ok := item.(map[string]interface{}); ok {
			records = append(records, record)
		}
	}
	return records, nil
}

// readWrapped reads a fragment and strips its script wrapper. Fragments
// are JavaScript assignments like
//
//	window.YTD.tweets.part0 = [ ... ]
//
// so everything up to and including the first "=" is the wrapper prefix.
func readWrapped(entry *zip.File) ([]byte, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, &MalformedArchiveError{Fragment: entry.Name, Reason: fmt.Sprintf("unreadable entry: %v", err)}
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, &MalformedArchiveError{Fragment: entry.Name, Reason: fmt.Sprintf("unreadable entry: %v", err)}
	}

	content := string(raw)
	idx := strings.Index(content, "=")
	if idx < 0 {
		return nil, &MalformedArchiveError{Fragment: entry.Name, Reason: "missing script wrapper assignment"}
	}
	prefix := strings.TrimSpace(content[:idx])
	if !strings.HasPrefix(prefix, "window.") {
		return nil, &MalformedArchiveError{Fragment: entry.Name, Reason: "unexpected script wrapper prefix"}
	}

	body := strings.TrimSpace(content[idx+1:])
	body = strings.TrimSuffix(body, ";")
	return []byte(body), nil
}
