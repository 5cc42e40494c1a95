// file: internal/preferences/store.go

// Package preferences persists the toggle values chosen in earlier runs.
package preferences

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"create-next-app/internal/logger"
)

// Keys written to the preference record.
const (
	KeyTypeScript           = "typescript"
	KeyESLint               = "eslint"
	KeyTailwind             = "tailwind"
	KeyApp                  = "app"
	KeySrcDir               = "srcDir"
	KeyImportAlias          = "importAlias"
	KeyCustomizeImportAlias = "customizeImportAlias"
)

// Values is the opaque key to value mapping of one preference record.
// Values are bool or string.
type Values map[string]interface{}

// Bool returns the boolean stored under key, if any.
func (v Values) Bool(key string) (bool, bool) {
	b, ok := v[key].(bool)
	return b, ok
}

// String returns the string stored under key, if any.
func (v Values) String(key string) (string, bool) {
	s, ok := v[key].(string)
	return s, ok
}

// Clone returns an independent copy.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Store is a JSON file holding namespaced records.
type Store struct {
	path      string
	namespace string
	logger    *logger.Logger
}

// NewStore creates a store backed by the file at path.
func NewStore(path, namespace string, log *logger.Logger) *Store {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Store{path: path, namespace: namespace, logger: log}
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored preferences, or an empty mapping when none exist.
func (s *Store) Load() (Values, error) {
	doc, err := s.readDocument()
	if err != nil {
		return nil, err
	}

	raw, ok := doc[s.namespace]
	if !ok {
		return Values{}, nil
	}

	var values Values
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("failed to parse %s in %s: %w", s.namespace, s.path, err)
	}
	if values == nil {
		values = Values{}
	}

	s.logger.Debug("preferences loaded", "path", s.path, "keys", len(values))
	return values, nil
}

// Save replaces the stored preferences, keeping any other records in the file.
func (s *Store) Save(values Values) error {
	doc, err := s.readDocument()
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	doc[s.namespace] = encoded

	if err := s.writeDocument(doc); err != nil {
		return err
	}
	s.logger.Debug("preferences saved", "path", s.path, "keys", len(values))
	return nil
}

// Clear removes every record from the store.
func (s *Store) Clear() error {
	if err := s.writeDocument(map[string]json.RawMessage{}); err != nil {
		return err
	}
	s.logger.Debug("preferences cleared", "path", s.path)
	return nil
}

func (s *Store) readDocument() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}

	doc := map[string]json.RawMessage{}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse preferences file %s: %w", s.path, err)
	}
	return doc, nil
}

// writeDocument writes through a temp file in the same directory and renames it into place.
func (s *Store) writeDocument(doc map[string]json.RawMessage) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(doc, "", "\t")
	if err != nil {
		return fmt.Errorf("failed to encode preferences file: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".config-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}
