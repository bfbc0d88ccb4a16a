// Package journal records scaffolds written by `spk gen --out` in
// .spk/history.json.
package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Entry describes one generation run.
type Entry struct {
	ID        string            `json:"id"`
	Time      time.Time         `json:"time"`
	Framework string            `json:"framework"`
	Type      string            `json:"type"`
	Params    map[string]string `json:"params,omitempty"`
	Files     []string          `json:"files"`
}

// Journal is the on-disk list of entries, oldest first.
type Journal struct {
	Entries []Entry `json:"entries"`
}

// Path returns the history file location inside dir (normally .spk).
func Path(dir string) string {
	return filepath.Join(dir, "history.json")
}

// Load reads the journal. Returns an empty journal if the file does not exist.
func Load(path string) (*Journal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Journal{}, nil
		}
		return nil, err
	}
	var j Journal
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &j, nil
}

// Append assigns an id and timestamp to e, adds it, and saves the journal.
func Append(path string, e Entry) (Entry, error) {
	j, err := Load(path)
	if err != nil {
		return Entry{}, err
	}
	e.ID = uuid.NewString()
	if e.Time.IsZero() {
		e.Time = time.Now().UTC()
	}
	j.Entries = append(j.Entries, e)
	if err := j.Save(path); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Save writes the journal to path.
func (j *Journal) Save(path string) error {
	data, err := json.MarshalIndent(j, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data, 0644)
}

// Newest returns entries ordered newest first.
func (j *Journal) Newest() []Entry {
	out := append([]Entry(nil), j.Entries...)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Time.After(out[b].Time)
	})
	return out
}
