// Package content provides read-only queries over the published records the
// overlay layer presents. Records are authored by an external content
// management system; this package only loads its export and filters it.
package content

import (
	"fmt"
	"log"
	"os"
	"sort"
	"sync"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// maxSynopsisLen is the longest synopsis a record may carry. Longer records
// are skipped at load with a warning.
const maxSynopsisLen = 160

// Record is one published content entry. BodyHTML passes through verbatim;
// sanitization is the authoring system's responsibility.
type Record struct {
	Slug      string    `yaml:"slug"`
	Title     string    `yaml:"title"`
	Synopsis  string    `yaml:"synopsis"`
	CoverURL  string    `yaml:"cover_url"`
	BodyHTML  string    `yaml:"body_html"`
	Published bool      `yaml:"published"`
	PostedAt  time.Time `yaml:"posted_at"`
}

// libraryImpl is the implementation of the Library interface.
type libraryImpl struct {
	mu *sync.Mutex

	records []Record
}

// Library answers read-only queries over the loaded records.
type Library interface {
	// Published returns the published records, newest first.
	//
	// Returns:
	//   - []Record: published records sorted by PostedAt descending
	Published() []Record

	// BySlug returns the published record with the given slug.
	//
	// Parameters:
	//   - slug: the record slug to look up
	//
	// Returns:
	//   - Record: the record, zero-valued when not found
	//   - bool: false when no published record carries the slug
	BySlug(slug string) (Record, bool)
}

var _ Library = &libraryImpl{}

// LoadLibrary reads a YAML record list from path. Records with an over-long
// synopsis or an empty slug are skipped with a warning rather than failing
// the load.
//
// Parameters:
//   - path: the YAML file to read
//
// Returns:
//   - Library: the loaded library
//   - error: error if the file cannot be read or parsed
func LoadLibrary(path string) (Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}
	return NewLibrary(data)
}

// NewLibrary parses a YAML record list from raw bytes. See LoadLibrary.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Library: the loaded library
//   - error: error if the document cannot be parsed
func NewLibrary(data []byte) (Library, error) {
	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse content records: %w", err)
	}

	kept := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Slug == "" {
			log.Printf("content: skipping record %q: empty slug", r.Title)
			continue
		}
		if utf8.RuneCountInString(r.Synopsis) > maxSynopsisLen {
			log.Printf("content: skipping record %q: synopsis exceeds %d characters", r.Slug, maxSynopsisLen)
			continue
		}
		kept = append(kept, r)
	}

	return &libraryImpl{
		mu:      &sync.Mutex{},
		records: kept,
	}, nil
}

func (l *libraryImpl) Published() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Record, 0, len(l.records))
	for _, r := range l.records {
		if r.Published {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PostedAt.After(out[j].PostedAt)
	})
	return out
}

func (l *libraryImpl) BySlug(slug string) (Record, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, r := range l.records {
		if r.Published && r.Slug == slug {
			return r, true
		}
	}
	return Record{}, false
}
