// Package aggregate builds the derived views over the non-draft document
// collection: index, archive, tag index, and RSS feed.
package aggregate

import (
	"sort"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// Entry is the transient tuple every aggregate builder works from. Body is
// populated only for builders that embed full bodies (index, feed).
type Entry struct {
	Date  time.Time
	Title string
	URL   string
	File  string // output file name; doubles as the sort tie-break key
	Tags  []string
	Body  []byte
}

// BodySource returns the rendered body fragment for one document. The
// orchestrator serves fragments from memory for documents rendered this run
// and re-extracts them from the output file otherwise.
type BodySource func(doc *post.Document) ([]byte, error)

// Collect builds the sorted entry list for a set of documents. Drafts are
// excluded here, unconditionally; no aggregate ever sees one. Pass a nil
// BodySource for builders that need only headline data.
func Collect(cfg *config.SiteConfig, docs []*post.Document, bodies BodySource) ([]Entry, error) {
	entries := make([]Entry, 0, len(docs))
	for _, doc := range docs {
		if doc.Draft {
			continue
		}
		e := Entry{
			Date:  doc.Date,
			Title: doc.Title,
			URL:   doc.URL(cfg.BaseURL),
			File:  doc.OutputName(),
			Tags:  doc.Tags,
		}
		if bodies != nil {
			body, err := bodies(doc)
			if err != nil {
				return nil, err
			}
			e.Body = body
		}
		entries = append(entries, e)
	}

	SortEntries(entries)
	return entries, nil
}

// SortEntries orders entries by date descending. Equal dates fall back to
// output file name ascending so output is reproducible regardless of
// discovery order.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.After(entries[j].Date)
		}
		return entries[i].File < entries[j].File
	})
}
