package aggregate

import (
	"bytes"
	"html"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/render"
)

// TagIndex maps tags to the entries carrying them. Tag identity is
// case-insensitive; the display form is the casing of the first occurrence.
type TagIndex struct {
	display map[string]string  // lowercased tag -> display form
	entries map[string][]Entry // lowercased tag -> entries
}

// BuildTagIndex builds the tag index over an entry collection. Entry order
// within a tag follows the input order, so passing a Collect result keeps
// every tag's list date-descending.
func BuildTagIndex(entries []Entry) *TagIndex {
	idx := &TagIndex{
		display: make(map[string]string),
		entries: make(map[string][]Entry),
	}
	for _, e := range entries {
		for _, tag := range e.Tags {
			key := strings.ToLower(tag)
			if _, seen := idx.display[key]; !seen {
				idx.display[key] = tag
			}
			idx.entries[key] = append(idx.entries[key], e)
		}
	}
	return idx
}

// Tags returns the display forms of all tags, collated case-insensitively
// so the tags page is reproducible across runs.
func (idx *TagIndex) Tags() []string {
	keys := make([]string, 0, len(idx.display))
	for key := range idx.display {
		keys = append(keys, key)
	}
	collate.New(language.Und, collate.Loose).SortStrings(keys)

	tags := make([]string, len(keys))
	for i, key := range keys {
		tags[i] = idx.display[key]
	}
	return tags
}

// Entries returns the entries for a tag, in the order they were added.
func (idx *TagIndex) Entries(tag string) []Entry {
	return idx.entries[strings.ToLower(tag)]
}

// BuildTags renders the tags page: per tag, a heading followed by headline
// blocks for that tag's posts, newest first within each tag.
func BuildTags(cfg *config.SiteConfig, r *render.Renderer, entries []Entry) ([]byte, error) {
	idx := BuildTagIndex(entries)

	var content bytes.Buffer
	content.WriteString("<h1 class=\"title\">Tags</h1>\n")
	for _, tag := range idx.Tags() {
		content.WriteString("<h2 class=\"tag\" id=\"" + html.EscapeString(strings.ToLower(tag)) + "\">" + html.EscapeString(tag) + "</h2>\n")
		tagged := idx.Entries(tag)
		SortEntries(tagged)
		for _, e := range tagged {
			writeHeadline(&content, e)
		}
	}

	page, err := r.RenderAggregatePage(cfg.Title+" - Tags", content.Bytes())
	if err != nil {
		return nil, errors.AggregateFailed("tags", err)
	}
	return page, nil
}
