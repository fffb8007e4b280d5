package post

import (
	"os"
	"regexp"
	"strings"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

// Directive patterns. Keywords are case-insensitive; only the first matching
// line of each directive counts.
var (
	titleRe = regexp.MustCompile(`(?i)^#\+title:\s*(.*)\s*$`)
	dateRe  = regexp.MustCompile(`(?i)^#\+date:\s*<([^>]*)>`)
	tagsRe  = regexp.MustCompile(`(?i)^#\+filetags:\s*(.*)\s*$`)
)

// Timestamp layouts accepted inside the date directive's angle brackets.
var dateLayouts = []string{
	"2006-01-02 Mon 15:04",
	"2006-01-02 Mon",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Load reads a source file and extracts it into a Document.
func Load(path string, draft bool) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IOFailure("read", path, err)
	}
	return Extract(path, content, draft)
}

// Extract parses a document's raw text into a Document. It is a pure function
// of the content; path only names the document for slug derivation and errors.
func Extract(path string, content []byte, draft bool) (*Document, error) {
	doc := &Document{
		Path:  path,
		Slug:  slugFor(path),
		Draft: draft,
	}

	lines := strings.Split(string(content), "\n")
	titleIdx, dateIdx, tagsIdx := -1, -1, -1
	var dateRaw string

	for i, line := range lines {
		if titleIdx < 0 {
			if m := titleRe.FindStringSubmatch(line); m != nil {
				doc.Title = strings.TrimSpace(m[1])
				titleIdx = i
				continue
			}
		}
		if dateIdx < 0 {
			if m := dateRe.FindStringSubmatch(line); m != nil {
				dateRaw = strings.TrimSpace(m[1])
				dateIdx = i
				continue
			}
		}
		if tagsIdx < 0 {
			if m := tagsRe.FindStringSubmatch(line); m != nil {
				doc.Tags = strings.Fields(m[1])
				tagsIdx = i
			}
		}
	}

	if titleIdx < 0 || doc.Title == "" {
		return nil, errors.MissingTitle(path)
	}

	if dateIdx < 0 {
		return nil, errors.MissingOrInvalidDate(path, nil)
	}
	date, err := parseTimestamp(dateRaw)
	if err != nil {
		return nil, errors.MissingOrInvalidDate(path, err)
	}
	doc.Date = date

	doc.Body = bodyWithoutDirectives(lines, titleIdx, dateIdx, tagsIdx)
	return doc, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, raw, time.Local)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// bodyWithoutDirectives returns the source text minus exactly the matched
// directive lines, with leading blank lines trimmed.
func bodyWithoutDirectives(lines []string, skip ...int) []byte {
	skipped := make(map[int]bool, len(skip))
	for _, i := range skip {
		if i >= 0 {
			skipped[i] = true
		}
	}

	kept := make([]string, 0, len(lines))
	for i, line := range lines {
		if skipped[i] {
			continue
		}
		kept = append(kept, line)
	}
	for len(kept) > 0 && strings.TrimSpace(kept[0]) == "" {
		kept = kept[1:]
	}
	return []byte(strings.Join(kept, "\n"))
}
