package render

import (
	"bytes"
	"html/template"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

// Aggregate pages share the standalone pages' chrome but carry no single
// post's date block and no body markers; their content is assembled by the
// aggregate builders and inserted as-is.
var aggregateTpl = template.Must(template.New("aggregate").Parse(`<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml" lang="en">
<head>
<meta charset="utf-8"/>
<link rel="alternate" type="application/rss+xml" href="{{.FeedURL}}" title="RSS feed"/>
<title>{{.Title}}</title>
{{.Header}}</head>
<body>
{{.Preamble}}{{.Content}}
{{.Postamble}}</body>
</html>
`))

type aggregatePageData struct {
	Title     string
	FeedURL   string
	Header    template.HTML
	Preamble  template.HTML
	Content   template.HTML
	Postamble template.HTML
}

// RenderAggregatePage wraps assembled aggregate content with page chrome.
func (r *Renderer) RenderAggregatePage(title string, content []byte) ([]byte, error) {
	data := aggregatePageData{
		Title:     title,
		FeedURL:   feedURL(r.cfg),
		Header:    template.HTML(r.cfg.HeaderHTML),
		Preamble:  template.HTML(r.cfg.PreambleHTML),
		Content:   template.HTML(content),
		Postamble: template.HTML(r.cfg.PostambleHTML),
	}

	var buf bytes.Buffer
	if err := aggregateTpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, errors.CategoryRender, errors.SeverityFatal, "aggregate page template failed")
	}
	return buf.Bytes(), nil
}
