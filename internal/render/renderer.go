// Package render assembles complete HTML pages around converted body
// fragments and recovers body fragments from pages rendered in earlier runs.
package render

import (
	"bytes"
	"html/template"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// Markers delimiting the body fragment inside a rendered page. Aggregators
// re-extract bodies of pages rendered in earlier runs by scanning for these,
// so they must stay stable and must not appear in chrome fragments or bodies.
const (
	BodyOpenMarker  = "<!-- blogbuilder:body -->"
	BodyCloseMarker = "<!-- /blogbuilder:body -->"
)

// DateDisplayFormat is how dates appear on rendered pages.
const DateDisplayFormat = "02 Jan 2006"

// Page is the rendered output for one document. Body is the exact byte run
// embedded between the markers in HTML, kept as a first-class value so that
// aggregates built in the same run never re-scan the page text.
type Page struct {
	HTML []byte
	Body []byte
}

var pageTpl = template.Must(template.New("page").Parse(`<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml" lang="en">
<head>
<meta charset="utf-8"/>
<link rel="alternate" type="application/rss+xml" href="{{.FeedURL}}" title="RSS feed"/>
<title>{{.Title}}</title>
{{.Header}}</head>
<body>
{{.Preamble}}<div class="post">
<div class="post-date">{{.Date}}</div>
<h1 class="post-title">{{.Title}}</h1>
{{.BodyOpen}}
{{.Body}}
{{.BodyClose}}
</div>
{{.Postamble}}</body>
</html>
`))

type pageData struct {
	Title     string
	Date      string
	FeedURL   string
	Header    template.HTML
	Preamble  template.HTML
	Body      template.HTML
	BodyOpen  template.HTML
	BodyClose template.HTML
	Postamble template.HTML
}

// Renderer renders documents into standalone pages for one site configuration.
type Renderer struct {
	cfg    *config.SiteConfig
	markup Markup
}

// New creates a Renderer using the given markup converter.
func New(cfg *config.SiteConfig, markup Markup) *Renderer {
	return &Renderer{cfg: cfg, markup: markup}
}

// RenderDocument converts the document body and wraps it with page chrome.
func (r *Renderer) RenderDocument(doc *post.Document) (*Page, error) {
	body, err := r.markup.Convert(doc.Body)
	if err != nil {
		return nil, errors.RenderFailed(doc.Path, err)
	}
	return r.wrap(doc, body)
}

// wrap assembles the full page around an already-converted body fragment.
func (r *Renderer) wrap(doc *post.Document, body []byte) (*Page, error) {
	data := pageData{
		Title:     doc.Title,
		Date:      doc.Date.Format(DateDisplayFormat),
		FeedURL:   feedURL(r.cfg),
		Header:    template.HTML(r.cfg.HeaderHTML),
		Preamble:  template.HTML(r.cfg.PreambleHTML),
		Body:      template.HTML(body),
		BodyOpen:  template.HTML(BodyOpenMarker),
		BodyClose: template.HTML(BodyCloseMarker),
		Postamble: template.HTML(r.cfg.PostambleHTML),
	}

	var buf bytes.Buffer
	if err := pageTpl.Execute(&buf, data); err != nil {
		return nil, errors.RenderFailed(doc.Path, err)
	}
	return &Page{HTML: buf.Bytes(), Body: body}, nil
}

// ExtractBody recovers the body fragment from an already-rendered full page
// by locating the text between the body markers. A page without both markers
// was never rendered by this tool or is structurally unexpected; that is
// fatal, never an empty body.
func ExtractBody(path string, full []byte) ([]byte, error) {
	start := bytes.Index(full, []byte(BodyOpenMarker))
	if start < 0 {
		return nil, errors.BodyMarkerNotFound(path)
	}
	start += len(BodyOpenMarker)
	// The template puts each marker on its own line.
	if start < len(full) && full[start] == '\n' {
		start++
	}

	end := bytes.Index(full[start:], []byte(BodyCloseMarker))
	if end < 0 {
		return nil, errors.BodyMarkerNotFound(path)
	}
	body := full[start : start+end]
	body = bytes.TrimSuffix(body, []byte("\n"))
	return body, nil
}

func feedURL(cfg *config.SiteConfig) string {
	base := cfg.BaseURL
	for len(base) > 0 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	return base + "/" + cfg.FeedFile
}
