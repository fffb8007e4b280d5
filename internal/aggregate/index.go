package aggregate

import (
	"bytes"
	"html"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/render"
)

// BuildIndex renders the index page: the most recent IndexLength posts in
// full, newest first, followed by a link to the archive. Entries must carry
// bodies.
func BuildIndex(cfg *config.SiteConfig, r *render.Renderer, entries []Entry) ([]byte, error) {
	n := cfg.IndexLength
	if n > len(entries) {
		n = len(entries)
	}

	var content bytes.Buffer
	for _, e := range entries[:n] {
		content.WriteString("<div class=\"post\">\n")
		content.WriteString("<div class=\"post-date\">" + e.Date.Format(render.DateDisplayFormat) + "</div>\n")
		content.WriteString("<h2 class=\"post-title\"><a href=\"" + html.EscapeString(e.URL) + "\">" + html.EscapeString(e.Title) + "</a></h2>\n")
		content.Write(e.Body)
		content.WriteString("\n</div>\n")
	}
	content.WriteString("<div id=\"archive\"><a href=\"" + html.EscapeString(cfg.ArchiveFile) + "\">Older posts</a></div>\n")

	page, err := r.RenderAggregatePage(cfg.Title, content.Bytes())
	if err != nil {
		return nil, errors.AggregateFailed("index", err)
	}
	return page, nil
}
