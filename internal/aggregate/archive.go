package aggregate

import (
	"bytes"
	"html"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/render"
)

// BuildArchive renders the archive page: one headline block per post, newest
// first, no bodies.
func BuildArchive(cfg *config.SiteConfig, r *render.Renderer, entries []Entry) ([]byte, error) {
	var content bytes.Buffer
	content.WriteString("<h1 class=\"title\">Archive</h1>\n")
	for _, e := range entries {
		writeHeadline(&content, e)
	}

	page, err := r.RenderAggregatePage(cfg.Title+" - Archive", content.Bytes())
	if err != nil {
		return nil, errors.AggregateFailed("archive", err)
	}
	return page, nil
}

// writeHeadline emits the date + linked title block shared by the archive and
// tags pages.
func writeHeadline(buf *bytes.Buffer, e Entry) {
	buf.WriteString("<div class=\"headline\">\n")
	buf.WriteString("<div class=\"post-date\">" + e.Date.Format(render.DateDisplayFormat) + "</div>\n")
	buf.WriteString("<a href=\"" + html.EscapeString(e.URL) + "\">" + html.EscapeString(e.Title) + "</a>\n")
	buf.WriteString("</div>\n")
}
