package aggregate

import (
	"encoding/xml"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

// summaryLimit caps the plain-text item description, in runes.
const summaryLimit = 300

// RSS 2.0 envelope. The full body HTML travels in content:encoded wrapped in
// CDATA so it stays textually identical to the standalone page's body; the
// description carries a plain-text summary.
type rssFeed struct {
	XMLName   xml.Name   `xml:"rss"`
	Version   string     `xml:"version,attr"`
	ContentNS string     `xml:"xmlns:content,attr"`
	Channel   rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string     `xml:"title"`
	Link        string     `xml:"link"`
	GUID        rssGUID    `xml:"guid"`
	PubDate     string     `xml:"pubDate"`
	Description string     `xml:"description"`
	Content     rssContent `xml:"content:encoded"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type rssContent struct {
	Value string `xml:",cdata"`
}

// BuildFeed renders the RSS feed document. Entries must carry bodies; now is
// the feed's build timestamp (current time at build, not any document time).
func BuildFeed(cfg *config.SiteConfig, entries []Entry, now time.Time) ([]byte, error) {
	stripper := bluemonday.StrictPolicy()

	items := make([]rssItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, rssItem{
			Title:       e.Title,
			Link:        e.URL,
			GUID:        rssGUID{IsPermaLink: true, Value: e.URL},
			PubDate:     e.Date.Format(time.RFC1123Z),
			Description: summarize(stripper, e.Body),
			Content:     rssContent{Value: string(e.Body)},
		})
	}

	feed := rssFeed{
		Version:   "2.0",
		ContentNS: "http://purl.org/rss/1.0/modules/content/",
		Channel: rssChannel{
			Title:         cfg.Title,
			Link:          cfg.BaseURL,
			Description:   cfg.Description,
			LastBuildDate: now.Format(time.RFC1123Z),
			Items:         items,
		},
	}

	out, err := xml.MarshalIndent(&feed, "", "  ")
	if err != nil {
		return nil, errors.AggregateFailed("feed", err)
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

// summarize reduces a body fragment to a short plain-text description.
func summarize(stripper *bluemonday.Policy, body []byte) string {
	// bluemonday returns entity-escaped text; unescape so the XML encoder is
	// the only escaping layer.
	text := html.UnescapeString(strings.Join(strings.Fields(stripper.Sanitize(string(body))), " "))
	runes := []rune(text)
	if len(runes) <= summaryLimit {
		return text
	}
	return strings.TrimSpace(string(runes[:summaryLimit])) + "…"
}
