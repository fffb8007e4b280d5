package aggregate

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/post"
	"git.home.luguber.info/inful/blogbuilder/internal/render"
)

// collectWithBodies builds entries over docs with a canned body per slug.
func collectWithBodies(t *testing.T, docs []*post.Document, bodies map[string]string) []Entry {
	t.Helper()
	entries, err := Collect(testSite(), docs, func(d *post.Document) ([]byte, error) {
		return []byte(bodies[d.Slug]), nil
	})
	require.NoError(t, err)
	return entries
}

func TestBuildIndex_KeepsIndexLengthNewestPosts(t *testing.T) {
	cfg := testSite()
	cfg.IndexLength = 2
	r := render.New(cfg, render.NewGoldmark())

	docs := []*post.Document{
		doc("jan2020", day(2020, 1, 1)),
		doc("jun2020", day(2020, 6, 1)),
		doc("jan2021", day(2021, 1, 1)),
	}
	entries := collectWithBodies(t, docs, map[string]string{
		"jan2020": "<p>body jan2020</p>",
		"jun2020": "<p>body jun2020</p>",
		"jan2021": "<p>body jan2021</p>",
	})

	page, err := BuildIndex(cfg, r, entries)
	require.NoError(t, err)

	html := string(page)
	require.Contains(t, html, "<p>body jan2021</p>")
	require.Contains(t, html, "<p>body jun2020</p>")
	require.NotContains(t, html, "<p>body jan2020</p>")
	// Newest first.
	require.Less(t, strings.Index(html, "jan2021"), strings.Index(html, "jun2020"))
	// Static link to the archive.
	require.Contains(t, html, `<a href="archive.html">Older posts</a>`)
}

func TestBuildIndex_FewerPostsThanIndexLength(t *testing.T) {
	cfg := testSite()
	cfg.IndexLength = 10
	r := render.New(cfg, render.NewGoldmark())

	entries := collectWithBodies(t, []*post.Document{doc("only", day(2021, 1, 1))},
		map[string]string{"only": "<p>solo</p>"})

	page, err := BuildIndex(cfg, r, entries)
	require.NoError(t, err)
	require.Contains(t, string(page), "<p>solo</p>")
}

func TestBuildIndex_ZeroIndexLength_EmptyIndexWithArchiveLink(t *testing.T) {
	cfg := testSite()
	cfg.IndexLength = 0
	r := render.New(cfg, render.NewGoldmark())

	entries := collectWithBodies(t, []*post.Document{doc("only", day(2021, 1, 1))},
		map[string]string{"only": "<p>solo</p>"})

	page, err := BuildIndex(cfg, r, entries)
	require.NoError(t, err)
	require.NotContains(t, string(page), "<p>solo</p>")
	require.Contains(t, string(page), `<a href="archive.html">Older posts</a>`)
}

func TestBuildArchive_AllPostsNewestFirstNoBodies(t *testing.T) {
	cfg := testSite()
	r := render.New(cfg, render.NewGoldmark())

	docs := []*post.Document{
		doc("jan2020", day(2020, 1, 1)),
		doc("jun2020", day(2020, 6, 1)),
		doc("jan2021", day(2021, 1, 1)),
	}
	entries, err := Collect(cfg, docs, nil)
	require.NoError(t, err)

	page, err := BuildArchive(cfg, r, entries)
	require.NoError(t, err)

	html := string(page)
	for _, slug := range []string{"jan2020", "jun2020", "jan2021"} {
		require.Contains(t, html, "Title of "+slug)
	}
	require.Less(t, strings.Index(html, "Title of jan2021"), strings.Index(html, "Title of jun2020"))
	require.Less(t, strings.Index(html, "Title of jun2020"), strings.Index(html, "Title of jan2020"))
}

func TestBuildTagIndex_CaseInsensitiveIdentityPreservesDisplayCase(t *testing.T) {
	entries := []Entry{
		{File: "a.html", Title: "a", Date: day(2021, 1, 1), Tags: []string{"Emacs"}},
		{File: "b.html", Title: "b", Date: day(2020, 1, 1), Tags: []string{"emacs"}},
	}

	idx := BuildTagIndex(entries)
	require.Equal(t, []string{"Emacs"}, idx.Tags())
	require.Len(t, idx.Entries("EMACS"), 2)
}

func TestBuildTags_GroupsPostsUnderEachTag(t *testing.T) {
	cfg := testSite()
	r := render.New(cfg, render.NewGoldmark())

	docs := []*post.Document{
		doc("first", day(2021, 1, 1), "emacs", "lisp"),
		doc("second", day(2020, 1, 1), "lisp"),
	}
	entries, err := Collect(cfg, docs, nil)
	require.NoError(t, err)

	page, err := BuildTags(cfg, r, entries)
	require.NoError(t, err)

	html := string(page)
	require.Contains(t, html, `<h2 class="tag" id="emacs">emacs</h2>`)
	require.Contains(t, html, `<h2 class="tag" id="lisp">lisp</h2>`)

	// lisp lists both posts newest first; emacs lists only the first.
	lisp := html[strings.Index(html, `id="lisp"`):]
	require.Contains(t, lisp, "Title of first")
	require.Contains(t, lisp, "Title of second")
	require.Less(t, strings.Index(lisp, "Title of first"), strings.Index(lisp, "Title of second"))

	emacs := html[strings.Index(html, `id="emacs"`):strings.Index(html, `id="lisp"`)]
	require.Contains(t, emacs, "Title of first")
	require.NotContains(t, emacs, "Title of second")
}

func TestBuildFeed_ItemsCarryFullBodyAndFeedDates(t *testing.T) {
	cfg := testSite()
	docs := []*post.Document{
		doc("newer", day(2021, 1, 1)),
		doc("older", day(2020, 6, 1)),
	}
	entries := collectWithBodies(t, docs, map[string]string{
		"newer": "<p>full <em>body</em> newer</p>\n",
		"older": "<p>full body older</p>\n",
	})

	now := time.Date(2021, 2, 1, 12, 0, 0, 0, time.UTC)
	feed, err := BuildFeed(cfg, entries, now)
	require.NoError(t, err)

	xml := string(feed)
	require.Contains(t, xml, `<rss version="2.0"`)
	require.Contains(t, xml, "<title>Example Blog</title>")
	require.Contains(t, xml, "<lastBuildDate>"+now.Format(time.RFC1123Z)+"</lastBuildDate>")
	require.Contains(t, xml, "<link>https://blog.example.com/newer.html</link>")
	require.Contains(t, xml, "<pubDate>"+day(2021, 1, 1).Format(time.RFC1123Z)+"</pubDate>")

	// Body HTML is byte-identical inside the CDATA wrapper.
	require.Contains(t, xml, "<![CDATA[<p>full <em>body</em> newer</p>\n]]>")

	// Newest first.
	require.Less(t, strings.Index(xml, "newer.html"), strings.Index(xml, "older.html"))
}

func TestBuildFeed_DescriptionIsPlainTextSummary(t *testing.T) {
	cfg := testSite()
	entries := collectWithBodies(t, []*post.Document{doc("p", day(2021, 1, 1))},
		map[string]string{"p": "<p>Hello <strong>world</strong> again</p>"})

	feed, err := BuildFeed(cfg, entries, time.Now())
	require.NoError(t, err)
	require.Contains(t, string(feed), "<description>Hello world again</description>")
}

func TestBuildFeed_LongBodySummaryTruncated(t *testing.T) {
	cfg := testSite()
	long := strings.Repeat("word ", 200)
	entries := collectWithBodies(t, []*post.Document{doc("p", day(2021, 1, 1))},
		map[string]string{"p": "<p>" + long + "</p>"})

	feed, err := BuildFeed(cfg, entries, time.Now())
	require.NoError(t, err)
	require.Contains(t, string(feed), "…</description>")
}
