// Package pipeline drives a publish run: discovery, staleness checks,
// per-document rendering, and aggregate regeneration.
package pipeline

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/blogbuilder/internal/aggregate"
	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/incremental"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
	"git.home.luguber.info/inful/blogbuilder/internal/render"
)

// Result summarizes one publish run for CLI reporting.
type Result struct {
	BuildID         string
	Rendered        int // documents (re)rendered this run, drafts included
	Fresh           int // documents whose output was already up to date
	Failed          int // documents skipped under the "skip" error policy
	AggregatesBuilt bool
	Duration        time.Duration
}

// Pipeline executes publish runs against one immutable site configuration.
type Pipeline struct {
	cfg      *config.SiteConfig
	renderer *render.Renderer
	logger   *slog.Logger
}

// New creates a Pipeline. A nil markup converter selects the Goldmark default.
func New(cfg *config.SiteConfig, markup render.Markup) *Pipeline {
	if markup == nil {
		markup = render.NewGoldmark()
	}
	return &Pipeline{
		cfg:      cfg,
		renderer: render.New(cfg, markup),
		logger:   slog.Default(),
	}
}

// WithLogger sets a custom logger.
func (p *Pipeline) WithLogger(logger *slog.Logger) *Pipeline {
	p.logger = logger
	return p
}

// Publish runs the full pipeline once: every stale document is re-rendered,
// and all four aggregates are regenerated if any post (not draft) was.
func (p *Pipeline) Publish() (*Result, error) {
	start := time.Now()
	result := &Result{BuildID: uuid.NewString()}
	logger := p.logger.With(logfields.BuildID(result.BuildID))

	postPaths, err := listDocuments(p.cfg.PostsDir)
	if err != nil {
		return nil, err
	}
	// A missing drafts directory just means there are no drafts.
	var draftPaths []string
	if _, statErr := os.Stat(p.cfg.DraftsDir); statErr == nil {
		draftPaths, err = listDocuments(p.cfg.DraftsDir)
		if err != nil {
			return nil, err
		}
	}
	logger.Info("Discovered documents",
		slog.Int("posts", len(postPaths)), slog.Int("drafts", len(draftPaths)))

	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return nil, errors.IOFailure("mkdir", p.cfg.OutputDir, err)
	}

	// Step 2: per-document staleness check and render. Bodies rendered this
	// run are kept in memory so aggregation never re-scans their pages.
	var docs []*post.Document
	bodies := make(map[string][]byte)
	postsRendered := 0

	process := func(path string, draft bool) error {
		doc, err := post.Load(path, draft)
		if err != nil {
			return err
		}

		outPath := filepath.Join(p.cfg.OutputDir, doc.OutputName())
		stale, err := incremental.OutputStale(path, outPath)
		if err != nil {
			return err
		}

		if stale {
			page, err := p.renderer.RenderDocument(doc)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, page.HTML, 0o644); err != nil {
				return errors.IOFailure("write", outPath, err)
			}
			logger.Info("Rendered document",
				logfields.Post(doc.Slug), logfields.Output(outPath), logfields.Draft(draft))
			result.Rendered++
			if !draft {
				postsRendered++
				bodies[doc.Slug] = page.Body
			}
		} else {
			result.Fresh++
		}

		if !draft {
			docs = append(docs, doc)
		}
		return nil
	}

	for _, group := range []struct {
		paths []string
		draft bool
	}{
		{postPaths, false},
		{draftPaths, true},
	} {
		for _, path := range group.paths {
			if err := process(path, group.draft); err != nil {
				if p.cfg.OnPostError == config.ErrorPolicySkip {
					logger.Error("Skipping document after error",
						logfields.Path(path), logfields.Error(err))
					result.Failed++
					continue
				}
				return nil, err
			}
		}
	}

	// Step 3: aggregates are all-or-nothing. Any rendered post invalidates
	// all four; none is staleness-checked individually.
	if postsRendered > 0 {
		if err := p.buildAggregates(logger, docs, bodies); err != nil {
			return nil, err
		}
		result.AggregatesBuilt = true
	}

	result.Duration = time.Since(start)
	logger.Info("Publish run complete",
		slog.Int("rendered", result.Rendered),
		slog.Int("fresh", result.Fresh),
		slog.Int("failed", result.Failed),
		slog.Bool("aggregates", result.AggregatesBuilt),
		logfields.DurationMS(float64(result.Duration.Milliseconds())))
	return result, nil
}

// buildAggregates regenerates index, archive, tags, and feed. Every page is
// assembled fully in memory before a single byte is written, so a failure
// never leaves a half-written aggregate behind.
func (p *Pipeline) buildAggregates(logger *slog.Logger, docs []*post.Document, bodies map[string][]byte) error {
	entries, err := aggregate.Collect(p.cfg, docs, func(doc *post.Document) ([]byte, error) {
		if body, ok := bodies[doc.Slug]; ok {
			return body, nil
		}
		return p.bodyFromOutput(doc)
	})
	if err != nil {
		return err
	}

	now := time.Now()
	outputs := []struct {
		name  string
		file  string
		build func() ([]byte, error)
	}{
		{"index", p.cfg.IndexFile, func() ([]byte, error) { return aggregate.BuildIndex(p.cfg, p.renderer, entries) }},
		{"archive", p.cfg.ArchiveFile, func() ([]byte, error) { return aggregate.BuildArchive(p.cfg, p.renderer, entries) }},
		{"tags", p.cfg.TagsFile, func() ([]byte, error) { return aggregate.BuildTags(p.cfg, p.renderer, entries) }},
		{"feed", p.cfg.FeedFile, func() ([]byte, error) { return aggregate.BuildFeed(p.cfg, entries, now) }},
	}

	for _, out := range outputs {
		started := time.Now()
		page, err := out.build()
		if err != nil {
			return err
		}
		outPath := filepath.Join(p.cfg.OutputDir, out.file)
		if err := os.WriteFile(outPath, page, 0o644); err != nil {
			return errors.IOFailure("write", outPath, err)
		}
		logger.Info("Built aggregate",
			logfields.Aggregate(out.name),
			logfields.Output(outPath),
			logfields.Count(len(entries)),
			logfields.DurationMS(float64(time.Since(started).Milliseconds())))
	}
	return nil
}

// bodyFromOutput re-extracts a document's body fragment from its page on disk.
func (p *Pipeline) bodyFromOutput(doc *post.Document) ([]byte, error) {
	outPath := filepath.Join(p.cfg.OutputDir, doc.OutputName())
	full, err := os.ReadFile(outPath)
	if err != nil {
		return nil, errors.IOFailure("read", outPath, err)
	}
	return render.ExtractBody(outPath, full)
}

// PublishPost renders exactly one named document if stale. It never touches
// aggregates; callers needing those updated must run Publish.
func (p *Pipeline) PublishPost(path string) error {
	draft := p.isDraftPath(path)
	doc, err := post.Load(path, draft)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return errors.IOFailure("mkdir", p.cfg.OutputDir, err)
	}

	outPath := filepath.Join(p.cfg.OutputDir, doc.OutputName())
	stale, err := incremental.OutputStale(path, outPath)
	if err != nil {
		return err
	}
	if !stale {
		p.logger.Info("Document already up to date", logfields.Post(doc.Slug))
		return nil
	}

	page, err := p.renderer.RenderDocument(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, page.HTML, 0o644); err != nil {
		return errors.IOFailure("write", outPath, err)
	}
	p.logger.Info("Rendered document",
		logfields.Post(doc.Slug), logfields.Output(outPath), logfields.Draft(draft))
	return nil
}

// isDraftPath reports whether path lives under the configured drafts directory.
func (p *Pipeline) isDraftPath(path string) bool {
	rel, err := filepath.Rel(p.cfg.DraftsDir, path)
	if err != nil {
		return false
	}
	return rel == filepath.Base(path)
}

// listDocuments returns the regular, non-hidden files directly under dir,
// sorted by name for deterministic processing order.
func listDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.IOFailure("readdir", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || entry.Name()[0] == '.' {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}
