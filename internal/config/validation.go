package config

import (
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

// Validate checks the configuration for values the pipeline cannot work with.
// Defaults are assumed to have been applied already.
func (c *SiteConfig) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.ValidationFailed("base_url", "must not be empty")
	}
	if strings.TrimSpace(c.Title) == "" {
		return errors.ValidationFailed("title", "must not be empty")
	}
	if c.IndexLength < 0 {
		return errors.ValidationFailed("index_length", "must be >= 0")
	}
	if c.PostsDir == c.OutputDir {
		return errors.ValidationFailed("output_dir", "must differ from posts_dir")
	}

	// Aggregate output names must be distinct; two aggregates writing the same
	// file would silently clobber each other.
	names := map[string]string{}
	for field, name := range map[string]string{
		"index_file":   c.IndexFile,
		"archive_file": c.ArchiveFile,
		"tags_file":    c.TagsFile,
		"feed_file":    c.FeedFile,
	} {
		if name == "" {
			return errors.ValidationFailed(field, "must not be empty")
		}
		if prev, dup := names[name]; dup {
			return errors.ValidationFailed(field, "duplicates "+prev)
		}
		names[name] = field
	}

	switch c.OnPostError {
	case ErrorPolicyAbort, ErrorPolicySkip:
	default:
		return errors.ValidationFailed("on_post_error", `must be "abort" or "skip"`)
	}

	return nil
}
