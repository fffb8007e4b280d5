package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MinimalConfig_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
base_url: https://blog.example.com/
title: Example Blog
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "posts", cfg.PostsDir)
	require.Equal(t, "drafts", cfg.DraftsDir)
	require.Equal(t, "site", cfg.OutputDir)
	require.Equal(t, "index.html", cfg.IndexFile)
	require.Equal(t, "archive.html", cfg.ArchiveFile)
	require.Equal(t, "tags.html", cfg.TagsFile)
	require.Equal(t, "rss.xml", cfg.FeedFile)
	require.Equal(t, 10, cfg.IndexLength)
	require.Equal(t, ErrorPolicyAbort, cfg.OnPostError)
}

func TestLoad_MissingFile_ReturnsConfigError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryConfig))
}

func TestLoad_IndexLengthZero_IsPreserved(t *testing.T) {
	// Zero is a valid configuration: an index page with no posts, only the
	// archive link. It must not be mistaken for "unset" and defaulted.
	path := writeConfig(t, t.TempDir(), `
base_url: https://blog.example.com/
title: Example Blog
index_length: 0
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 0, cfg.IndexLength)
}

func TestLoad_IndexLengthExplicit_IsPreserved(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
base_url: https://blog.example.com/
title: Example Blog
index_length: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 3, cfg.IndexLength)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("BLOG_TITLE", "From Env")
	path := writeConfig(t, t.TempDir(), `
base_url: https://blog.example.com/
title: ${BLOG_TITLE}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "From Env", cfg.Title)
}

func TestLoad_ChromeFragmentFromFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "header.html"), []byte("<h1>Hi</h1>"), 0o644))
	path := writeConfig(t, dir, `
base_url: https://blog.example.com/
title: Example Blog
header_html_file: header.html
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "<h1>Hi</h1>", cfg.HeaderHTML)
}

func TestValidate_NegativeIndexLength_Fails(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
base_url: https://blog.example.com/
title: Example Blog
index_length: -1
`)

	_, err := Load(path)
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryValidation))
}

func TestValidate_DuplicateAggregateFiles_Fails(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
base_url: https://blog.example.com/
title: Example Blog
archive_file: index.html
`)

	_, err := Load(path)
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryValidation))
}

func TestValidate_BadErrorPolicy_Fails(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
base_url: https://blog.example.com/
title: Example Blog
on_post_error: retry
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestInit_WritesLoadableConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Example Blog", cfg.Title)

	// Second init without force must refuse to clobber.
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))
}
