package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

// indexLengthUnset marks an index_length key absent from the config file.
// Any plausible explicit value, including 0, is preserved; explicit negatives
// are still rejected by Validate.
const indexLengthUnset = math.MinInt

// ErrorPolicy controls how the pipeline reacts to a fatal document-level error.
type ErrorPolicy string

const (
	// ErrorPolicyAbort stops the whole run on the first bad document.
	ErrorPolicyAbort ErrorPolicy = "abort"
	// ErrorPolicySkip logs the bad document and continues with the rest.
	ErrorPolicySkip ErrorPolicy = "skip"
)

// SiteConfig is the process-wide configuration, loaded once per run and
// treated as immutable for the run's duration.
type SiteConfig struct {
	BaseURL     string `yaml:"base_url"`
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Author      string `yaml:"author,omitempty"`

	PostsDir  string `yaml:"posts_dir"`
	DraftsDir string `yaml:"drafts_dir,omitempty"`
	OutputDir string `yaml:"output_dir"`

	IndexFile   string `yaml:"index_file,omitempty"`
	ArchiveFile string `yaml:"archive_file,omitempty"`
	TagsFile    string `yaml:"tags_file,omitempty"`
	FeedFile    string `yaml:"feed_file,omitempty"`

	// IndexLength is the number of most recent posts shown in full on the index page.
	IndexLength int `yaml:"index_length"`

	// Chrome fragments are opaque HTML inserted verbatim into every generated
	// page. Each may be given inline or as a file path; the file wins when both
	// are set.
	HeaderHTML        string `yaml:"header_html,omitempty"`
	HeaderHTMLFile    string `yaml:"header_html_file,omitempty"`
	PreambleHTML      string `yaml:"preamble_html,omitempty"`
	PreambleHTMLFile  string `yaml:"preamble_html_file,omitempty"`
	PostambleHTML     string `yaml:"postamble_html,omitempty"`
	PostambleHTMLFile string `yaml:"postamble_html_file,omitempty"`

	// OnPostError selects the document-level error policy ("abort" or "skip").
	OnPostError ErrorPolicy `yaml:"on_post_error,omitempty"`
}

// Load loads configuration from the specified file
func Load(configPath string) (*SiteConfig, error) {
	// Load .env file if it exists; existing process env wins.
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				fmt.Fprintf(os.Stderr, "Note: %s couldn't be loaded: %v\n", envPath, err)
			}
			break
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	// Zero is a valid index length (an empty index page), so "unset" must be
	// distinguishable from an explicit 0 after unmarshal.
	var cfg SiteConfig
	cfg.IndexLength = indexLengthUnset
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.resolveChromeFiles(filepath.Dir(configPath)); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills in unset fields after unmarshal.
func (c *SiteConfig) applyDefaults() {
	if c.Title == "" {
		c.Title = "A Blog"
	}
	if c.PostsDir == "" {
		c.PostsDir = "posts"
	}
	if c.DraftsDir == "" {
		c.DraftsDir = "drafts"
	}
	if c.OutputDir == "" {
		c.OutputDir = "site"
	}
	if c.IndexFile == "" {
		c.IndexFile = "index.html"
	}
	if c.ArchiveFile == "" {
		c.ArchiveFile = "archive.html"
	}
	if c.TagsFile == "" {
		c.TagsFile = "tags.html"
	}
	if c.FeedFile == "" {
		c.FeedFile = "rss.xml"
	}
	if c.IndexLength == indexLengthUnset {
		c.IndexLength = 10
	}
	if c.OnPostError == "" {
		c.OnPostError = ErrorPolicyAbort
	}
}

// resolveChromeFiles loads chrome fragments given as file paths. Relative
// paths are resolved against the config file's directory.
func (c *SiteConfig) resolveChromeFiles(baseDir string) error {
	load := func(path string, dst *string) error {
		if path == "" {
			return nil
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read chrome fragment %s: %w", path, err)
		}
		*dst = string(data)
		return nil
	}

	if err := load(c.HeaderHTMLFile, &c.HeaderHTML); err != nil {
		return err
	}
	if err := load(c.PreambleHTMLFile, &c.PreambleHTML); err != nil {
		return err
	}
	return load(c.PostambleHTMLFile, &c.PostambleHTML)
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := SiteConfig{
		BaseURL:     "https://blog.example.com/",
		Title:       "Example Blog",
		Description: "Notes and longer writing",
		Author:      "Joe User",
		PostsDir:    "posts",
		DraftsDir:   "drafts",
		OutputDir:   "site",
		IndexLength: 10,
		HeaderHTML:  "<h1>Example Blog</h1>",
		OnPostError: ErrorPolicyAbort,
	}
	example.applyDefaults()

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal example config: %w", err)
	}

	header := "# blogbuilder configuration\n# Values support ${ENV_VAR} expansion; a .env file is loaded if present.\n"
	if err := os.WriteFile(configPath, append([]byte(header), data...), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
