package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up when --config is not given.
const DefaultFile = "sitegen.yaml"

type Config struct {
	// Site root. Every other path is relative to it.
	Root string `yaml:"root"`

	ContentDir   string `yaml:"content_dir"`
	ListingFile  string `yaml:"listing_file"`
	RecordsFile  string `yaml:"records_file"`
	TemplateFile string `yaml:"template_file"`
	IndexFile    string `yaml:"index_file"`
	ProductsDir  string `yaml:"products_dir"`

	Extract ExtractConfig `yaml:"extract"`
	Chrome  ChromeConfig  `yaml:"chrome"`
	Splice  SpliceConfig  `yaml:"splice"`

	LogLevel string `yaml:"log_level"`
}

type ExtractConfig struct {
	BrandToken       string   `yaml:"brand_token"`
	CategoryPrefixes []string `yaml:"category_prefixes"`
	DenyList         []string `yaml:"deny_list"`
	PlaceholderImage string   `yaml:"placeholder_image"`
	BlockClass       string   `yaml:"block_class"`
}

type ChromeConfig struct {
	ContentAnchor  string    `yaml:"content_anchor"`
	FallbackAnchor string    `yaml:"fallback_anchor"`
	FooterAnchor   string    `yaml:"footer_anchor"`
	Rewrites       []Rewrite `yaml:"rewrites"`
}

// Rewrite is one exact-substring depth-correction rule.
type Rewrite struct {
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
}

type SpliceConfig struct {
	ReferenceFile string `yaml:"reference_file"`
	StartMarker   string `yaml:"start_marker"`
	// 1-based line where the start marker is expected. 0 disables the fast path.
	StartLine      int          `yaml:"start_line"`
	FooterMarker   string       `yaml:"footer_marker"`
	CloseMarker    string       `yaml:"close_marker"`
	NewsSource     string       `yaml:"news_source"`
	NewsBlockClass string       `yaml:"news_block_class"`
	Pages          []PageConfig `yaml:"pages"`
}

// PageConfig describes one spliced static page.
type PageConfig struct {
	Name    string `yaml:"name"`
	Output  string `yaml:"output"`
	Kind    string `yaml:"kind"` // cms, faq or news
	Heading string `yaml:"heading"`
	// Authored content file. Empty means the built-in default for Name.
	Source string `yaml:"source"`
}

var topLevelPages = []string{"index.html", "about.html", "product.html", "news.html", "contact.html", "faq.html"}

// DefaultRewrites is the depth-correction table for pages one directory below the template.
func DefaultRewrites() []Rewrite {
	rules := []Rewrite{
		{Pattern: `href="assets/`, Replacement: `href="../assets/`},
		{Pattern: `src="assets/`, Replacement: `src="../assets/`},
	}
	for _, p := range topLevelPages {
		rules = append(rules, Rewrite{
			Pattern:     `href="` + p + `"`,
			Replacement: `href="../` + p + `"`,
		})
	}
	return rules
}

func Default() Config {
	return Config{
		Root:         ".",
		ContentDir:   "vanderbiltContent",
		ListingFile:  "index.html",
		RecordsFile:  "products.json",
		TemplateFile: "index.html",
		IndexFile:    "product.html",
		ProductsDir:  "products",

		Extract: ExtractConfig{
			BrandToken:       "Vanderbilt",
			CategoryPrefixes: []string{"vanderbilt Product Listing for ", "vanderbilt "},
			DenyList:         []string{"HomePage", "AboutPage", "Contact-us", "News", "vanderbiltContent"},
			PlaceholderImage: "assets/images/placeholder.png",
			BlockClass:       "blog-post",
		},

		Chrome: ChromeConfig{
			ContentAnchor:  `<section id="content"`,
			FallbackAnchor: `<div id="content-wrapper">`,
			FooterAnchor:   `<footer id="footer">`,
			Rewrites:       DefaultRewrites(),
		},

		Splice: SpliceConfig{
			ReferenceFile:  "index.html",
			StartMarker:    `<section id="content" class="page-home">`,
			StartLine:      2305,
			FooterMarker:   `<footer id="footer">`,
			CloseMarker:    `</section>`,
			NewsSource:     "vanderbiltContent/vanderbilt News/index.html",
			NewsBlockClass: "halaman-indeks",
			Pages: []PageConfig{
				{Name: "about", Output: "about.html", Kind: "cms"},
				{Name: "contact", Output: "contact.html", Kind: "cms"},
				{Name: "news", Output: "news.html", Kind: "news", Heading: "Latest News"},
				{Name: "faq", Output: "faq.html", Kind: "faq", Heading: "Frequently Asked Questions"},
			},
		},

		LogLevel: "info",
	}
}

// Load builds a Config from defaults, the YAML file at path (if it exists) and
// environment overrides, in that order.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	c.Root = envOr("SITEGEN_ROOT", c.Root)
	c.ContentDir = envOr("SITEGEN_CONTENT_DIR", c.ContentDir)
	c.RecordsFile = envOr("SITEGEN_RECORDS_FILE", c.RecordsFile)
	c.Extract.BrandToken = envOr("SITEGEN_BRAND", c.Extract.BrandToken)
	c.Splice.StartLine = envInt("SITEGEN_SPLICE_START_LINE", c.Splice.StartLine)
	c.LogLevel = envOr("SITEGEN_LOG_LEVEL", c.LogLevel)
}

func (c Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root is required")
	}
	if c.ContentDir == "" || c.RecordsFile == "" || c.TemplateFile == "" || c.IndexFile == "" {
		return fmt.Errorf("content_dir, records_file, template_file and index_file are required")
	}
	if c.ProductsDir == "" || filepath.IsAbs(c.ProductsDir) {
		return fmt.Errorf("products_dir must be a relative directory")
	}
	if c.Chrome.ContentAnchor == "" || c.Chrome.FooterAnchor == "" {
		return fmt.Errorf("chrome content_anchor and footer_anchor are required")
	}
	for i, r := range c.Chrome.Rewrites {
		if r.Pattern == "" {
			return fmt.Errorf("chrome rewrite %d has an empty pattern", i)
		}
	}
	if c.Splice.StartMarker == "" || c.Splice.FooterMarker == "" || c.Splice.CloseMarker == "" {
		return fmt.Errorf("splice start_marker, footer_marker and close_marker are required")
	}
	if c.Splice.StartLine < 0 {
		return fmt.Errorf("splice start_line must not be negative")
	}
	for _, p := range c.Splice.Pages {
		switch p.Kind {
		case "cms", "faq", "news":
		default:
			return fmt.Errorf("splice page %q: unknown kind %q", p.Name, p.Kind)
		}
		if p.Output == "" {
			return fmt.Errorf("splice page %q: output is required", p.Name)
		}
	}
	return nil
}

// Path resolves a root-relative path.
func (c Config) Path(rel string) string {
	return filepath.Join(c.Root, filepath.FromSlash(rel))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
