package model

import "time"

// Config holds the full runtime configuration
type Config struct {
	Data      DataConfig      `yaml:"data" json:"data"`
	HTTP      HTTPConfig      `yaml:"http" json:"http"`
	Cache     CacheConfig     `yaml:"cache" json:"cache"`
	Collect   CollectConfig   `yaml:"collect" json:"collect"`
	Translate TranslateConfig `yaml:"translate" json:"translate"`
	Output    OutputConfig    `yaml:"output" json:"output"`
}

// DataConfig locates the JSON data store.
// The store is read-only in the serving path; only maintenance commands write to it.
type DataConfig struct {
	ToolsFile   string `yaml:"tools_file" json:"tools_file"`
	EvidenceDir string `yaml:"evidence_dir" json:"evidence_dir"`
	PricingDir  string `yaml:"pricing_dir" json:"pricing_dir"`
	SourcesFile string `yaml:"sources_file" json:"sources_file"`
}

// HTTPConfig controls the collector's HTTP client
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent    string        `yaml:"user_agent" json:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" json:"http_proxy,omitempty"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" json:"https_proxy,omitempty"`
}

// CacheConfig controls page-snapshot and evidence caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// CollectConfig controls the offline evidence collector
type CollectConfig struct {
	Workers           int     `yaml:"workers" json:"workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
	Burst             int     `yaml:"burst" json:"burst"`
	RespectRobots     bool    `yaml:"respect_robots" json:"respect_robots"`
}

// TranslateConfig configures the pluggable translation transform.
// Provider "" disables translation (the serving path always runs disabled).
type TranslateConfig struct {
	Provider  string `yaml:"provider" json:"provider"` // "openai" or ""
	Model     string `yaml:"model" json:"model"`
	APIKey    string `yaml:"api_key,omitempty" json:"-"`
	BaseURL   string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout" json:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" json:"max_tokens"`
}

// OutputConfig controls CLI output behavior
type OutputConfig struct {
	Verbose bool   `yaml:"verbose" json:"verbose"`
	Format  string `yaml:"format" json:"format"` // "json" or "yaml"
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			ToolsFile:   "data/tools.json",
			EvidenceDir: "data/evidence",
			PricingDir:  "data/pricing",
			SourcesFile: "data/sources/tools.sources.json",
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Pricelens/0.1 (+https://github.com/pricelens/pricelens)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".pricelens-cache",
			MemoryTTL: 10 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Collect: CollectConfig{
			Workers:           4,
			RequestsPerSecond: 1,
			Burst:             2,
			RespectRobots:     true,
		},
		Translate: TranslateConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 1000,
		},
		Output: OutputConfig{
			Format: "json",
		},
	}
}
