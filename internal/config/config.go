package config

import (
	"aineoo/internal/apperr"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultPromptTemplate is used when --topic is given without --prompt.
const DefaultPromptTemplate = "主题：{theme}；请生成一篇结构清晰、可执行、适合企业读者的中文深度文章，包含实施步骤、常见问题与行动建议。"

// Config holds all application configuration
type Config struct {
	App       App       `mapstructure:"app"`
	WordPress WordPress `mapstructure:"wordpress"`
	LLM       LLM       `mapstructure:"llm"`
	Images    Images    `mapstructure:"images"`
	Media     Media     `mapstructure:"media"`
	Publish   Publish   `mapstructure:"publish"`
	Store     Store     `mapstructure:"store"`
	Server    Server    `mapstructure:"server"`
	Analytics Analytics `mapstructure:"analytics"`
	Logging   Logging   `mapstructure:"logging"`
}

// App holds general application configuration
type App struct {
	Debug bool `mapstructure:"debug"`
}

// WordPress holds the publishing target
type WordPress struct {
	BaseURL     string `mapstructure:"base_url"`
	User        string `mapstructure:"user"`
	AppPassword string `mapstructure:"app_password"`
	SiteName    string `mapstructure:"site_name"`
}

// LLM holds chat-completion provider configuration
type LLM struct {
	Provider    string         `mapstructure:"provider"`
	Enabled     bool           `mapstructure:"enabled"`
	Temperature float32        `mapstructure:"temperature"`
	Timeout     string         `mapstructure:"timeout"`
	RateLimit   float64        `mapstructure:"rate_limit"`
	DeepSeek    DeepSeekConfig `mapstructure:"deepseek"`
	Gemini      GeminiConfig   `mapstructure:"gemini"`
}

// DeepSeekConfig holds an OpenAI-compatible endpoint (DeepSeek by default)
type DeepSeekConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// GeminiConfig holds Google Gemini configuration
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// Images holds text-to-image configuration
type Images struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
	Width   int    `mapstructure:"width"`
	Height  int    `mapstructure:"height"`
	Timeout string `mapstructure:"timeout"`
}

// Media holds fal.ai video and avatar configuration
type Media struct {
	FalKey          string `mapstructure:"fal_key"`
	QueueURL        string `mapstructure:"queue_url"`
	StorageURL      string `mapstructure:"storage_url"`
	VideoEndpoint   string `mapstructure:"video_endpoint"`
	AvatarEndpoint  string `mapstructure:"avatar_endpoint"`
	AvatarImageURL  string `mapstructure:"avatar_image_url"`
	AvatarVoice     string `mapstructure:"avatar_voice"`
	AvatarFrames    int    `mapstructure:"avatar_frames"`
	MaxWait         string `mapstructure:"max_wait"`
	PollInterval    string `mapstructure:"poll_interval"`
	DownloadTimeout string `mapstructure:"download_timeout"`
}

// Publish holds pipeline defaults
type Publish struct {
	OutputDir         string   `mapstructure:"output_dir"`
	DefaultCategories []string `mapstructure:"default_categories"`
	DefaultTags       []string `mapstructure:"default_tags"`
	RequestTimeout    string   `mapstructure:"request_timeout"`
	MaxContentImages  int      `mapstructure:"max_content_images"`
	MinQuality        int      `mapstructure:"min_quality"`
	RelatedLimit      int      `mapstructure:"related_limit"`
	PromptTemplate    string   `mapstructure:"prompt_template"`
}

// Store holds the run history database location
type Store struct {
	Path string `mapstructure:"path"`
}

// Server holds the asset browser configuration
type Server struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CORS         CORSConfig    `mapstructure:"cors"`
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Analytics holds product analytics configuration
type Analytics struct {
	PostHog PostHogConfig `mapstructure:"posthog"`
}

// PostHogConfig holds PostHog configuration
type PostHogConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	APIKey  string `mapstructure:"api_key"`
	Host    string `mapstructure:"host"`
}

// Logging holds logging configuration
type Logging struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Requirements selects which credentials Validate insists on.
type Requirements struct {
	WordPress bool
	LLM       bool
}

// Load loads the configuration from .env, an optional config file and the
// environment. Each call builds its own viper instance.
func Load(configFile string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
		}
	}

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
		v.SetConfigName(".aineoo")
		v.SetConfigType("yaml")
	}

	setDefaults(v)
	bindEnvironmentVariables(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := postProcessConfig(cfg); err != nil {
		return nil, fmt.Errorf("error post-processing config: %w", err)
	}

	return cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("wordpress.site_name", "Aineoo")

	v.SetDefault("llm.provider", "deepseek")
	v.SetDefault("llm.enabled", true)
	v.SetDefault("llm.temperature", 0.82)
	v.SetDefault("llm.timeout", "90s")
	v.SetDefault("llm.rate_limit", 2.0)
	v.SetDefault("llm.deepseek.base_url", "https://api.deepseek.com")
	v.SetDefault("llm.deepseek.model", "deepseek-chat")
	v.SetDefault("llm.gemini.model", "gemini-2.5-flash")

	v.SetDefault("images.base_url", "https://ark.cn-beijing.volces.com/api/v3")
	v.SetDefault("images.model", "doubao-seedream-3-0-t2i-250415")
	v.SetDefault("images.width", 1344)
	v.SetDefault("images.height", 768)
	v.SetDefault("images.timeout", "90s")

	v.SetDefault("media.queue_url", "https://queue.fal.run")
	v.SetDefault("media.storage_url", "https://rest.alpha.fal.ai/storage/upload/initiate")
	v.SetDefault("media.video_endpoint", "fal-ai/kling-video/v2.1/standard/text-to-video")
	v.SetDefault("media.avatar_endpoint", "fal-ai/ai-avatar/single-text")
	v.SetDefault("media.avatar_voice", "Lily")
	v.SetDefault("media.avatar_frames", 129)
	v.SetDefault("media.max_wait", "300s")
	v.SetDefault("media.poll_interval", "10s")
	v.SetDefault("media.download_timeout", "120s")

	v.SetDefault("publish.output_dir", "output")
	v.SetDefault("publish.default_categories", []string{"AI"})
	v.SetDefault("publish.default_tags", []string{"AI"})
	v.SetDefault("publish.request_timeout", "40s")
	v.SetDefault("publish.max_content_images", 4)
	v.SetDefault("publish.min_quality", 75)
	v.SetDefault("publish.related_limit", 3)
	v.SetDefault("publish.prompt_template", DefaultPromptTemplate)

	v.SetDefault("store.path", "output/.aineoo.db")

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.cors.enabled", false)

	v.SetDefault("analytics.posthog.enabled", false)
	v.SetDefault("analytics.posthog.host", "https://app.posthog.com")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "logs/run.log")
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables(v *viper.Viper) {
	bindEnvKeys(v, "wordpress.base_url", []string{"WP_BASE", "WORDPRESS_BASE_URL"})
	bindEnvKeys(v, "wordpress.user", []string{"WP_USER", "WORDPRESS_USER"})
	bindEnvKeys(v, "wordpress.app_password", []string{"WP_APP_PASSWORD", "WORDPRESS_APP_PASSWORD"})
	bindEnvKeys(v, "wordpress.site_name", []string{"SITE_NAME"})

	bindEnvKeys(v, "llm.provider", []string{"LLM_PROVIDER"})
	bindEnvKeys(v, "llm.enabled", []string{"DEEPSEEK_ENABLED", "LLM_ENABLED"})
	bindEnvKeys(v, "llm.deepseek.api_key", []string{"DEEPSEEK_API_KEY"})
	bindEnvKeys(v, "llm.deepseek.base_url", []string{"DEEPSEEK_BASE_URL"})
	bindEnvKeys(v, "llm.deepseek.model", []string{"DEEPSEEK_MODEL"})
	bindEnvKeys(v, "llm.gemini.api_key", []string{"GEMINI_API_KEY", "GOOGLE_GEMINI_API_KEY", "GOOGLE_AI_API_KEY"})
	bindEnvKeys(v, "llm.gemini.model", []string{"GEMINI_MODEL"})

	bindEnvKeys(v, "images.api_key", []string{"IMAGE_API_KEY", "ARK_API_KEY"})
	bindEnvKeys(v, "images.base_url", []string{"IMAGE_BASE_URL"})
	bindEnvKeys(v, "images.model", []string{"IMAGE_MODEL"})

	bindEnvKeys(v, "media.fal_key", []string{"FAL_KEY"})
	bindEnvKeys(v, "media.avatar_image_url", []string{"AVATAR_IMAGE_URL"})

	bindEnvKeys(v, "publish.output_dir", []string{"OUTPUT_DIR"})
	bindEnvKeys(v, "publish.request_timeout", []string{"REQUEST_TIMEOUT"})
	bindEnvKeys(v, "publish.max_content_images", []string{"MAX_CONTENT_IMAGES"})
	bindEnvKeys(v, "publish.prompt_template", []string{"PROMPT_TEMPLATE"})
	bindEnvListKeys(v, "publish.default_categories", []string{"DEFAULT_CATEGORIES"})
	bindEnvListKeys(v, "publish.default_tags", []string{"DEFAULT_TAGS"})

	bindEnvKeys(v, "analytics.posthog.api_key", []string{"POSTHOG_API_KEY"})
	bindEnvKeys(v, "app.debug", []string{"DEBUG", "AINEOO_DEBUG"})
}

// bindEnvKeys binds the first found environment variable to a viper key
func bindEnvKeys(v *viper.Viper, viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			v.Set(viperKey, value)
			return
		}
	}
}

// bindEnvListKeys is bindEnvKeys for comma-separated lists.
func bindEnvListKeys(v *viper.Viper, viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			v.Set(viperKey, SplitCSV(value))
			return
		}
	}
}

// SplitCSV splits on ASCII and full-width commas, trimming blanks.
func SplitCSV(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == '，' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// postProcessConfig applies post-processing to configuration values
func postProcessConfig(cfg *Config) error {
	cfg.WordPress.BaseURL = strings.TrimRight(cfg.WordPress.BaseURL, "/")
	cfg.Publish.OutputDir = expandPath(cfg.Publish.OutputDir)
	cfg.Store.Path = expandPath(cfg.Store.Path)
	cfg.Logging.File = expandPath(cfg.Logging.File)

	if cfg.Publish.MaxContentImages < 1 {
		cfg.Publish.MaxContentImages = 1
	}

	durations := map[string]string{
		"llm.timeout":             cfg.LLM.Timeout,
		"images.timeout":          cfg.Images.Timeout,
		"media.max_wait":          cfg.Media.MaxWait,
		"media.poll_interval":     cfg.Media.PollInterval,
		"media.download_timeout":  cfg.Media.DownloadTimeout,
		"publish.request_timeout": cfg.Publish.RequestTimeout,
	}

	for key, duration := range durations {
		if duration == "" {
			continue
		}
		if _, err := parseDuration(duration); err != nil {
			return fmt.Errorf("invalid duration for %s: %s", key, duration)
		}
	}

	return nil
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// parseDuration accepts Go durations and bare seconds ("40").
func parseDuration(s string) (time.Duration, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	var secs int
	if _, err := fmt.Sscanf(s, "%d", &secs); err != nil || fmt.Sprint(secs) != s {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return time.Duration(secs) * time.Second, nil
}

// Duration returns a validated duration value or fallback when unset.
func Duration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := parseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

// LLMAvailable reports whether the selected provider has credentials.
func (c *Config) LLMAvailable() bool {
	if !c.LLM.Enabled {
		return false
	}
	switch c.LLM.Provider {
	case "gemini":
		return c.LLM.Gemini.APIKey != ""
	default:
		return c.LLM.DeepSeek.APIKey != ""
	}
}

// Validate ensures the credentials needed by a command are present.
func (c *Config) Validate(req Requirements) error {
	var problems []string

	if req.WordPress {
		if c.WordPress.BaseURL == "" {
			problems = append(problems, "WordPress base URL is required. Set WP_BASE or wordpress.base_url")
		}
		if c.WordPress.User == "" {
			problems = append(problems, "WordPress user is required. Set WP_USER or wordpress.user")
		}
		if c.WordPress.AppPassword == "" {
			problems = append(problems, "WordPress application password is required. Set WP_APP_PASSWORD or wordpress.app_password")
		}
	}

	if req.LLM && !c.LLMAvailable() {
		switch c.LLM.Provider {
		case "gemini":
			problems = append(problems, "Gemini API key is required. Set GEMINI_API_KEY or llm.gemini.api_key")
		default:
			problems = append(problems, "DeepSeek API key is required. Set DEEPSEEK_API_KEY or llm.deepseek.api_key")
		}
	}

	switch c.LLM.Provider {
	case "deepseek", "openai", "gemini":
	default:
		problems = append(problems, fmt.Sprintf("Unknown LLM provider: %s. Supported: deepseek, openai, gemini", c.LLM.Provider))
	}

	if c.Publish.MinQuality < 0 || c.Publish.MinQuality > 100 {
		problems = append(problems, fmt.Sprintf("publish.min_quality must be within 0-100, got %d", c.Publish.MinQuality))
	}

	if len(problems) > 0 {
		return &apperr.ConfigError{Problems: problems}
	}
	return nil
}
