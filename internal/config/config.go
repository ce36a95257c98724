package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// readSecret reads a Docker secret from a file path specified by an env var
// with _FILE suffix. If FOO is already set directly, the file is skipped.
// If FOO_FILE is set, reads the file content and sets FOO.
func readSecret(envKey string) {
	if os.Getenv(envKey) != "" {
		return
	}
	fileKey := envKey + "_FILE"
	filePath := os.Getenv(fileKey)
	if filePath == "" {
		return
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return
	}
	val := strings.TrimSpace(string(data))
	os.Setenv(envKey, val)
}

type Config struct {
	Server    ServerConfig
	OpenAI    OpenAIConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Media     MediaConfig
	Card      CardConfig
}

type ServerConfig struct {
	Port     string `validate:"required"`
	Env      string
	LogLevel string
}

type OpenAIConfig struct {
	APIKey       string
	BaseURL      string `validate:"required"`
	SnippetModel string `validate:"required"`
	CaptionModel string `validate:"required"`
	Timeout      int    `validate:"gt=0"` // seconds
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	GeneratePerHour int
}

// MediaConfig describes the fixed media inputs and encoding targets.
type MediaConfig struct {
	BRollPath          string  `validate:"required"`
	AudioDir           string  `validate:"required"`
	OutputDir          string  `validate:"required"`
	ReelSeconds        float64 `validate:"gt=0"` // coding-challenge reel length
	CaptionReelSeconds float64 `validate:"gt=0"` // read-caption reel length
	LevelAppearTime    float64 `validate:"gte=0"`
	LevelFontFile      string  `validate:"required"`
	CaptionFontFile    string  `validate:"required"`
	FFmpegPath         string  `validate:"required"`
	FFprobePath        string  `validate:"required"`
}

// CardConfig sizes the rendered code-card image.
type CardConfig struct {
	Width    int `validate:"gt=0"`
	Height   int `validate:"gt=0"`
	Scale    int `validate:"gt=0"`
	Padding  int `validate:"gte=0"`
	FontSize int `validate:"gt=0"`
	Font     string
}

func Load() (*Config, error) {
	// Read Docker Swarm secrets from _FILE env vars before Viper binds
	readSecret("OPENAI_API_KEY")
	readSecret("REDIS_PASSWORD")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variables
	viper.AutomaticEnv()

	// Bind environment variables with underscores to nested config keys
	_ = viper.BindEnv("server.port", "SERVER_PORT")
	_ = viper.BindEnv("server.env", "SERVER_ENV")
	_ = viper.BindEnv("server.log_level", "LOG_LEVEL")
	_ = viper.BindEnv("openai.api_key", "OPENAI_API_KEY")
	_ = viper.BindEnv("openai.base_url", "OPENAI_BASE_URL")
	_ = viper.BindEnv("openai.snippet_model", "OPENAI_SNIPPET_MODEL")
	_ = viper.BindEnv("openai.caption_model", "OPENAI_CAPTION_MODEL")
	_ = viper.BindEnv("openai.timeout", "OPENAI_TIMEOUT")
	_ = viper.BindEnv("redis.addr", "REDIS_ADDR")
	_ = viper.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = viper.BindEnv("redis.db", "REDIS_DB")
	_ = viper.BindEnv("ratelimit.generate_per_hour", "RATELIMIT_GENERATE_PER_HOUR")
	_ = viper.BindEnv("media.broll_path", "BROLL_PATH")
	_ = viper.BindEnv("media.audio_dir", "AUDIO_DIR")
	_ = viper.BindEnv("media.output_dir", "OUTPUT_DIR")
	_ = viper.BindEnv("media.reel_seconds", "REEL_SECONDS")
	_ = viper.BindEnv("media.caption_reel_seconds", "CAPTION_REEL_SECONDS")
	_ = viper.BindEnv("media.level_appear_time", "LEVEL_APPEAR_TIME")
	_ = viper.BindEnv("media.level_font_file", "LEVEL_FONT_FILE")
	_ = viper.BindEnv("media.caption_font_file", "CAPTION_FONT_FILE")
	_ = viper.BindEnv("media.ffmpeg_path", "FFMPEG_PATH")
	_ = viper.BindEnv("media.ffprobe_path", "FFPROBE_PATH")
	_ = viper.BindEnv("card.width", "CARD_WIDTH")
	_ = viper.BindEnv("card.height", "CARD_HEIGHT")
	_ = viper.BindEnv("card.scale", "CARD_SCALE")
	_ = viper.BindEnv("card.padding", "CARD_PADDING")
	_ = viper.BindEnv("card.font_size", "CARD_FONT_SIZE")
	_ = viper.BindEnv("card.font", "CARD_FONT")

	// Defaults
	viper.SetDefault("server.port", "3001")
	viper.SetDefault("server.env", "development")
	viper.SetDefault("server.log_level", "info")
	viper.SetDefault("redis.addr", "")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("ratelimit.generate_per_hour", 12)

	// OpenAI defaults
	viper.SetDefault("openai.base_url", "https://api.openai.com/v1")
	viper.SetDefault("openai.snippet_model", "gpt-4o")
	viper.SetDefault("openai.caption_model", "gpt-4o-mini")
	viper.SetDefault("openai.timeout", 60)

	// Media defaults
	viper.SetDefault("media.broll_path", "bRoll.mov")
	viper.SetDefault("media.audio_dir", "audio")
	viper.SetDefault("media.output_dir", ".")
	viper.SetDefault("media.reel_seconds", 10.0)
	viper.SetDefault("media.caption_reel_seconds", 7.0)
	viper.SetDefault("media.level_appear_time", 2.0)
	viper.SetDefault("media.level_font_file", "/System/Library/Fonts/Supplemental/Arial Bold.ttf")
	viper.SetDefault("media.caption_font_file", "Inter.ttf")
	viper.SetDefault("media.ffmpeg_path", "ffmpeg")
	viper.SetDefault("media.ffprobe_path", "ffprobe")

	// Card defaults (9:16 at full reel resolution)
	viper.SetDefault("card.width", 1080)
	viper.SetDefault("card.height", 1920)
	viper.SetDefault("card.scale", 1)
	viper.SetDefault("card.padding", 80)
	viper.SetDefault("card.font_size", 34)
	viper.SetDefault("card.font", "'SF Mono', 'Fira Code', Menlo, monospace")

	// Try to read config file (optional)
	_ = viper.ReadInConfig()

	cfg := &Config{
		Server: ServerConfig{
			Port:     viper.GetString("server.port"),
			Env:      viper.GetString("server.env"),
			LogLevel: viper.GetString("server.log_level"),
		},
		OpenAI: OpenAIConfig{
			APIKey:       viper.GetString("openai.api_key"),
			BaseURL:      viper.GetString("openai.base_url"),
			SnippetModel: viper.GetString("openai.snippet_model"),
			CaptionModel: viper.GetString("openai.caption_model"),
			Timeout:      viper.GetInt("openai.timeout"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("redis.addr"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		RateLimit: RateLimitConfig{
			GeneratePerHour: viper.GetInt("ratelimit.generate_per_hour"),
		},
		Media: MediaConfig{
			BRollPath:          viper.GetString("media.broll_path"),
			AudioDir:           viper.GetString("media.audio_dir"),
			OutputDir:          viper.GetString("media.output_dir"),
			ReelSeconds:        viper.GetFloat64("media.reel_seconds"),
			CaptionReelSeconds: viper.GetFloat64("media.caption_reel_seconds"),
			LevelAppearTime:    viper.GetFloat64("media.level_appear_time"),
			LevelFontFile:      viper.GetString("media.level_font_file"),
			CaptionFontFile:    viper.GetString("media.caption_font_file"),
			FFmpegPath:         viper.GetString("media.ffmpeg_path"),
			FFprobePath:        viper.GetString("media.ffprobe_path"),
		},
		Card: CardConfig{
			Width:    viper.GetInt("card.width"),
			Height:   viper.GetInt("card.height"),
			Scale:    viper.GetInt("card.scale"),
			Padding:  viper.GetInt("card.padding"),
			FontSize: viper.GetInt("card.font_size"),
			Font:     viper.GetString("card.font"),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
