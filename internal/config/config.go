package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultMinDate = "2024-06-01"

	configPathEnv    = "VIDEO_CLASSIFIER_CONFIG"
	youtubeAPIKeyEnv = "YOUTUBE_API_KEY"
	geminiAPIKeyEnv  = "GEMINI_API_KEY"
	storageKeyEnv    = "STORAGE_KEY"
	databaseDSNEnv   = "DATABASE_DSN"
	channelStartEnv  = "CHANNEL_START"
	channelEndEnv    = "CHANNEL_END"
	telegramTokenEnv = "TELEGRAM_BOT_TOKEN"
	telegramChatEnv  = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Channels ChannelsConfig `yaml:"channels"`
	YouTube  YouTubeConfig  `yaml:"youtube"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Filters  FilterConfig   `yaml:"filters"`
	Classify ClassifyConfig `yaml:"classify"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires the optional end-of-run summary notification.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ChannelsConfig selects the slice of the curated channel CSV to process.
type ChannelsConfig struct {
	CSVPath string `yaml:"csvPath"`
	Start   int    `yaml:"start"`
	End     int    `yaml:"end"`
}

// YouTubeConfig wires the video listing/metadata API.
type YouTubeConfig struct {
	APIKey string `yaml:"apiKey"`
}

// GeminiConfig defines how to contact the inference API.
type GeminiConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"apiKey"`
}

// FilterConfig holds the narrowing thresholds applied before classification.
type FilterConfig struct {
	MinDate  string `yaml:"minDate"`
	MinLikes int64  `yaml:"minLikes"`
}

// MinDateTime parses the configured cutoff; zero time when malformed.
func (f FilterConfig) MinDateTime() time.Time {
	t, err := time.Parse("2006-01-02", f.MinDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ClassifyConfig carries the taxonomy source and per-stage pacing intervals.
// Delays are duration strings ("3s", "7500ms").
type ClassifyConfig struct {
	TrailsPath    string `yaml:"trailsPath"`
	SynopsisDelay string `yaml:"synopsisDelay"`
	ToolDelay     string `yaml:"toolDelay"`
	TopicDelay    string `yaml:"topicDelay"`
}

const defaultStageDelay = 3 * time.Second

// StageDelay parses one of the delay strings, reverting to the default on
// empty or malformed values.
func StageDelay(value string) time.Duration {
	if value == "" {
		return defaultStageDelay
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("config: invalid stage delay %q, using %s", value, defaultStageDelay)
		return defaultStageDelay
	}
	return d
}

// StorageConfig describes the destination bucket for the labeled dataset.
type StorageConfig struct {
	Bucket          string `yaml:"bucket"`
	ObjectPrefix    string `yaml:"objectPrefix"`
	CredentialsJSON string `yaml:"-"`
}

// DatabaseConfig describes the optional Postgres dedup store.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(youtubeAPIKeyEnv); v != "" {
		c.YouTube.APIKey = v
	}

	if v := os.Getenv(geminiAPIKeyEnv); v != "" {
		c.Gemini.APIKey = v
	}

	if v := os.Getenv(storageKeyEnv); v != "" {
		c.Storage.CredentialsJSON = v
	}

	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatEnv); v != "" {
		c.Telegram.ChatID = v
	}

	if v := os.Getenv(channelStartEnv); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Channels.Start = n
		} else {
			log.Printf("config: invalid %s=%q: %v", channelStartEnv, v, err)
		}
	}

	if v := os.Getenv(channelEndEnv); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Channels.End = n
		} else {
			log.Printf("config: invalid %s=%q: %v", channelEndEnv, v, err)
		}
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Channels.CSVPath != "" {
		base.Channels.CSVPath = override.Channels.CSVPath
	}
	if override.Channels.End != 0 {
		base.Channels.Start = override.Channels.Start
		base.Channels.End = override.Channels.End
	}

	if override.YouTube.APIKey != "" {
		base.YouTube.APIKey = override.YouTube.APIKey
	}

	if override.Gemini.Endpoint != "" {
		base.Gemini.Endpoint = override.Gemini.Endpoint
	}
	if override.Gemini.Model != "" {
		base.Gemini.Model = override.Gemini.Model
	}
	if override.Gemini.APIKey != "" {
		base.Gemini.APIKey = override.Gemini.APIKey
	}

	if override.Filters.MinDate != "" {
		base.Filters.MinDate = override.Filters.MinDate
	}
	if override.Filters.MinLikes != 0 {
		base.Filters.MinLikes = override.Filters.MinLikes
	}

	if override.Classify.TrailsPath != "" {
		base.Classify.TrailsPath = override.Classify.TrailsPath
	}
	if override.Classify.SynopsisDelay != "" {
		base.Classify.SynopsisDelay = override.Classify.SynopsisDelay
	}
	if override.Classify.ToolDelay != "" {
		base.Classify.ToolDelay = override.Classify.ToolDelay
	}
	if override.Classify.TopicDelay != "" {
		base.Classify.TopicDelay = override.Classify.TopicDelay
	}

	if override.Storage.Bucket != "" {
		base.Storage.Bucket = override.Storage.Bucket
	}
	if override.Storage.ObjectPrefix != "" {
		base.Storage.ObjectPrefix = override.Storage.ObjectPrefix
	}

	if override.Database.DSN != "" {
		base.Database.DSN = override.Database.DSN
	}

	if override.Telegram.BotToken != "" {
		base.Telegram.BotToken = override.Telegram.BotToken
	}
	if override.Telegram.ChatID != "" {
		base.Telegram.ChatID = override.Telegram.ChatID
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Channels: ChannelsConfig{
			CSVPath: "datasets/canais_tech_BR.csv",
			Start:   0,
			End:     0,
		},
		Gemini: GeminiConfig{
			Endpoint: "https://generativelanguage.googleapis.com/v1beta",
			Model:    "gemma-3-27b-it",
		},
		Filters: FilterConfig{
			MinDate:  defaultMinDate,
			MinLikes: 25,
		},
		Classify: ClassifyConfig{
			TrailsPath: "datasets/trilhas.json",
		},
		Storage: StorageConfig{
			Bucket:       "video_bruto",
			ObjectPrefix: "classificados",
		},
	}
}
