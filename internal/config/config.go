package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	LLM      LLMConfig
	Pipeline PipelineConfig
	Redis    RedisConfig
	Logger   LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
	ExportDir    string
}

// LLMConfig holds the model service settings. The API key is injected
// here and passed into the invoker constructor; nothing reads it from
// process-wide state after startup.
type LLMConfig struct {
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// PipelineConfig controls chunking and per-chunk generation.
type PipelineConfig struct {
	ChunkSize     int
	CardsPerChunk int
	MaxParallel   int
	CacheTTL      time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type LoggerConfig struct {
	Level string
	Env   string
}

// LoadConfig reads config.yaml (working dir or ./configs) and applies
// environment overrides. Missing config files are tolerated; defaults
// plus environment variables are enough to run.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
			BodyLimit:    viper.GetInt("server.body_limit"),
			ExportDir:    viper.GetString("server.export_dir"),
		},
		LLM: LLMConfig{
			BaseURL:   viper.GetString("llm.base_url"),
			APIKey:    viper.GetString("llm.api_key"),
			Model:     viper.GetString("llm.model"),
			MaxTokens: viper.GetInt("llm.max_tokens"),
			Timeout:   viper.GetDuration("llm.timeout") * time.Second,
		},
		Pipeline: PipelineConfig{
			ChunkSize:     viper.GetInt("pipeline.chunk_size"),
			CardsPerChunk: viper.GetInt("pipeline.cards_per_chunk"),
			MaxParallel:   viper.GetInt("pipeline.max_parallel"),
			CacheTTL:      viper.GetDuration("pipeline.cache_ttl") * time.Second,
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
	}

	// Environment overrides for deploy-time settings
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		config.LLM.APIKey = key
	}
	if baseURL := os.Getenv("LLM_BASE_URL"); baseURL != "" {
		config.LLM.BaseURL = baseURL
	}
	if model := os.Getenv("LLM_MODEL"); model != "" {
		config.LLM.Model = model
	}
	if address := os.Getenv("REDIS_ADDRESS"); address != "" {
		config.Redis.Address = address
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 120)
	viper.SetDefault("server.body_limit", 10*1024*1024)
	viper.SetDefault("server.export_dir", ".")
	viper.SetDefault("llm.model", "gpt-3.5-turbo")
	viper.SetDefault("llm.max_tokens", 4096)
	viper.SetDefault("llm.timeout", 60)
	viper.SetDefault("pipeline.chunk_size", 3000)
	viper.SetDefault("pipeline.cards_per_chunk", 5)
	viper.SetDefault("pipeline.max_parallel", 1)
	viper.SetDefault("pipeline.cache_ttl", 3600)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")
}
