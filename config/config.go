// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package config loads menukb settings from a YAML file, an optional .env
// file and MENUKB_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/poiesic/menukb/ai"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MENUKB_"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Catalog   CatalogConfig   `yaml:"catalog"`
	Cache     CacheConfig     `yaml:"cache"`
	AI        AIConfig        `yaml:"ai"`
	Ingestion IngestionConfig `yaml:"ingestion"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type CatalogConfig struct {
	// Path is the scraped catalog JSON file.
	Path string `yaml:"path"`
}

type CacheConfig struct {
	// Dir is the badger directory. Ignored when InMemory is set.
	Dir      string `yaml:"dir"`
	Prefix   string `yaml:"prefix"`
	InMemory bool   `yaml:"in_memory"`
}

type AIConfig struct {
	EmbeddingHost  string  `yaml:"embedding_host"`
	GeneratorHost  string  `yaml:"generator_host"`
	EmbeddingModel string  `yaml:"embedding_model"`
	GeneratorModel string  `yaml:"generator_model"`
	APIKey         string  `yaml:"api_key"`
	Temperature    float64 `yaml:"temperature"`
}

type IngestionConfig struct {
	PoolSize    int           `yaml:"pool_size"`
	BatchSize   int           `yaml:"batch_size"`
	MaxAttempts int           `yaml:"max_attempts"`
	RetryDelay  time.Duration `yaml:"retry_delay"`
}

type RetrievalConfig struct {
	K               int `yaml:"k"`
	MenuCap         int `yaml:"menu_cap"`
	PerSection      int `yaml:"per_section"`
	MinAnswerLength int `yaml:"min_answer_length"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in settings.
func Default() *Config {
	aiDefaults := ai.DefaultConfig()
	return &Config{
		Catalog: CatalogConfig{Path: "data/restaurants.json"},
		Cache:   CacheConfig{Dir: "data/kb", Prefix: "menukb"},
		AI: AIConfig{
			EmbeddingHost:  aiDefaults.EmbeddingHost,
			GeneratorHost:  aiDefaults.GeneratorHost,
			EmbeddingModel: aiDefaults.EmbeddingModel,
			GeneratorModel: aiDefaults.GeneratorModel,
			Temperature:    aiDefaults.Temperature,
		},
		Ingestion: IngestionConfig{
			PoolSize:    4,
			BatchSize:   32,
			MaxAttempts: 3,
			RetryDelay:  500 * time.Millisecond,
		},
		Retrieval: RetrievalConfig{
			K:               5,
			MenuCap:         15,
			PerSection:      3,
			MinAnswerLength: 20,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads path over the defaults, loads envFiles (or ./.env when none
// are given) into the environment, then applies MENUKB_* overrides. An empty
// path skips the YAML file. Missing .env files are ignored.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and required fields.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Cache.Prefix) == "" {
		return fmt.Errorf("%w: cache.prefix is required", ErrInvalidConfig)
	}
	if !c.Cache.InMemory && strings.TrimSpace(c.Cache.Dir) == "" {
		return fmt.Errorf("%w: cache.dir is required unless cache.in_memory is set", ErrInvalidConfig)
	}
	if c.Ingestion.PoolSize < 1 || c.Ingestion.BatchSize < 1 || c.Ingestion.MaxAttempts < 1 {
		return fmt.Errorf("%w: ingestion pool_size, batch_size and max_attempts must be positive", ErrInvalidConfig)
	}
	if c.Retrieval.K < 1 || c.Retrieval.MenuCap < 1 || c.Retrieval.PerSection < 1 {
		return fmt.Errorf("%w: retrieval k, menu_cap and per_section must be positive", ErrInvalidConfig)
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.AIConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// AIConfig converts the ai section for the AI providers.
func (c *Config) AIConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithEmbeddingHost(c.AI.EmbeddingHost),
		ai.WithGeneratorHost(c.AI.GeneratorHost),
		ai.WithEmbeddingModel(c.AI.EmbeddingModel),
		ai.WithGeneratorModel(c.AI.GeneratorModel),
		ai.WithAPIKey(c.AI.APIKey),
		ai.WithTemperature(c.AI.Temperature),
	)
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

func applyEnvOverrides(cfg *Config) error {
	strs := map[string]*string{
		"CATALOG":         &cfg.Catalog.Path,
		"CACHE_DIR":       &cfg.Cache.Dir,
		"CACHE_PREFIX":    &cfg.Cache.Prefix,
		"EMBEDDING_HOST":  &cfg.AI.EmbeddingHost,
		"GENERATOR_HOST":  &cfg.AI.GeneratorHost,
		"EMBEDDING_MODEL": &cfg.AI.EmbeddingModel,
		"GENERATOR_MODEL": &cfg.AI.GeneratorModel,
		"API_KEY":         &cfg.AI.APIKey,
		"LOG_LEVEL":       &cfg.Logging.Level,
	}
	for name, field := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			*field = v
		}
	}

	ints := map[string]*int{
		"POOL_SIZE":         &cfg.Ingestion.PoolSize,
		"BATCH_SIZE":        &cfg.Ingestion.BatchSize,
		"MAX_ATTEMPTS":      &cfg.Ingestion.MaxAttempts,
		"K":                 &cfg.Retrieval.K,
		"MENU_CAP":          &cfg.Retrieval.MenuCap,
		"PER_SECTION":       &cfg.Retrieval.PerSection,
		"MIN_ANSWER_LENGTH": &cfg.Retrieval.MinAnswerLength,
	}
	for name, field := range ints {
		v, ok := os.LookupEnv(EnvPrefix + name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s: %w", ErrInvalidConfig, EnvPrefix, name, err)
		}
		*field = n
	}

	if v, ok := os.LookupEnv(EnvPrefix + "TEMPERATURE"); ok {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %sTEMPERATURE: %w", ErrInvalidConfig, EnvPrefix, err)
		}
		cfg.AI.Temperature = t
	}
	if v, ok := os.LookupEnv(EnvPrefix + "RETRY_DELAY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %sRETRY_DELAY: %w", ErrInvalidConfig, EnvPrefix, err)
		}
		cfg.Ingestion.RetryDelay = d
	}
	if v, ok := os.LookupEnv(EnvPrefix + "CACHE_IN_MEMORY"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sCACHE_IN_MEMORY: %w", ErrInvalidConfig, EnvPrefix, err)
		}
		cfg.Cache.InMemory = b
	}
	return nil
}
