// Package config loads and validates the extractor configuration.
//
// Values come from, in increasing precedence: built-in defaults, an optional
// YAML or JSON file, and RESUME_EXTRACTOR_* environment variables. The API
// key additionally falls back to GEMINI_API_KEY.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jonathan/resume-extractor/internal/document"
	"github.com/jonathan/resume-extractor/internal/fetch"
	"github.com/jonathan/resume-extractor/internal/llm"
	"github.com/jonathan/resume-extractor/internal/logger"
	"github.com/jonathan/resume-extractor/internal/parsing"
)

// EnvPrefix prefixes every environment override, e.g. RESUME_EXTRACTOR_SCORING_THRESHOLD.
const EnvPrefix = "RESUME_EXTRACTOR"

// APIKeyEnv is the conventional variable holding the Gemini API key.
const APIKeyEnv = "GEMINI_API_KEY"

// Config is the complete extractor configuration.
type Config struct {
	Fetch      FetchConfig      `mapstructure:"fetch"`
	Scoring    ScoringConfig    `mapstructure:"scoring"`
	Extraction ExtractionConfig `mapstructure:"extraction"`
	AI         AIConfig         `mapstructure:"ai"`
	Decode     DecodeConfig     `mapstructure:"decode"`
	Log        logger.Config    `mapstructure:"log"`
}

// FetchConfig bounds document downloads.
type FetchConfig struct {
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxBytes  int64         `mapstructure:"max_bytes" validate:"gt=0"`
	UserAgent string        `mapstructure:"user_agent"`
}

// ScoringConfig is the completeness policy.
type ScoringConfig struct {
	Threshold float64            `mapstructure:"threshold" validate:"gte=0,lte=1"`
	Weights   map[string]float64 `mapstructure:"weights" validate:"dive,gte=0"`
}

// ExtractionConfig holds the pattern extractor limits.
type ExtractionConfig struct {
	MaxSkills        int `mapstructure:"max_skills" validate:"gte=1"`
	MaxSectionSkills int `mapstructure:"max_section_skills" validate:"gte=1"`
	MaxEducation     int `mapstructure:"max_education" validate:"gte=0"`
}

// AIConfig configures the generative model.
type AIConfig struct {
	APIKey            string            `mapstructure:"api_key"`
	Provider          string            `mapstructure:"provider" validate:"omitempty,oneof=gemini"`
	Tier              string            `mapstructure:"tier" validate:"oneof=lite standard advanced"`
	Models            map[string]string `mapstructure:"models"`
	Temperature       float32           `mapstructure:"temperature" validate:"gte=0,lte=2"`
	RequestsPerMinute int               `mapstructure:"requests_per_minute" validate:"gte=0"`
}

// DecodeConfig configures document decoding.
type DecodeConfig struct {
	Workers int `mapstructure:"workers" validate:"gte=1"`
}

// Default returns the reference configuration.
func Default() *Config {
	policy := parsing.DefaultScoringPolicy()
	llmCfg := llm.DefaultConfig()
	models := make(map[string]string, len(llmCfg.Models))
	for tier, name := range llmCfg.Models {
		models[string(tier)] = name
	}

	return &Config{
		Fetch: FetchConfig{
			Timeout:   fetch.DefaultTimeout,
			MaxBytes:  fetch.DefaultMaxBytes,
			UserAgent: fetch.DefaultUserAgent,
		},
		Scoring: ScoringConfig{
			Threshold: policy.Threshold,
			Weights:   policy.Weights,
		},
		Extraction: ExtractionConfig{
			MaxSkills:        parsing.DefaultMaxSkills,
			MaxSectionSkills: parsing.DefaultMaxSectionSkills,
			MaxEducation:     parsing.DefaultMaxEducation,
		},
		AI: AIConfig{
			Provider:    string(llm.ProviderGemini),
			Tier:        string(llm.TierStandard),
			Models:      models,
			Temperature: llm.DefaultTemperature,
		},
		Decode: DecodeConfig{Workers: document.DefaultWorkers},
		Log:    logger.Config{Level: "info", Format: logger.FormatJSON},
	}
}

// Load reads path (optional) and the environment on top of the defaults,
// then validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = os.Getenv(APIKeyEnv)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key, map entries included, so AutomaticEnv
// can override it and file sections merge with the defaults.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("fetch.timeout", d.Fetch.Timeout)
	v.SetDefault("fetch.max_bytes", d.Fetch.MaxBytes)
	v.SetDefault("fetch.user_agent", d.Fetch.UserAgent)
	v.SetDefault("scoring.threshold", d.Scoring.Threshold)
	for name, w := range d.Scoring.Weights {
		v.SetDefault("scoring.weights."+name, w)
	}
	v.SetDefault("extraction.max_skills", d.Extraction.MaxSkills)
	v.SetDefault("extraction.max_section_skills", d.Extraction.MaxSectionSkills)
	v.SetDefault("extraction.max_education", d.Extraction.MaxEducation)
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.provider", d.AI.Provider)
	v.SetDefault("ai.tier", d.AI.Tier)
	for tier, name := range d.AI.Models {
		v.SetDefault("ai.models."+tier, name)
	}
	v.SetDefault("ai.temperature", d.AI.Temperature)
	v.SetDefault("ai.requests_per_minute", d.AI.RequestsPerMinute)
	v.SetDefault("decode.workers", d.Decode.Workers)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.time_format", d.Log.TimeFormat)
}

// ValidationError lists every invalid field.
type ValidationError struct {
	Fields []string
	Cause  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config error: invalid %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

var validate = validator.New()

// Validate checks field ranges and that the scoring policy is usable.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			fields := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				fields = append(fields, fe.Namespace())
			}
			return &ValidationError{Fields: fields, Cause: err}
		}
		return fmt.Errorf("config error: %w", err)
	}
	if err := c.ScoringPolicy().Validate(); err != nil {
		return &ValidationError{Fields: []string{"Config.Scoring"}, Cause: err}
	}
	return nil
}

// ScoringPolicy converts the scoring section for the scorer. Config keys
// are case-insensitive, so weight names are mapped back to field names.
func (c *Config) ScoringPolicy() parsing.ScoringPolicy {
	weights := make(map[string]float64, len(c.Scoring.Weights))
	for name, w := range c.Scoring.Weights {
		field, _ := parsing.FieldName(name)
		weights[field] = w
	}
	return parsing.ScoringPolicy{Weights: weights, Threshold: c.Scoring.Threshold}
}

// ExtractorOptions converts the extraction section for the pattern extractor.
func (c *Config) ExtractorOptions() parsing.Options {
	opts := parsing.DefaultOptions()
	opts.MaxSkills = c.Extraction.MaxSkills
	opts.MaxSectionSkills = c.Extraction.MaxSectionSkills
	opts.MaxEducation = c.Extraction.MaxEducation
	return opts
}

// FetchOptions converts the fetch section for the downloader.
func (c *Config) FetchOptions() *fetch.Options {
	return &fetch.Options{
		Timeout:   c.Fetch.Timeout,
		MaxBytes:  c.Fetch.MaxBytes,
		UserAgent: c.Fetch.UserAgent,
	}
}

// DecodeOptions converts the decode section for the decoder.
func (c *Config) DecodeOptions() *document.Options {
	return &document.Options{Workers: c.Decode.Workers}
}

// LLMConfig converts the ai section for the model client.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	if c.AI.Provider != "" {
		cfg.Provider = llm.Provider(c.AI.Provider)
	}
	for tier, name := range c.AI.Models {
		cfg.Models[llm.ModelTier(strings.ToLower(tier))] = name
	}
	cfg.Temperature = c.AI.Temperature
	cfg.RequestsPerMinute = c.AI.RequestsPerMinute
	return cfg
}
