package model

import "time"

// Config holds the complete pipeline configuration
type Config struct {
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Translation TranslationConfig `yaml:"translation" mapstructure:"translation"`
	Pipeline    PipelineConfig    `yaml:"pipeline" mapstructure:"pipeline"`
	Languages   map[string]string `yaml:"languages" mapstructure:"languages"` // country -> ISO language code
	Taxonomy    []string          `yaml:"taxonomy" mapstructure:"taxonomy"`   // ordered frame names
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// LLMConfig configures the external model service
type LLMConfig struct {
	// Provider name: "ollama", "openai", "anthropic"
	Provider string `yaml:"provider" mapstructure:"provider"`

	// Model name used for classification and frame annotation
	Model string `yaml:"model" mapstructure:"model"`

	// APIKey for OpenAI/Anthropic (unused by Ollama)
	APIKey string `yaml:"api_key,omitempty" mapstructure:"api_key"`

	// BaseURL of the service (e.g. http://localhost:11434)
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout per request, seconds
	Timeout int `yaml:"timeout" mapstructure:"timeout"`

	// Temperature for annotation calls
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`

	// MaxTokens caps the response length where the provider supports it
	MaxTokens int `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// TranslationConfig configures the translation stage
type TranslationConfig struct {
	// Model is the default translation model name
	Model string `yaml:"model" mapstructure:"model"`

	// PerLanguage overrides the model per source language code
	PerLanguage map[string]string `yaml:"per_language,omitempty" mapstructure:"per_language"`

	// MaxChunkSize bounds one translation request, in runes
	MaxChunkSize int `yaml:"max_chunk_size" mapstructure:"max_chunk_size"`

	// MinLengthRatio rejects translations shorter than ratio*len(original)
	MinLengthRatio float64 `yaml:"min_length_ratio" mapstructure:"min_length_ratio"`

	// SameLanguageThreshold is the non-ASCII fraction above which a
	// translation is considered untranslated
	SameLanguageThreshold float64 `yaml:"same_language_threshold" mapstructure:"same_language_threshold"`

	// CacheTTL bounds the lifetime of per-language provider handles
	CacheTTL time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// PipelineConfig configures the annotation loop itself
type PipelineConfig struct {
	// SleepBetweenItems is the politeness delay after every item,
	// applied regardless of success or failure
	SleepBetweenItems time.Duration `yaml:"sleep_between_items" mapstructure:"sleep_between_items"`

	// ChunkTimeout bounds one translation chunk call
	ChunkTimeout time.Duration `yaml:"chunk_timeout" mapstructure:"chunk_timeout"`

	// ClassifyTimeout bounds one corruption-screening call
	ClassifyTimeout time.Duration `yaml:"classify_timeout" mapstructure:"classify_timeout"`

	// FrameTimeout bounds one frame-annotation call
	FrameTimeout time.Duration `yaml:"frame_timeout" mapstructure:"frame_timeout"`

	// LowConfidenceWarning appends a verification note to rationales
	// whose confidence falls below this value (0 disables)
	LowConfidenceWarning int `yaml:"low_confidence_warning" mapstructure:"low_confidence_warning"`

	// HighlightColumn adds a highlighted_text column during the frames run
	HighlightColumn bool `yaml:"highlight_column" mapstructure:"highlight_column"`
}

// OutputConfig controls logging and progress display
type OutputConfig struct {
	Verbose  bool `yaml:"verbose" mapstructure:"verbose"`
	Progress bool `yaml:"progress" mapstructure:"progress"`
}

// DefaultConfig returns sensible defaults for a local Ollama setup
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    "ollama",
			Model:       "llama3:70b",
			BaseURL:     "http://localhost:11434",
			Timeout:     120,
			Temperature: 0.0,
		},
		Translation: TranslationConfig{
			Model:                 "zongwei/gemma3-translator:4b",
			MaxChunkSize:          1500,
			MinLengthRatio:        0.7,
			SameLanguageThreshold: 0.3,
			CacheTTL:              30 * time.Minute,
		},
		Pipeline: PipelineConfig{
			SleepBetweenItems:    1 * time.Second,
			ChunkTimeout:         30 * time.Second,
			ClassifyTimeout:      60 * time.Second,
			FrameTimeout:         120 * time.Second,
			LowConfidenceWarning: 80,
		},
		Languages: map[string]string{
			"Bulgaria":       "bg",
			"France":         "fr",
			"Hungary":        "hu",
			"Italy":          "it",
			"Netherlands":    "nl",
			"Serbia":         "sr",
			"Sweden":         "sv",
			"Ukraine":        "uk",
			"United_Kingdom": "en",
		},
		Taxonomy: DefaultFrames(),
		Output: OutputConfig{
			Progress: true,
		},
	}
}
