package config

import "fmt"

const DefaultPrompt = "You are a professional subtitle translator. Translate the subtitle text " +
	"naturally and colloquially, keeping each cue's number and timestamps exactly as given. " +
	"Return only a valid SRT document with the same number of cues."

// Engine names accepted throughout the pipeline.
const (
	EngineGemini = "gemini"
	EngineOpenAI = "openai"
	EngineClaude = "claude"
)

type Config struct {
	Engines     EnginesConfig     `yaml:"engines"`
	Translation TranslationConfig `yaml:"translation"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type EnginesConfig struct {
	Default string       `yaml:"default"`
	Gemini  GeminiConfig `yaml:"gemini"`
	OpenAI  OpenAIConfig `yaml:"openai"`
	Claude  ClaudeConfig `yaml:"claude"`
}

type GeminiConfig struct {
	APIKeys []string `yaml:"api_keys"`
	Model   string   `yaml:"model"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type ClaudeConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type TranslationConfig struct {
	Prompt         string `yaml:"prompt"`
	SourceLanguage string `yaml:"source_language"`
	TargetLanguage string `yaml:"target_language"`
	ChunkSize      int    `yaml:"chunk_size"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
	Temp     string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

func (c *Config) Validate() error {
	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Performance.MaxConcurrent <= 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Translation.ChunkSize <= 0 {
		c.Translation.ChunkSize = 100
	}
	if c.Translation.Prompt == "" {
		c.Translation.Prompt = DefaultPrompt
	}
	if c.Translation.TargetLanguage == "" {
		c.Translation.TargetLanguage = "zh"
	}
	if c.Engines.Gemini.Model == "" {
		c.Engines.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Engines.OpenAI.Model == "" {
		c.Engines.OpenAI.Model = "gpt-4o-mini"
	}
	if c.Engines.Claude.Model == "" {
		c.Engines.Claude.Model = "claude-sonnet-4-20250514"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if c.Engines.Default != "" && !knownEngine(c.Engines.Default) {
		return fmt.Errorf("engines.default: unknown engine %q", c.Engines.Default)
	}

	return nil
}

// EngineConfigured reports whether the named engine has credentials set.
func (c *Config) EngineConfigured(name string) bool {
	switch name {
	case EngineGemini:
		for _, k := range c.Engines.Gemini.APIKeys {
			if k != "" {
				return true
			}
		}
		return false
	case EngineOpenAI:
		return c.Engines.OpenAI.APIKey != ""
	case EngineClaude:
		return c.Engines.Claude.APIKey != ""
	}
	return false
}

// DefaultEngine returns engines.default when set, otherwise the first
// configured engine in gemini, openai, claude order. Empty when none
// has a key.
func (c *Config) DefaultEngine() string {
	if c.Engines.Default != "" {
		return c.Engines.Default
	}
	for _, name := range []string{EngineGemini, EngineOpenAI, EngineClaude} {
		if c.EngineConfigured(name) {
			return name
		}
	}
	return ""
}

// SetAPIKey stores an API key for the named engine. For gemini the key is
// appended to the rotation list unless already present.
func (c *Config) SetAPIKey(engine, key string) error {
	switch engine {
	case EngineGemini:
		for _, k := range c.Engines.Gemini.APIKeys {
			if k == key {
				return nil
			}
		}
		c.Engines.Gemini.APIKeys = append(c.Engines.Gemini.APIKeys, key)
	case EngineOpenAI:
		c.Engines.OpenAI.APIKey = key
	case EngineClaude:
		c.Engines.Claude.APIKey = key
	default:
		return fmt.Errorf("unknown engine %q", engine)
	}
	return nil
}

func knownEngine(name string) bool {
	switch name {
	case EngineGemini, EngineOpenAI, EngineClaude:
		return true
	}
	return false
}
