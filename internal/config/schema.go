package config

import "fmt"

// Config holds proffer configuration.
// Stored at: ~/.proffer/config.yaml
type Config struct {
	Server    ServerCfg         `mapstructure:"server" yaml:"server"`
	Providers ProvidersCfg      `mapstructure:"providers" yaml:"providers"`
	Prompts   map[string]string `mapstructure:"prompts" yaml:"prompts"` // Prompt text overrides by key
}

// ServerCfg configures the HTTP listener.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

// ProvidersCfg configures the external services.
type ProvidersCfg struct {
	Reducto ReductoCfg `mapstructure:"reducto" yaml:"reducto"`
	OpenAI  OpenAICfg  `mapstructure:"openai" yaml:"openai"`
}

// ReductoCfg configures the hosted document parser.
type ReductoCfg struct {
	APIKey    string `mapstructure:"api_key" yaml:"api_key"` // API key (supports ${ENV_VAR} syntax)
	BaseURL   string `mapstructure:"base_url" yaml:"base_url"`
	ChunkMode string `mapstructure:"chunk_mode" yaml:"chunk_mode"`
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled"`
}

// OpenAICfg configures the LLM used for cleanup and drafting.
type OpenAICfg struct {
	APIKey  string `mapstructure:"api_key" yaml:"api_key"` // API key (supports ${ENV_VAR} syntax)
	Model   string `mapstructure:"model" yaml:"model"`
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
}

// DefaultConfig returns configuration with sensible defaults. API keys come
// from the environment; a provider with no key simply stays unregistered.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerCfg{
			Host: "localhost",
			Port: 8585,
		},
		Providers: ProvidersCfg{
			Reducto: ReductoCfg{
				APIKey:  "${REDUCTO_API_KEY}",
				Enabled: true,
			},
			OpenAI: OpenAICfg{
				APIKey:  "${OPENAI_API_KEY}",
				Model:   "gpt-4o",
				Enabled: true,
			},
		},
	}
}

// ServerURL returns the base URL clients should use.
func (c *Config) ServerURL() string {
	host := c.Server.Host
	if host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%d", host, c.Server.Port)
}
