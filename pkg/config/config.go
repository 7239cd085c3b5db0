package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App       AppConfig      `yaml:"app"`
	Providers ProviderConfig `yaml:"providers"`
	Store     StoreConfig    `yaml:"store"`
	Campaign  CampaignConfig `yaml:"campaign"`
	Channels  ChannelsConfig `yaml:"channels"`
	Memory    MemoryConfig   `yaml:"memory"`
}

type AppConfig struct {
	Name           string `yaml:"name"`
	Workspace      string `yaml:"workspace"`
	RequestTimeout int    `yaml:"request_timeout_seconds"`
}

// ProviderConfig holds credentials for every generation backend the
// resolver may pick from. Secrets are overridable via environment
// variables so the YAML file never needs to carry keys.
type ProviderConfig struct {
	OpenAIAPIKey string `yaml:"openai_api_key"`
	OpenAIModel  string `yaml:"openai_model"`

	AzureAPIKey     string `yaml:"azure_api_key"`
	AzureEndpoint   string `yaml:"azure_endpoint"`
	AzureDeployment string `yaml:"azure_deployment"`
	AzureAPIVersion string `yaml:"azure_api_version"`

	ImageEndpoint string `yaml:"image_endpoint"`
	ImageAPIKey   string `yaml:"image_api_key"`
	ImageModel    string `yaml:"image_model"`
}

type StoreConfig struct {
	Name           string   `yaml:"name"`
	Type           string   `yaml:"type"`
	Location       string   `yaml:"location"`
	HasOnlineStore bool     `yaml:"has_online_store"`
	WebsiteURL     string   `yaml:"website_url"`
	CompetitorURLs []string `yaml:"competitor_urls"`
}

type CampaignConfig struct {
	DefaultBudget   float64 `yaml:"default_budget"`
	DefaultDuration int     `yaml:"default_duration_days"`
	TargetROI       float64 `yaml:"target_roi"`
}

type ChannelsConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Discord  DiscordConfig  `yaml:"discord"`
}

type TelegramConfig struct {
	Token   string `yaml:"token"`
	ChatID  int64  `yaml:"chat_id"`
	Enabled bool   `yaml:"enabled"`
}

type DiscordConfig struct {
	Token     string `yaml:"token"`
	ChannelID string `yaml:"channel_id"`
	Enabled   bool   `yaml:"enabled"`
}

type MemoryConfig struct {
	Path string `yaml:"path"`
}

// StoreContext is the request-scoped snapshot of business facts passed
// into every module call. It is derived once from StoreConfig and
// never mutated afterwards.
type StoreContext struct {
	Name           string
	Type           string
	Location       string
	HasOnlineStore bool
	WebsiteURL     string
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to open config file %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

// applyEnv lets environment variables override (or stand in for) file
// values. Secrets are expected to arrive this way.
func (c *Config) applyEnv() {
	overrideString(&c.Providers.OpenAIAPIKey, "OPENAI_API_KEY")
	overrideString(&c.Providers.OpenAIModel, "OPENAI_MODEL")
	overrideString(&c.Providers.AzureAPIKey, "AZURE_OPENAI_API_KEY")
	overrideString(&c.Providers.AzureEndpoint, "AZURE_OPENAI_ENDPOINT")
	overrideString(&c.Providers.AzureDeployment, "AZURE_OPENAI_DEPLOYMENT")
	overrideString(&c.Providers.AzureAPIVersion, "AZURE_API_VERSION")
	overrideString(&c.Providers.ImageEndpoint, "DALLE_API_ENDPOINT")
	overrideString(&c.Providers.ImageAPIKey, "DALLE_API_KEY")
	overrideString(&c.Providers.ImageModel, "DALLE_MODEL")
	overrideString(&c.Store.Name, "STORE_NAME")
	overrideString(&c.Store.Type, "STORE_TYPE")
	overrideString(&c.Store.Location, "STORE_LOCATION")
	overrideString(&c.Store.WebsiteURL, "WEBSITE_URL")
	if v := os.Getenv("HAS_ONLINE_STORE"); v == "true" || v == "1" {
		c.Store.HasOnlineStore = true
	}
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "bazari"
	}
	if c.App.Workspace == "" {
		c.App.Workspace = "./workspace"
	}
	if c.App.RequestTimeout <= 0 {
		c.App.RequestTimeout = 45
	}
	if c.Providers.OpenAIModel == "" {
		c.Providers.OpenAIModel = "gpt-4o"
	}
	if c.Providers.AzureAPIVersion == "" {
		c.Providers.AzureAPIVersion = "2024-02-15-preview"
	}
	if c.Providers.ImageModel == "" {
		c.Providers.ImageModel = "dall-e-3"
	}
	if c.Store.Name == "" {
		c.Store.Name = "Retail Store"
	}
	if c.Store.Type == "" {
		c.Store.Type = "general"
	}
	if c.Campaign.DefaultBudget <= 0 {
		c.Campaign.DefaultBudget = 5000
	}
	if c.Campaign.DefaultDuration <= 0 {
		c.Campaign.DefaultDuration = 30
	}
	if c.Campaign.TargetROI <= 0 {
		c.Campaign.TargetROI = 3.0
	}
	if c.Memory.Path == "" {
		c.Memory.Path = "bazari.db"
	}
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// RequestTimeout returns the per-call timeout for outbound generation
// requests.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.App.RequestTimeout) * time.Second
}

// StoreContext derives the immutable business context handed to every
// module call.
func (c *Config) StoreContext() StoreContext {
	return StoreContext{
		Name:           c.Store.Name,
		Type:           c.Store.Type,
		Location:       c.Store.Location,
		HasOnlineStore: c.Store.HasOnlineStore,
		WebsiteURL:     c.Store.WebsiteURL,
	}
}

// GetTelegramConfig returns telegram channel config if enabled.
func (c *Config) GetTelegramConfig() (TelegramConfig, bool) {
	tg := c.Channels.Telegram
	if tg.Enabled && tg.Token != "" {
		return tg, true
	}
	return TelegramConfig{}, false
}

// GetDiscordConfig returns discord channel config if enabled.
func (c *Config) GetDiscordConfig() (DiscordConfig, bool) {
	d := c.Channels.Discord
	if d.Enabled && d.Token != "" {
		return d, true
	}
	return DiscordConfig{}, false
}
