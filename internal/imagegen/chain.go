package imagegen

import (
	"context"
	"log"

	"github.com/rahul/bazari/pkg/config"
)

// Strategy is one way of producing a campaign image URL.
type Strategy interface {
	Name() string
	Generate(ctx context.Context, prompt string, cc CampaignContext) (string, error)
}

// Result names the strategy that produced the image.
type Result struct {
	URL      string `json:"url"`
	Strategy string `json:"strategy"`
}

// Chain tries strategies in priority order until one produces a URL.
// The chain always ends in the stock strategy, so Generate cannot
// fail: the worst outcome is a curated stock image.
type Chain struct {
	strategies []Strategy
	fallback   *StockStrategy
}

func NewChain(strategies ...Strategy) *Chain {
	return &Chain{
		strategies: strategies,
		fallback:   NewStockStrategy(),
	}
}

// FromConfig assembles the chain from provider configuration: the
// configured image endpoint first, then Azure, then standard OpenAI.
// Unconfigured strategies are left out.
func FromConfig(pc config.ProviderConfig) *Chain {
	var strategies []Strategy
	if pc.ImageEndpoint != "" && pc.ImageAPIKey != "" {
		strategies = append(strategies, &RESTStrategy{
			Endpoint: pc.ImageEndpoint,
			APIKey:   pc.ImageAPIKey,
			Model:    pc.ImageModel,
		})
	}
	if pc.AzureAPIKey != "" && pc.AzureEndpoint != "" {
		strategies = append(strategies, &AzureStrategy{
			Endpoint:   pc.AzureEndpoint,
			APIKey:     pc.AzureAPIKey,
			APIVersion: pc.AzureAPIVersion,
			Model:      pc.ImageModel,
		})
	}
	if pc.OpenAIAPIKey != "" {
		strategies = append(strategies, &OpenAIStrategy{
			APIKey: pc.OpenAIAPIKey,
			Model:  pc.ImageModel,
		})
	}
	return NewChain(strategies...)
}

// Generate builds the platform prompt and walks the chain. Strategy
// failures are logged and absorbed; the stock fallback always answers.
func (c *Chain) Generate(ctx context.Context, platform string, cc CampaignContext) Result {
	prompt := BuildPrompt(platform, cc)

	for _, s := range c.strategies {
		url, err := s.Generate(ctx, prompt, cc)
		if err != nil {
			log.Printf("Image strategy %s failed for %s: %v", s.Name(), platform, err)
			continue
		}
		return Result{URL: url, Strategy: s.Name()}
	}

	url, _ := c.fallback.Generate(ctx, prompt, cc)
	return Result{URL: url, Strategy: c.fallback.Name()}
}
