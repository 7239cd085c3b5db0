package provider

import (
	"context"
	"time"

	"github.com/rahul/bazari/pkg/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Kind identifies which backend family the resolver picked.
type Kind string

const (
	KindAzure  Kind = "azure"
	KindOpenAI Kind = "openai"
	KindCustom Kind = "custom"
)

// Info is the immutable provider descriptor produced at startup.
type Info struct {
	Kind       Kind
	Endpoint   string
	Credential string
	Model      string
	APIVersion string
}

// TextGenerator is the capability every prompt module consumes. The
// real implementation is a single-attempt call against the resolved
// backend; tests substitute fakes.
type TextGenerator interface {
	Generate(ctx context.Context, system string, user string) (string, error)
}

// Resolve picks the text generation backend from configured
// credentials. Azure wins when its credentials are present, then
// standard OpenAI. With neither, the error names every key that
// would have satisfied one of the two.
func Resolve(pc config.ProviderConfig) (Info, error) {
	if pc.AzureAPIKey != "" && pc.AzureEndpoint != "" {
		return Info{
			Kind:       KindAzure,
			Endpoint:   pc.AzureEndpoint,
			Credential: pc.AzureAPIKey,
			Model:      pc.AzureDeployment,
			APIVersion: pc.AzureAPIVersion,
		}, nil
	}

	if pc.OpenAIAPIKey != "" {
		return Info{
			Kind:       KindOpenAI,
			Credential: pc.OpenAIAPIKey,
			Model:      pc.OpenAIModel,
		}, nil
	}

	var missing []string
	missing = append(missing, "OPENAI_API_KEY")
	if pc.AzureAPIKey == "" {
		missing = append(missing, "AZURE_OPENAI_API_KEY")
	}
	if pc.AzureEndpoint == "" {
		missing = append(missing, "AZURE_OPENAI_ENDPOINT")
	}
	return Info{}, &ConfigurationError{Missing: missing}
}

// LLMGenerator adapts a langchaingo model to the TextGenerator
// capability with a bounded per-call timeout.
type LLMGenerator struct {
	Model   llms.Model
	Timeout time.Duration
}

// NewTextGenerator builds the langchaingo client for the resolved
// backend.
func NewTextGenerator(info Info, timeout time.Duration) (*LLMGenerator, error) {
	opts := []openai.Option{
		openai.WithToken(info.Credential),
		openai.WithModel(info.Model),
	}

	switch info.Kind {
	case KindAzure:
		opts = append(opts,
			openai.WithAPIType(openai.APITypeAzure),
			openai.WithBaseURL(info.Endpoint),
			openai.WithAPIVersion(info.APIVersion),
		)
	case KindCustom:
		opts = append(opts, openai.WithBaseURL(info.Endpoint))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}

	return &LLMGenerator{Model: llm, Timeout: timeout}, nil
}

func (g *LLMGenerator) Generate(ctx context.Context, system string, user string) (string, error) {
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	var messages []llms.MessageContent
	if system != "" {
		messages = append(messages, llms.MessageContent{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(system)},
		})
	}
	messages = append(messages, llms.MessageContent{
		Role:  llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{llms.TextPart(user)},
	})

	resp, err := g.Model.GenerateContent(ctx, messages)
	if err != nil {
		return "", &GenerationError{Op: "text", Cause: err}
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return "", &GenerationError{Op: "text", Cause: errEmptyResponse}
	}

	return resp.Choices[0].Content, nil
}

var errEmptyResponse = errEmpty{}

type errEmpty struct{}

func (errEmpty) Error() string { return "provider returned an empty response" }
