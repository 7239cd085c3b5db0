package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rahul/bazari/internal/provider"
)

const defaultImageTimeout = 60 * time.Second

type imageRequest struct {
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size"`
	Model   string `json:"model,omitempty"`
	Quality string `json:"quality,omitempty"`
}

type imageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// isAzureEndpoint reports whether the endpoint uses the Azure OpenAI
// wire format, which wants an api-key header and no model field.
func isAzureEndpoint(endpoint string) bool {
	return strings.Contains(strings.ToLower(endpoint), "azure.com")
}

func postImage(ctx context.Context, client *http.Client, endpoint, apiKey string, body imageRequest) (string, error) {
	if client == nil {
		client = &http.Client{Timeout: defaultImageTimeout}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", &provider.GenerationError{Op: "image", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", &provider.GenerationError{Op: "image", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if isAzureEndpoint(endpoint) {
		req.Header.Set("api-key", apiKey)
	} else {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", &provider.GenerationError{Op: "image", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return "", &provider.GenerationError{
			Op:    "image",
			Cause: fmt.Errorf("endpoint returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))),
		}
	}

	var decoded imageResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", &provider.GenerationError{Op: "image", Cause: err}
	}
	if len(decoded.Data) == 0 || decoded.Data[0].URL == "" {
		return "", &provider.GenerationError{Op: "image", Cause: fmt.Errorf("response carried no image url")}
	}
	return decoded.Data[0].URL, nil
}

// RESTStrategy posts to an explicitly configured image endpoint. Azure
// endpoints are detected by hostname and get the api-key header with
// the model field omitted; everything else gets a Bearer token.
type RESTStrategy struct {
	Endpoint string
	APIKey   string
	Model    string
	Client   *http.Client
}

func (s *RESTStrategy) Name() string { return "configured_endpoint" }

func (s *RESTStrategy) Generate(ctx context.Context, prompt string, _ CampaignContext) (string, error) {
	body := imageRequest{Prompt: prompt, N: 1, Size: "1024x1024"}
	if !isAzureEndpoint(s.Endpoint) {
		body.Model = s.Model
		body.Quality = "standard"
	}
	return postImage(ctx, s.Client, s.Endpoint, s.APIKey, body)
}

// AzureStrategy targets an Azure OpenAI image deployment directly.
type AzureStrategy struct {
	Endpoint   string
	APIKey     string
	APIVersion string
	Model      string
	Client     *http.Client
}

func (s *AzureStrategy) Name() string { return "azure_openai" }

func (s *AzureStrategy) Generate(ctx context.Context, prompt string, _ CampaignContext) (string, error) {
	model := s.Model
	if model == "" {
		model = "dall-e-3"
	}
	endpoint := fmt.Sprintf("%s/openai/deployments/%s/images/generations?api-version=%s",
		strings.TrimRight(s.Endpoint, "/"), model, s.APIVersion)
	return postImage(ctx, s.Client, endpoint, s.APIKey, imageRequest{Prompt: prompt, N: 1, Size: "1024x1024"})
}

// OpenAIStrategy talks to the public OpenAI images API.
type OpenAIStrategy struct {
	APIKey string
	Model  string
	Client *http.Client
}

func (s *OpenAIStrategy) Name() string { return "openai" }

func (s *OpenAIStrategy) Generate(ctx context.Context, prompt string, _ CampaignContext) (string, error) {
	model := s.Model
	if model == "" {
		model = "dall-e-3"
	}
	return postImage(ctx, s.Client, "https://api.openai.com/v1/images/generations", s.APIKey, imageRequest{
		Prompt:  prompt,
		N:       1,
		Size:    "1024x1024",
		Model:   model,
		Quality: "standard",
	})
}
