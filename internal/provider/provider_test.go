package provider

import (
	"errors"
	"strings"
	"testing"

	"github.com/rahul/bazari/pkg/config"
)

func TestResolve_PrefersAzure(t *testing.T) {
	pc := config.ProviderConfig{
		OpenAIAPIKey:    "sk-standard",
		OpenAIModel:     "gpt-4o",
		AzureAPIKey:     "azure-key",
		AzureEndpoint:   "https://example.openai.azure.com",
		AzureDeployment: "gpt-4o",
		AzureAPIVersion: "2024-02-15-preview",
	}

	info, err := Resolve(pc)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if info.Kind != KindAzure {
		t.Errorf("expected azure to win over standard, got %s", info.Kind)
	}
	if info.Model != "gpt-4o" || info.Endpoint != "https://example.openai.azure.com" {
		t.Errorf("azure descriptor not populated: %+v", info)
	}
}

func TestResolve_FallsBackToOpenAI(t *testing.T) {
	pc := config.ProviderConfig{OpenAIAPIKey: "sk-standard", OpenAIModel: "gpt-4o"}

	info, err := Resolve(pc)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if info.Kind != KindOpenAI {
		t.Errorf("expected openai, got %s", info.Kind)
	}
}

func TestResolve_MissingCredentialsNamesKeys(t *testing.T) {
	_, err := Resolve(config.ProviderConfig{})
	if err == nil {
		t.Fatal("expected a ConfigurationError")
	}

	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigurationError, got %T", err)
	}

	msg := err.Error()
	for _, key := range []string{"OPENAI_API_KEY", "AZURE_OPENAI_API_KEY", "AZURE_OPENAI_ENDPOINT"} {
		if !strings.Contains(msg, key) {
			t.Errorf("error should name missing key %s, got: %s", key, msg)
		}
	}
}

func TestGenerationError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &GenerationError{Op: "text", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("GenerationError should unwrap to its cause")
	}
}
