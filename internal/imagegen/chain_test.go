package imagegen

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

type stubStrategy struct {
	name  string
	url   string
	err   error
	calls int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Generate(_ context.Context, _ string, _ CampaignContext) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

var testContext = CampaignContext{
	StoreName:    "Fashion Forward Boutique",
	StoreType:    "clothing",
	CampaignType: "acquisition",
	Goal:         "attract new customers",
}

func TestChain_FallsThroughToFirstWorkingStrategy(t *testing.T) {
	a := &stubStrategy{name: "a", err: errors.New("down")}
	b := &stubStrategy{name: "b", err: errors.New("also down")}
	c := &stubStrategy{name: "c", url: "https://images.example/ok.png"}

	res := NewChain(a, b, c).Generate(context.Background(), "instagram", testContext)

	if a.calls != 1 || b.calls != 1 || c.calls != 1 {
		t.Errorf("strategies called (%d, %d, %d) times, want 1 each", a.calls, b.calls, c.calls)
	}
	if res.URL != "https://images.example/ok.png" || res.Strategy != "c" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestChain_NeverFails(t *testing.T) {
	a := &stubStrategy{name: "a", err: errors.New("down")}
	b := &stubStrategy{name: "b", err: errors.New("down")}

	res := NewChain(a, b).Generate(context.Background(), "facebook", testContext)

	if res.URL == "" {
		t.Fatal("chain must always produce a URL")
	}
	if res.Strategy != "stock" {
		t.Errorf("exhausted chain should land on stock, got %s", res.Strategy)
	}
	if !strings.HasPrefix(res.URL, "https://picsum.photos/id/") {
		t.Errorf("stock fallback produced unexpected URL %s", res.URL)
	}
}

func TestChain_EmptyChainStillAnswers(t *testing.T) {
	res := NewChain().Generate(context.Background(), "twitter", testContext)
	if res.URL == "" || res.Strategy != "stock" {
		t.Errorf("empty chain should answer from stock, got %+v", res)
	}
}

func TestStockStrategy_PoolMatchesStoreType(t *testing.T) {
	s := NewStockStrategy()

	cases := []struct {
		storeType string
		pool      []int
	}{
		{"clothing", stockPools[0].pool.ids},
		{"grocery and food", stockPools[1].pool.ids},
		{"electronics", stockPools[2].pool.ids},
		{"unknown widgets", retailPool.ids},
	}
	for _, tc := range cases {
		url, err := s.Generate(context.Background(), "prompt", CampaignContext{StoreType: tc.storeType})
		if err != nil {
			t.Fatalf("stock strategy must never fail, got %v", err)
		}
		found := false
		for _, id := range tc.pool {
			if strings.HasPrefix(url, "https://picsum.photos/id/") &&
				strings.Contains(url, "/id/"+strconv.Itoa(id)+"/") {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("%s: url %s not drawn from expected pool", tc.storeType, url)
		}
	}
}

func TestBuildPrompt_DeterministicAndPlatformStyled(t *testing.T) {
	first := BuildPrompt("instagram", testContext)
	second := BuildPrompt("instagram", testContext)
	if first != second {
		t.Error("identical inputs must build identical prompts")
	}

	if !strings.Contains(first, "clothing") {
		t.Error("prompt should reference the product category")
	}
	if !strings.Contains(first, platformStyles["instagram"]) {
		t.Error("prompt should carry the platform style")
	}
	if BuildPrompt("facebook", testContext) == first {
		t.Error("different platforms should style prompts differently")
	}
}

func TestRESTStrategy_ParsesResponse(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"url":"https://cdn.example/gen.png"}]}`))
	}))
	defer srv.Close()

	s := &RESTStrategy{Endpoint: srv.URL, APIKey: "sk-test", Model: "dall-e-3", Client: srv.Client()}
	url, err := s.Generate(context.Background(), "a prompt", testContext)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if url != "https://cdn.example/gen.png" {
		t.Errorf("url = %s", url)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("non-Azure endpoints should use a Bearer token, got %q", gotAuth)
	}
}

func TestRESTStrategy_SurfacesHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := &RESTStrategy{Endpoint: srv.URL, APIKey: "sk-test", Client: srv.Client()}
	if _, err := s.Generate(context.Background(), "a prompt", testContext); err == nil {
		t.Fatal("429 response should surface as an error so the chain can fall back")
	}
}

func TestIsAzureEndpoint(t *testing.T) {
	if !isAzureEndpoint("https://myshop.openai.azure.com/openai/deployments/dalle3/images/generations") {
		t.Error("azure.com endpoint not detected")
	}
	if isAzureEndpoint("https://api.openai.com/v1/images/generations") {
		t.Error("openai.com endpoint misdetected as Azure")
	}
}
