package research

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const articleHTML = `<!DOCTYPE html>
<html><head><title>Competitor Fall Sale</title></head>
<body><article>
<h1>Competitor Fall Sale</h1>
<p>Everything in store is 30 percent off through Sunday. Members get early access on Friday evening.</p>
<p>Free gift wrapping with purchases over fifty dollars.</p>
<script>alert("tracking")</script>
</article></body></html>`

func TestScan_ExtractsCleanText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	s := NewCompetitorScanner()
	out, err := s.Scan(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if !strings.Contains(out, "30 percent off") {
		t.Errorf("article body missing from output:\n%s", out)
	}
	if strings.Contains(out, "<script>") || strings.Contains(out, "alert(") {
		t.Error("script content leaked into sanitized output")
	}
	if !strings.Contains(out, "TITLE:") {
		t.Error("output should carry the structured TITLE header")
	}
}

func TestScan_RejectsNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	s := NewCompetitorScanner()
	if _, err := s.Scan(context.Background(), srv.URL); err == nil {
		t.Fatal("404 should surface as an error")
	}
}
