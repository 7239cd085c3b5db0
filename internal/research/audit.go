package research

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/chromedp"
)

// SiteAuditor renders a store's website in a headless browser and
// captures the DOM and a screenshot for local SEO review. JS-heavy
// storefronts need rendering before their content is visible.
type SiteAuditor struct {
	ScreenshotDir string
	Timeout       time.Duration
}

func NewSiteAuditor(screenshotDir string) *SiteAuditor {
	return &SiteAuditor{
		ScreenshotDir: screenshotDir,
		Timeout:       60 * time.Second,
	}
}

// Audit holds the rendered snapshot of a site.
type Audit struct {
	URL            string
	RenderedHTML   string
	ScreenshotPath string
}

// Run navigates to the site, waits for the body, and captures the
// rendered DOM plus a full screenshot.
func (a *SiteAuditor) Run(ctx context.Context, siteURL string) (*Audit, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("headless", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	runCtx, cancel := context.WithTimeout(browserCtx, a.Timeout)
	defer cancel()

	var html string
	var shot []byte
	err := chromedp.Run(runCtx,
		chromedp.Navigate(siteURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			node, err := dom.GetDocument().Do(ctx)
			if err != nil {
				return err
			}
			html, err = dom.GetOuterHTML().WithNodeID(node.NodeID).Do(ctx)
			return err
		}),
		chromedp.CaptureScreenshot(&shot),
	)
	if err != nil {
		return nil, fmt.Errorf("site audit failed: %v", err)
	}

	if len(html) > maxScrapeChars {
		html = html[:maxScrapeChars] + "\n... (truncated)"
	}

	audit := &Audit{URL: siteURL, RenderedHTML: html}
	if a.ScreenshotDir != "" && len(shot) > 0 {
		if err := os.MkdirAll(a.ScreenshotDir, 0755); err == nil {
			path := filepath.Join(a.ScreenshotDir, fmt.Sprintf("audit_%d.png", time.Now().Unix()))
			if err := os.WriteFile(path, shot, 0644); err == nil {
				audit.ScreenshotPath = path
			}
		}
	}
	return audit, nil
}
