package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rahul/bazari/internal/agent"
	"github.com/rahul/bazari/internal/campaign"
	"github.com/rahul/bazari/internal/deploy"
	"github.com/rahul/bazari/internal/governance"
	"github.com/rahul/bazari/internal/imagegen"
	"github.com/rahul/bazari/internal/marketing"
	"github.com/rahul/bazari/internal/observability"
	"github.com/rahul/bazari/internal/provider"
	"github.com/rahul/bazari/internal/research"
	"github.com/rahul/bazari/internal/store"
	"github.com/rahul/bazari/pkg/config"
)

func main() {
	observability.PrintBanner()
	observability.InitializeTerminal()

	// Route all log output through the terminal mutex so it never
	// interrupts the dashboard's cursor save/restore sequence.
	log.SetOutput(observability.NewTermWriter())

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatal(err)
	}

	info, err := provider.Resolve(cfg.Providers)
	if err != nil {
		var cfgErr *provider.ConfigurationError
		if errors.As(err, &cfgErr) {
			log.Fatalf("Cannot start: %v", err)
		}
		log.Fatal(err)
	}
	log.Printf("Using %s provider (%s)", info.Kind, info.Model)

	textGen, err := provider.NewTextGenerator(info, cfg.RequestTimeout())
	if err != nil {
		log.Fatal(err)
	}

	history, err := store.NewHistoryStore(cfg.Memory.Path)
	if err != nil {
		log.Fatal(err)
	}
	defer history.Close()

	// Every module generation is written through to sqlite.
	gen := store.NewRecordingGenerator(textGen, history, "marketing")

	modules := agent.Modules{
		Acquisition: marketing.NewAcquisitionModule(gen),
		Retention:   marketing.NewRetentionModule(gen),
		Digital:     marketing.NewDigitalModule(gen),
		InStore:     marketing.NewInStoreModule(gen),
		Analytics:   marketing.NewAnalyticsModule(gen),
	}

	logger := observability.NewLogger()
	prompts := agent.NewPromptManager("./prompts")

	registry := campaign.NewRegistry()
	registry.SetEventSink(history)

	gov := governance.NewDefaultPolicyEngine().WithRetailDefaults()

	var channels []deploy.Channel
	var notifier campaign.Notifier

	if tgCfg, ok := cfg.GetTelegramConfig(); ok {
		tg, err := deploy.NewTelegramChannel(tgCfg.Token, tgCfg.ChatID)
		if err != nil {
			log.Printf("Warning: Failed to initialize telegram channel: %v", err)
		} else {
			channels = append(channels, tg)
			notifier = tg
		}
	}
	if dcCfg, ok := cfg.GetDiscordConfig(); ok {
		dc, err := deploy.NewDiscordChannel(dcCfg.Token, dcCfg.ChannelID)
		if err != nil {
			log.Printf("Warning: Failed to initialize discord channel: %v", err)
		} else {
			channels = append(channels, dc)
			defer dc.Close()
		}
	}
	channels = append(channels,
		deploy.NewSocialChannel("facebook"),
		deploy.NewSocialChannel("instagram"),
		deploy.NewEmailChannel(500),
	)

	deployer := &deploy.Service{
		Channels: channels,
		Policy:   gov,
		Images:   imagegen.FromConfig(cfg.Providers),
		Registry: registry,
		Assets:   deploy.NewAssetWriter(cfg.App.Workspace),
	}

	marketer := agent.New(gen, modules, cfg.StoreContext(), prompts, logger)
	marketer.Campaigns = registry
	marketer.Deployer = deployer
	marketer.CampaignDefaults = cfg.Campaign
	marketer.History = history

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Background market research: trend lookup, competitor scans, and
	// a rendered audit of the store's own site. Failures only cost the
	// extra context they would have provided.
	go func() {
		if searcher, err := research.NewTrendSearcher(); err != nil {
			log.Printf("Warning: Failed to initialize trend search: %v", err)
		} else if trends, err := searcher.MarketTrends(ctx, cfg.Store.Type, cfg.Store.Location); err != nil {
			log.Printf("Trend lookup failed: %v", err)
		} else {
			log.Printf("Market trends (%s): %.200s", cfg.Store.Type, trends)
		}

		scanner := research.NewCompetitorScanner()
		for _, u := range cfg.Store.CompetitorURLs {
			scan, err := scanner.Scan(ctx, u)
			if err != nil {
				log.Printf("Competitor scan of %s failed: %v", u, err)
				continue
			}
			log.Printf("Competitor scan of %s: %.200s", u, scan)
		}

		if cfg.Store.HasOnlineStore && cfg.Store.WebsiteURL != "" {
			auditor := research.NewSiteAuditor(cfg.App.Workspace)
			if audit, err := auditor.Run(ctx, cfg.Store.WebsiteURL); err != nil {
				log.Printf("Site audit failed: %v", err)
			} else {
				log.Printf("Site audit captured %d bytes of rendered HTML (screenshot: %s)",
					len(audit.RenderedHTML), audit.ScreenshotPath)
			}
		}
	}()

	monitor := campaign.NewMonitor(registry, notifier)
	go monitor.Start(ctx)

	// Live Resource Dashboard (1-second updates)
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				observability.PrintLiveStatus()
			}
		}
	}()

	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				observability.Heartbeat()
				logger.LogHeartbeat()
			}
		}
	}()

	// Seed a standing goal so the agent has work on a fresh start.
	go func() {
		goal, err := marketer.SetGoal(agent.GoalCustomerAcquisition,
			"Attract new customers to "+cfg.Store.Name, "30 days", "", nil, 3)
		if err != nil {
			log.Printf("Could not seed startup goal: %v", err)
			return
		}
		if _, err := marketer.Execute(ctx, goal); err != nil {
			log.Printf("Startup goal execution failed: %v", err)
			return
		}
		if verdict, err := marketer.Evaluate(ctx, goal); err == nil {
			log.Printf("Evaluation: %s", verdict)
		}
	}()

	<-ctx.Done()

	observability.CleanupTerminal()

	// Give a short time for final logs/syncs
	time.Sleep(500 * time.Millisecond)
	log.Println("\033[95m[ EXIT ] MARKETING AUTOPILOT STOPPED. GOODBYE.\033[0m")
}
