package main

import (
	"fmt"
	"net/http"
	"time"

	"shopping-advisor-go/internal/advisor"
	"shopping-advisor-go/internal/config"
	"shopping-advisor-go/internal/logger"
	"shopping-advisor-go/internal/processor"
	"shopping-advisor-go/internal/scraper"
	"shopping-advisor-go/internal/server"
)

func main() {
	cfg := config.Load() // loads .env

	log := logger.New()
	log.WithField("service", "shopping-advisor-go").Info("starting service")
	log.WithField("scraper_url", cfg.ScraperURL).
		WithField("advisor_url", cfg.AdvisorURL).
		WithField("mock_scraper", cfg.MockScraper).
		WithField("mock_advisor", cfg.MockAdvisor).
		Info("collaborators configured")

	proc := processor.New(
		scraper.New(cfg, log),
		advisor.New(cfg, log),
		cfg.MarketplaceHost,
		cfg.ScrapeTimeout+cfg.AdvisorTimeout,
		log,
	)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     server.New(proc, log.Component("http")),
		ReadTimeout: 15 * time.Second,
		// a full analysis may run both upstream timeouts back to back
		WriteTimeout: cfg.ScrapeTimeout + cfg.AdvisorTimeout + 15*time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}
