package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"finds/internal/catalog"
	"finds/internal/config"
	"finds/internal/github"
	"finds/internal/scraper"
	"finds/internal/store"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "finds",
	Short: "GitHub-issues-backed product catalog",
	Long: `finds turns GitHub issues labelled "product" into a searchable
affiliate product catalog: it parses issue bodies into product records,
caches them locally, serves them over HTTP, and creates new product
issues from the CLI, the HTTP API or a Telegram bot.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "directory containing config.yaml")
}

// app bundles the wired components a command needs. Commands that only
// touch the local document (append) skip the database.
type app struct {
	cfg  config.Config
	log  *logrus.Logger
	repo *store.BadgerRepository
	gw   *github.Client
	st   *store.Store
	svc  *catalog.Service
}

// newApp loads config and wires components. withDB controls whether the
// Badger repository is opened; without it the store runs uncached.
func newApp(withDB bool) (*app, error) {
	// Local .env is a convenience for development; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	a := &app{cfg: cfg, log: log}

	if withDB {
		repo, err := store.NewBadgerRepository(cfg.DBPath, log)
		if err != nil {
			return nil, fmt.Errorf("initialize database: %w", err)
		}
		a.repo = repo
	}

	token := cfg.Token
	if token == "" && a.repo != nil {
		stored, err := a.repo.Token(context.Background(), cfg.Owner, cfg.Repo)
		if err != nil {
			log.WithError(err).Warn("Stored token unavailable")
		}
		token = stored
	}

	a.gw = github.NewClient(cfg.Owner, cfg.Repo, cfg.Branch, token, log)
	a.st = store.New(a.gw, repoOrNil(a.repo), store.Options{
		Owner:     cfg.Owner,
		Repo:      cfg.Repo,
		Label:     cfg.Label,
		Freshness: cfg.Freshness(),
		MaxItems:  cfg.MaxItems,
	}, log)

	var scr scraper.Scraper
	if cfg.ScrapePreviews {
		scr = scraper.NewRodScraper(log)
	}
	a.svc = catalog.NewService(a.st, a.gw, scr, cfg.Label, log)

	return a, nil
}

func (a *app) Close() {
	if a.repo == nil {
		return
	}
	if err := a.repo.Close(); err != nil {
		a.log.WithError(err).Error("Error closing database")
	}
}

// repoOrNil avoids handing the store a non-nil interface wrapping a nil
// pointer.
func repoOrNil(r *store.BadgerRepository) store.Repository {
	if r == nil {
		return nil
	}
	return r
}
