package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jask/artgallery/internal/catalog"
	"github.com/jask/artgallery/internal/config"
	"github.com/jask/artgallery/internal/gallery"
	"github.com/jask/artgallery/internal/logging"
	"github.com/jask/artgallery/internal/service"
	"github.com/jask/artgallery/internal/store"
	"github.com/jask/artgallery/internal/tui"
)

func newRootCmd() *cobra.Command {
	var ephemeral bool

	cmd := &cobra.Command{
		Use:   "artgallery",
		Short: "Browse the art gallery and keep a ranked shortlist of favorites",
		Long: `artgallery shows the gallery catalog as a looping carousel in the terminal.

Artworks can be added to a fixed-size favorites list, placed on a chosen slot,
or opened in a larger view. Favorites are saved after every change.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if ephemeral {
				cfg.Storage.Backend = "memory"
			}
			return runTUI(cmd.Context(), cfg)
		},
	}
	cmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "keep favorites in memory for this run only")

	cmd.AddCommand(newFavoritesCmd(), newCatalogCmd(), newConfigCmd())
	return cmd
}

// env holds what every command that touches favorites needs.
type env struct {
	log       *logrus.Entry
	kv        store.KV
	favorites *service.FavoritesService
	closeLog  func() error
}

func openEnv(cfg config.Config) (*env, error) {
	log, closeLog, err := logging.Setup(cfg.Log)
	if err != nil {
		return nil, err
	}
	kv, err := store.Open(cfg.Storage, log)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return &env{
		log:      log,
		kv:       kv,
		closeLog: closeLog,
		favorites: &service.FavoritesService{
			Store: kv,
			Key:   cfg.Favorites.Key,
			Size:  cfg.Favorites.Size,
			Log:   log,
		},
	}, nil
}

func (e *env) Close() error {
	err := e.kv.Close()
	if cerr := e.closeLog(); err == nil {
		err = cerr
	}
	return err
}

func runTUI(ctx context.Context, cfg config.Config) error {
	e, err := openEnv(cfg)
	if err != nil {
		return err
	}
	defer e.Close()

	e.log.WithFields(logrus.Fields{
		"endpoint": cfg.API.Endpoint,
		"size":     cfg.Favorites.Size,
	}).Info("starting")

	fetcher := catalog.NewFetcher(catalog.NewClient(cfg.API.Endpoint, cfg.API.Timeout), e.log)
	opts := gallery.WindowOptions{
		Proximity:   cfg.Carousel.Proximity,
		InitialSpan: cfg.Carousel.InitialSpan,
		Evict:       cfg.Carousel.Evict,
	}

	p := tea.NewProgram(tui.New(ctx, tui.Deps{
		Fetcher:   fetcher,
		Favorites: e.favorites,
		Log:       e.log,
	}, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
