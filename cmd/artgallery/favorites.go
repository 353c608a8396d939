package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jask/artgallery/internal/config"
	"github.com/jask/artgallery/internal/gallery"
)

func newFavoritesCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Print the saved favorites list",
		Example: `  artgallery favorites
  artgallery favorites --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			e, err := openEnv(cfg)
			if err != nil {
				return err
			}
			defer e.Close()

			fav := e.favorites.Load(cmd.Context())
			return writeFavorites(cmd.OutOrStdout(), fav, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")

	cmd.AddCommand(newFavoritesResetCmd())
	return cmd
}

func newFavoritesResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Empty every favorites slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			e, err := openEnv(cfg)
			if err != nil {
				return err
			}
			defer e.Close()

			if _, err := e.favorites.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %d slots\n", cfg.Favorites.Size)
			return nil
		},
	}
}

func writeFavorites(w io.Writer, fav gallery.Favorites, format string) error {
	switch format {
	case "text":
		for i, rec := range fav {
			if rec == nil {
				fmt.Fprintf(w, "%2d  -\n", i+1)
				continue
			}
			fmt.Fprintf(w, "%2d  #%s  %s by %s\n", i+1, rec.ID, rec.Title(), rec.ArtistName())
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode([]*gallery.Artwork(fav))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode([]*gallery.Artwork(fav)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
