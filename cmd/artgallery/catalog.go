package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/artgallery/internal/catalog"
	"github.com/jask/artgallery/internal/config"
	"github.com/jask/artgallery/internal/gallery"
)

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Fetch the catalog once and list it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			client := catalog.NewClient(cfg.API.Endpoint, cfg.API.Timeout)
			records, err := client.Fetch(cmd.Context())
			if err != nil {
				return err
			}
			c, dropped := gallery.NewCatalog(records)

			out := cmd.OutOrStdout()
			for i, rec := range c.Items() {
				fmt.Fprintf(out, "%4d  #%s  %s by %s\n", i+1, rec.ID, rec.Title(), rec.ArtistName())
			}
			fmt.Fprintf(out, "%d artworks", c.Len())
			if dropped > 0 {
				fmt.Fprintf(out, " (%d skipped without a unique id)", dropped)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}
