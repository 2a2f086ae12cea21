package main

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/buildwise/buildwise/internal/catalog"
	"github.com/buildwise/buildwise/internal/catalog/source"
	"github.com/buildwise/buildwise/internal/format"
)

// searchCmd queries the catalog the way the browser does: against the
// remote items endpoint when catalog.source_url is configured, otherwise
// against the local database.
func searchCmd() *cobra.Command {
	var category string
	var page, limit int

	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Search the item catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := ""
			if len(args) == 1 {
				term = args[0]
			}
			if limit < 1 {
				limit = cfg.Catalog.PageSize
			}

			src, local, cleanup, err := catalogSource(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := src.Fetch(cmd.Context(), source.Request{
				Page:     page,
				Limit:    limit,
				Search:   term,
				Category: category,
			})
			if err != nil {
				return err
			}

			if res.TotalItems == 0 {
				fmt.Println("no items found")
				if hint := catalog.Suggest(local, term); hint != "" {
					fmt.Printf("did you mean %s?\n", hint)
				}
				return nil
			}

			for _, it := range res.Items {
				fmt.Printf("%-12s %-50s %-6s %12s\n",
					it.Code, it.Description, it.Unit, format.Currency(cfg.UI.CurrencySymbol, it.UnitPrice))
			}
			fmt.Printf("page %d/%d, %d items\n", res.CurrentPage, res.TotalPages, res.TotalItems)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", catalog.AllCategories, "category filter")
	cmd.Flags().IntVar(&page, "page", 1, "1-based page")
	cmd.Flags().IntVar(&limit, "limit", 0, "page size (defaults to catalog.page_size)")
	return cmd
}

// catalogSource picks the remote endpoint when configured, else the local
// database. The returned item list backs "did you mean" suggestions and is
// empty in remote mode.
func catalogSource(ctx context.Context) (source.Source, []catalog.Item, func(), error) {
	if cfg.Catalog.SourceURL != "" {
		log.WithField("url", cfg.Catalog.SourceURL).Debug("using remote catalog")
		return source.NewHTTPSource(cfg.Catalog.SourceURL), nil, func() {}, nil
	}

	repo, closeDB, err := openCatalogDB()
	if err != nil {
		return nil, nil, nil, err
	}
	items, err := repo.List(ctx)
	if err != nil {
		closeDB()
		return nil, nil, nil, fmt.Errorf("read catalog: %w", err)
	}
	return source.NewLocalSource(items), items, closeDB, nil
}
