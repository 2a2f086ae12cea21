package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/buildwise/buildwise/internal/config"
	"github.com/buildwise/buildwise/internal/database"
	"github.com/buildwise/buildwise/internal/database/repository"
	"github.com/buildwise/buildwise/internal/server"
	"github.com/buildwise/buildwise/internal/service"
)

var (
	cfg      config.Config
	logLevel string
)

func main() {
	root := &cobra.Command{
		Use:   "buildwise",
		Short: "Construction-budget catalog tooling",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := log.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("bad log level %q: %w", logLevel, err)
			}
			log.SetLevel(lvl)

			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")

	root.AddCommand(serveCmd(), importCmd(), searchCmd())

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func openCatalogDB() (*repository.ItemRepo, func(), error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(cfg.Database.Path, migrationsPath()); err != nil {
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	return repository.NewItemRepo(db), func() { _ = db.Close() }, nil
}

func migrationsPath() string {
	if p := os.Getenv("BUILDWISE_MIGRATIONS"); p != "" {
		return p
	}
	return "internal/database/migrations"
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog items API",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeDB, err := openCatalogDB()
			if err != nil {
				return err
			}
			defer closeDB()

			srv := server.New(repo)
			log.WithField("addr", cfg.Server.Addr).Info("serving catalog API")
			return http.ListenAndServe(cfg.Server.Addr, srv)
		},
	}
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import a catalog price list (code, description, unit, unit_price, category)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeDB, err := openCatalogDB()
			if err != nil {
				return err
			}
			defer closeDB()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open price list: %w", err)
			}
			defer f.Close()

			svc := &service.IngestService{Items: repo}
			res, err := svc.ImportCSV(cmd.Context(), f)
			if err != nil {
				return err
			}
			for _, e := range res.Errors {
				log.Warn(e)
			}
			log.WithFields(log.Fields{
				"imported": res.Imported,
				"skipped":  res.Skipped,
				"errors":   len(res.Errors),
			}).Info("import finished")
			return nil
		},
	}
}
