package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BUILDWISE_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr, got %q", cfg.Server.Addr)
	}
	if cfg.Catalog.PageSize != 10 || cfg.Catalog.DebounceMs != 300 {
		t.Errorf("unexpected catalog defaults: %+v", cfg.Catalog)
	}
	if cfg.UI.CurrencySymbol != "$" {
		t.Errorf("expected default currency symbol, got %q", cfg.UI.CurrencySymbol)
	}
	if cfg.Database.Path == "" {
		t.Error("database path default must not be empty")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[server]
addr = ":9999"

[catalog]
page_size = 25
source_url = "http://catalog.internal"

[ui]
currency_symbol = "COP "
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BUILDWISE_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("expected file addr, got %q", cfg.Server.Addr)
	}
	if cfg.Catalog.PageSize != 25 {
		t.Errorf("expected page size 25, got %d", cfg.Catalog.PageSize)
	}
	if cfg.Catalog.SourceURL != "http://catalog.internal" {
		t.Errorf("expected source url, got %q", cfg.Catalog.SourceURL)
	}
	if cfg.UI.CurrencySymbol != "COP " {
		t.Errorf("expected file symbol, got %q", cfg.UI.CurrencySymbol)
	}
	// Untouched keys keep their defaults.
	if cfg.Catalog.DebounceMs != 300 {
		t.Errorf("expected default debounce, got %d", cfg.Catalog.DebounceMs)
	}
}
