package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"DATABASE_URL":      "postgres://localhost/invoices",
		"REDIS_URL":         "redis://localhost:6379",
		"INVOICE_MAX_LINES": "",
		"INVOICE_PAGE_SIZE": "",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.InvoiceMaxLines != 1000 {
		t.Fatalf("expected default force-load ceiling 1000, got %d", cfg.InvoiceMaxLines)
	}
	if cfg.InvoiceMaxAttempts != 5 {
		t.Fatalf("expected default attempt ceiling 5, got %d", cfg.InvoiceMaxAttempts)
	}
	if cfg.InvoiceLoadDelay != 500*time.Millisecond {
		t.Fatalf("expected default load delay 500ms, got %s", cfg.InvoiceLoadDelay)
	}
	if cfg.HTTPAddr() != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.HTTPAddr())
	}
}

func TestLoadZeroCeilingFallsBack(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"DATABASE_URL":      "postgres://localhost/invoices",
		"REDIS_URL":         "redis://localhost:6379",
		"INVOICE_MAX_LINES": "0",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.InvoiceMaxLines != 1000 {
		t.Fatalf("expected zero ceiling to fall back to 1000, got %d", cfg.InvoiceMaxLines)
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	if _, err := LoadForTests(map[string]string{
		"DATABASE_URL": "",
		"REDIS_URL":    "redis://localhost:6379",
	}); err == nil {
		t.Fatal("expected error when DATABASE_URL is missing")
	}
}
