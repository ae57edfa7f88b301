package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Server.Port != "8080" || c.Database.Driver != "sqlite" || c.Locale.Default != "en" {
		t.Fatalf("defaults = %+v", c)
	}
	if c.Autosave.Debounce != time.Second {
		t.Fatalf("debounce = %v", c.Autosave.Debounce)
	}
	if got := c.Capacity(); got.First != 8 || got.Continuation != 15 {
		t.Fatalf("capacity = %+v", got)
	}
}

func TestLoadFileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := []byte("server:\n  port: \"9000\"\nlocale:\n  default: ms\nlayout:\n  first_page_capacity: 5\n")
	if err := os.WriteFile(path, yaml, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SMARTINVOICE_AUTOSAVE_DEBOUNCE", "250ms")
	t.Setenv("API_KEY", "secret")

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Server.Port != "9000" || c.Locale.Default != "ms" || c.Layout.FirstPageCapacity != 5 {
		t.Fatalf("file values not applied: %+v", c)
	}
	if c.Autosave.Debounce != 250*time.Millisecond {
		t.Fatalf("debounce = %v", c.Autosave.Debounce)
	}
	if c.Assistant.APIKey != "secret" {
		t.Fatalf("api key = %q", c.Assistant.APIKey)
	}
}

func TestLoadBarePort(t *testing.T) {
	t.Setenv("PORT", "3001")
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if c.Server.Port != "3001" {
		t.Fatalf("port = %q", c.Server.Port)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("SMARTINVOICE_LOCALE_DEFAULT", "fr")
	if _, err := Load(""); err == nil {
		t.Fatal("expected unsupported locale error")
	}

	t.Setenv("SMARTINVOICE_LOCALE_DEFAULT", "en")
	t.Setenv("SMARTINVOICE_LAYOUT_PAGE_CAPACITY", "0")
	if _, err := Load(""); err == nil {
		t.Fatal("expected invalid capacity error")
	}
}
