package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Source.BaseURL != "http://www.caiga.ru" {
		t.Errorf("unexpected base url %s", cfg.Source.BaseURL)
	}
	if cfg.Menu.AerodromesTitle != "AD 2. Аэродромы" {
		t.Errorf("unexpected aerodromes title %s", cfg.Menu.AerodromesTitle)
	}
	if cfg.Transport.MaxAttempts != 1 {
		t.Errorf("retries must be off by default, got %d attempts", cfg.Transport.MaxAttempts)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Run("resolves environment variable", func(t *testing.T) {
		t.Setenv("TEST_AIP_AGENT", "agent/1.0")

		result := ResolveEnvVars("${TEST_AIP_AGENT}")
		if result != "agent/1.0" {
			t.Errorf("expected agent/1.0, got %s", result)
		}
	})

	t.Run("returns empty for missing env var", func(t *testing.T) {
		result := ResolveEnvVars("${DEFINITELY_NOT_SET_12345}")
		if result != "" {
			t.Errorf("expected empty string, got %s", result)
		}
	})

	t.Run("leaves literal values unchanged", func(t *testing.T) {
		result := ResolveEnvVars("literal-value")
		if result != "literal-value" {
			t.Errorf("expected literal-value, got %s", result)
		}
	})
}

func TestNewManager(t *testing.T) {
	t.Run("defaults without config file", func(t *testing.T) {
		mgr, err := NewManager("", t.TempDir())
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}
		if mgr.FileUsed() != "" {
			t.Errorf("expected no config file, got %s", mgr.FileUsed())
		}
		if mgr.Get().Source.MenuPath != DefaultConfig().Source.MenuPath {
			t.Errorf("unexpected menu path %s", mgr.Get().Source.MenuPath)
		}
	})

	t.Run("partial file keeps other defaults", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		configContent := `
source:
  base_url: "http://mirror.example.com"
menu:
  aerodromes_title: "AD 2. Aerodromes"
`
		if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		mgr, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}

		cfg := mgr.Get()
		if cfg.Source.BaseURL != "http://mirror.example.com" {
			t.Errorf("expected mirror url, got %s", cfg.Source.BaseURL)
		}
		if cfg.Menu.AerodromesTitle != "AD 2. Aerodromes" {
			t.Errorf("expected overridden title, got %s", cfg.Menu.AerodromesTitle)
		}
		if cfg.Source.DocumentDir != DefaultConfig().Source.DocumentDir {
			t.Errorf("default lost for document_dir: %s", cfg.Source.DocumentDir)
		}
		if cfg.Menu.OpenMarker != "OpenTab();" {
			t.Errorf("default lost for open_marker: %s", cfg.Menu.OpenMarker)
		}
	})

	t.Run("finds config in search dir", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("transport:\n  max_attempts: 4\n"), 0644); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		mgr, err := NewManager("", dir)
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}
		if mgr.Get().Transport.MaxAttempts != 4 {
			t.Errorf("expected 4 attempts, got %d", mgr.Get().Transport.MaxAttempts)
		}
		if !strings.HasPrefix(mgr.FileUsed(), dir) {
			t.Errorf("unexpected config file %s", mgr.FileUsed())
		}
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("AIP_TRANSPORT_TIMEOUT_SECONDS", "5")
		t.Setenv("AIP_MENU_AERODROMES_TITLE", "AD 2. Aerodromes")

		mgr, err := NewManager("", t.TempDir())
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}
		cfg := mgr.Get()
		if cfg.Transport.TimeoutSeconds != 5 {
			t.Errorf("expected timeout 5, got %d", cfg.Transport.TimeoutSeconds)
		}
		if cfg.Menu.AerodromesTitle != "AD 2. Aerodromes" {
			t.Errorf("expected env title, got %s", cfg.Menu.AerodromesTitle)
		}
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(configFile, []byte("transport:\n  max_attempts: 0\n"), 0644); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		if _, err := NewManager(configFile); err == nil {
			t.Error("expected validation error for max_attempts 0")
		}
	})

	t.Run("rejects zero retry delay", func(t *testing.T) {
		t.Setenv("AIP_TRANSPORT_RETRY_DELAY_MS", "0")

		if _, err := NewManager("", t.TempDir()); err == nil {
			t.Error("expected validation error for retry_delay_ms 0")
		}
	})

	t.Run("rejects base url without scheme", func(t *testing.T) {
		t.Setenv("AIP_SOURCE_BASE_URL", "www.caiga.ru")

		if _, err := NewManager("", t.TempDir()); err == nil {
			t.Error("expected validation error for base url")
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(configFile, []byte("source: [unclosed\n"), 0644); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		if _, err := NewManager(configFile); err == nil {
			t.Error("expected error for malformed yaml")
		}
	})
}

func TestConfig_ToClientConfig(t *testing.T) {
	t.Setenv("TEST_AIP_UA", "custom-agent")

	cfg := DefaultConfig()
	cfg.Transport.UserAgent = "${TEST_AIP_UA}"
	cfg.Transport.MaxAttempts = 3
	cfg.Transport.RetryDelayMS = 250

	cc := cfg.ToClientConfig()
	if cc.UserAgent != "custom-agent" {
		t.Errorf("expected resolved user agent, got %s", cc.UserAgent)
	}
	if cc.MaxAttempts != 3 {
		t.Errorf("expected 3 attempts, got %d", cc.MaxAttempts)
	}
	if cc.Timeout != 60*time.Second {
		t.Errorf("expected 60s timeout, got %s", cc.Timeout)
	}
	if cc.RetryDelay != 250*time.Millisecond {
		t.Errorf("expected 250ms delay, got %s", cc.RetryDelay)
	}
}

func TestConfig_Markers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Menu.CloseMarker = "End();"

	m := cfg.Markers()
	if m.OpenTab != "OpenTab();" || m.CloseTab != "End();" || m.Link != "ItemLink" {
		t.Errorf("unexpected markers: %+v", m)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	mgr, err := NewManager(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if mgr.Get().Menu.AerodromesTitle != DefaultConfig().Menu.AerodromesTitle {
		t.Errorf("round trip changed aerodromes title: %s", mgr.Get().Menu.AerodromesTitle)
	}

	if err := WriteDefault(path); err == nil {
		t.Error("expected error when config already exists")
	}
}
