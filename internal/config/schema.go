package config

import (
	"time"

	"github.com/jackzampolin/aip/internal/caiga"
	"github.com/jackzampolin/aip/internal/menu"
)

// Config holds aip configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Source    SourceCfg    `mapstructure:"source" yaml:"source" json:"source"`
	Menu      MenuCfg      `mapstructure:"menu" yaml:"menu" json:"menu"`
	Transport TransportCfg `mapstructure:"transport" yaml:"transport" json:"transport"`
}

// SourceCfg locates the AIP menu and its documents on the site.
type SourceCfg struct {
	BaseURL     string `mapstructure:"base_url" yaml:"base_url" json:"base_url"`
	MenuPath    string `mapstructure:"menu_path" yaml:"menu_path" json:"menu_path"`          // Menu page, relative to base_url
	DocumentDir string `mapstructure:"document_dir" yaml:"document_dir" json:"document_dir"` // Directory menu links are relative to
}

// MenuCfg describes the menu format.
type MenuCfg struct {
	AerodromesTitle string `mapstructure:"aerodromes_title" yaml:"aerodromes_title" json:"aerodromes_title"` // Exact title of the section listing airports
	OpenMarker      string `mapstructure:"open_marker" yaml:"open_marker" json:"open_marker"`
	CloseMarker     string `mapstructure:"close_marker" yaml:"close_marker" json:"close_marker"`
	SectionBegin    string `mapstructure:"section_begin" yaml:"section_begin" json:"section_begin"`
	SectionEnd      string `mapstructure:"section_end" yaml:"section_end" json:"section_end"`
	Link            string `mapstructure:"link" yaml:"link" json:"link"`
}

// TransportCfg configures HTTP requests.
type TransportCfg struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds" json:"timeout_seconds"`
	MaxAttempts    int    `mapstructure:"max_attempts" yaml:"max_attempts" json:"max_attempts"` // 1 disables retries
	RetryDelayMS   int    `mapstructure:"retry_delay_ms" yaml:"retry_delay_ms" json:"retry_delay_ms"`
	UserAgent      string `mapstructure:"user_agent" yaml:"user_agent" json:"user_agent"` // Supports ${ENV_VAR}; empty uses aip/<version>
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	markers := menu.DefaultMarkers()
	return &Config{
		Source: SourceCfg{
			BaseURL:     caiga.DefaultBaseURL,
			MenuPath:    "/common/AirInter/validaip/html/menurus.htm",
			DocumentDir: "/common/AirInter/validaip/html/",
		},
		Menu: MenuCfg{
			AerodromesTitle: "AD 2. Аэродромы",
			OpenMarker:      markers.OpenTab,
			CloseMarker:     markers.CloseTab,
			SectionBegin:    markers.SectionBegin,
			SectionEnd:      markers.SectionEnd,
			Link:            markers.Link,
		},
		Transport: TransportCfg{
			TimeoutSeconds: 60,
			MaxAttempts:    1,
			RetryDelayMS:   1000,
		},
	}
}

// Markers converts the menu settings to parser markers.
func (c *Config) Markers() menu.Markers {
	return menu.Markers{
		OpenTab:      c.Menu.OpenMarker,
		CloseTab:     c.Menu.CloseMarker,
		SectionBegin: c.Menu.SectionBegin,
		SectionEnd:   c.Menu.SectionEnd,
		Link:         c.Menu.Link,
	}
}

// ToClientConfig converts the source and transport settings to a client config.
// It resolves ${ENV_VAR} references in the user agent.
func (c *Config) ToClientConfig() caiga.Config {
	return caiga.Config{
		BaseURL:     c.Source.BaseURL,
		Timeout:     time.Duration(c.Transport.TimeoutSeconds) * time.Second,
		MaxAttempts: uint(c.Transport.MaxAttempts),
		RetryDelay:  time.Duration(c.Transport.RetryDelayMS) * time.Millisecond,
		UserAgent:   ResolveEnvVars(c.Transport.UserAgent),
	}
}
