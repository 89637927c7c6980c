// Package bundle builds a single PDF of all AIP documents for an airport.
package bundle

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/jackzampolin/aip/internal/menu"
)

// Fetcher retrieves site resources by path relative to the site root.
type Fetcher interface {
	FetchText(ctx context.Context, path string) (string, error)
	FetchBytes(ctx context.Context, path string) ([]byte, error)
}

// Merger accumulates documents and writes them out as one PDF.
type Merger interface {
	Append(name string, data []byte) error
	WriteFile(path string) error
	PageCount() int
}

// Config configures a Builder.
type Config struct {
	Fetcher         Fetcher
	Markers         menu.Markers
	MenuPath        string // Path of the menu page
	DocumentDir     string // Directory the menu's links are relative to
	AerodromesTitle string // Exact title of the section listing airports
	Logger          *slog.Logger
}

// Builder resolves an airport's documents and merges them.
type Builder struct {
	fetcher         Fetcher
	parser          *menu.Parser
	menuPath        string
	documentDir     *url.URL
	aerodromesTitle string
	logger          *slog.Logger
}

// Result describes a completed build.
type Result struct {
	Airport   string        `json:"airport" yaml:"airport"`
	Section   string        `json:"section" yaml:"section"`
	Output    string        `json:"output" yaml:"output"`
	Documents int           `json:"documents" yaml:"documents"`
	Pages     int           `json:"pages" yaml:"pages"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
}

// Document is a link resolved to a site path.
type Document struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`   // As written in the menu
	Path  string `json:"path" yaml:"path"` // Site path the document is fetched from
}

// New creates a builder.
func New(cfg Config) (*Builder, error) {
	if cfg.Fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	if cfg.MenuPath == "" {
		return nil, fmt.Errorf("menu path is required")
	}
	if cfg.AerodromesTitle == "" {
		return nil, fmt.Errorf("aerodromes title is required")
	}
	docDir, err := url.Parse(cfg.DocumentDir)
	if err != nil {
		return nil, fmt.Errorf("invalid document dir %q: %w", cfg.DocumentDir, err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Builder{
		fetcher:         cfg.Fetcher,
		parser:          menu.NewParser(cfg.Markers, logger),
		menuPath:        cfg.MenuPath,
		documentDir:     docDir,
		aerodromesTitle: cfg.AerodromesTitle,
		logger:          logger,
	}, nil
}

// Menu fetches and parses the menu page.
func (b *Builder) Menu(ctx context.Context) ([]*menu.Section, error) {
	text, err := b.fetcher.FetchText(ctx, b.menuPath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch menu: %w", err)
	}

	sections, _, err := b.parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse menu: %w", err)
	}
	return sections, nil
}

// Documents returns the airport's section and its documents in menu order.
func (b *Builder) Documents(ctx context.Context, airport string) (*menu.Section, []Document, error) {
	sections, err := b.Menu(ctx)
	if err != nil {
		return nil, nil, err
	}

	section, err := menu.FindAirport(sections, b.aerodromesTitle, airport)
	if err != nil {
		return nil, nil, err
	}
	b.logger.Info("found airport", "airport", airport, "section", section.String(), "links", len(section.Links))

	docs := make([]Document, 0, len(section.Links))
	for _, link := range section.Links {
		p, err := b.resolve(link.URL)
		if err != nil {
			return nil, nil, err
		}
		docs = append(docs, Document{Title: link.Title, URL: link.URL, Path: p})
	}
	return section, docs, nil
}

// Build downloads every document for the airport, one at a time in menu
// order, appends them to merger and writes the result to output. The first
// failed download aborts the build and nothing is written.
func (b *Builder) Build(ctx context.Context, airport, output string, merger Merger) (*Result, error) {
	start := time.Now()

	section, docs, err := b.Documents(ctx, airport)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("airport %q (%s) has no documents", airport, section.Title)
	}

	for i, doc := range docs {
		b.logger.Info("downloading", "document", doc.Title, "n", i+1, "of", len(docs))
		data, err := b.fetcher.FetchBytes(ctx, doc.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to download %q: %w", doc.Title, err)
		}
		if err := merger.Append(doc.URL, data); err != nil {
			return nil, fmt.Errorf("failed to add %q: %w", doc.Title, err)
		}
	}

	if err := merger.WriteFile(output); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", output, err)
	}

	return &Result{
		Airport:   airport,
		Section:   section.Title,
		Output:    output,
		Documents: len(docs),
		Pages:     merger.PageCount(),
		Duration:  time.Since(start),
	}, nil
}

// resolve turns a menu link into a site path using reference resolution
// against the document directory, e.g. "../aip/ad2.pdf" relative to
// "/common/AirInter/validaip/html/" is "/common/AirInter/validaip/aip/ad2.pdf".
func (b *Builder) resolve(link string) (string, error) {
	ref, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("invalid document link %q: %w", link, err)
	}
	if ref.IsAbs() || ref.Host != "" {
		return "", fmt.Errorf("document link %q must be relative", link)
	}
	return b.documentDir.ResolveReference(ref).String(), nil
}
