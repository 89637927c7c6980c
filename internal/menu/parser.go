package menu

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// Markers names the tab markers and directives of the menu format.
type Markers struct {
	OpenTab      string // Line prefix that starts the menu block
	CloseTab     string // Line prefix that ends it; nothing after it is read
	SectionBegin string // Directive opening a section: Name("number", "url", "title");
	SectionEnd   string // Directive closing the innermost section
	Link         string // Directive attaching a document: Name("url", "title");
}

// DefaultMarkers returns the markers used by the caiga.ru menu pages.
func DefaultMarkers() Markers {
	return Markers{
		OpenTab:      "OpenTab();",
		CloseTab:     "ClosTab();",
		SectionBegin: "ItemBegin",
		SectionEnd:   "ItemEnd",
		Link:         "ItemLink",
	}
}

// Stats summarizes a parse.
type Stats struct {
	Sections      int // ItemBegin directives accepted
	Links         int // ItemLink directives accepted
	UnmatchedEnds int // ItemEnd directives seen with no open section
	MaxDepth      int
}

type parseState int

const (
	stateScanning parseState = iota
	stateActive
	stateDone
)

// Parser turns menu text into a forest of sections.
// A Parser is safe for concurrent use; Parse keeps all state on its own stack.
type Parser struct {
	markers Markers
	logger  *slog.Logger

	beginRe *regexp.Regexp
	linkRe  *regexp.Regexp
}

// NewParser creates a parser for the given markers.
// Empty marker fields fall back to DefaultMarkers.
func NewParser(markers Markers, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}

	defaults := DefaultMarkers()
	if markers.OpenTab == "" {
		markers.OpenTab = defaults.OpenTab
	}
	if markers.CloseTab == "" {
		markers.CloseTab = defaults.CloseTab
	}
	if markers.SectionBegin == "" {
		markers.SectionBegin = defaults.SectionBegin
	}
	if markers.SectionEnd == "" {
		markers.SectionEnd = defaults.SectionEnd
	}
	if markers.Link == "" {
		markers.Link = defaults.Link
	}

	// ItemBegin("7000", "../aip/aip-tit.pdf","AIP. Title");
	beginRe := regexp.MustCompile(
		`^` + regexp.QuoteMeta(markers.SectionBegin) + `\("(.*)",\s?"(.*)",\s?"(.*)"\);`)
	// ItemLink("../aip/gen/gen0/gen0.1.pdf","GEN 0.1 Foreword");
	linkRe := regexp.MustCompile(
		`^` + regexp.QuoteMeta(markers.Link) + `\("(.*)",\s?"(.*)"\);`)

	return &Parser{
		markers: markers,
		logger:  logger,
		beginRe: beginRe,
		linkRe:  linkRe,
	}
}

var lineBreak = regexp.MustCompile(`\r\n|\n|\r`)

// Parse builds the section forest from menu text using the default markers.
func Parse(text string) ([]*Section, error) {
	sections, _, err := NewParser(DefaultMarkers(), nil).Parse(text)
	return sections, err
}

// Parse builds the section forest from menu text.
// Lines before the open marker are ignored; parsing stops at the close marker.
func (p *Parser) Parse(text string) ([]*Section, Stats, error) {
	var (
		root  []*Section
		stack []*Section
		stats Stats
		state = stateScanning
	)

	lines := lineBreak.Split(text, -1)
	for i, line := range lines {
		if state == stateDone {
			break
		}
		lineNum := i + 1

		if strings.HasPrefix(line, p.markers.OpenTab) {
			state = stateActive
			continue
		}
		if state != stateActive {
			continue
		}
		if strings.HasPrefix(line, p.markers.CloseTab) {
			state = stateDone
			continue
		}

		switch {
		case strings.HasPrefix(line, p.markers.SectionBegin):
			m := p.beginRe.FindStringSubmatch(line)
			if m == nil {
				return nil, Stats{}, &ParseError{LineNum: lineNum, Line: line, Reason: "malformed " + p.markers.SectionBegin}
			}
			section := &Section{Number: m[1], URL: m[2], Title: m[3]}
			if len(stack) == 0 {
				root = append(root, section)
			} else {
				top := stack[len(stack)-1]
				top.Children = append(top.Children, section)
			}
			stack = append(stack, section)
			stats.Sections++
			if len(stack) > stats.MaxDepth {
				stats.MaxDepth = len(stack)
			}

		case strings.HasPrefix(line, p.markers.SectionEnd):
			if len(stack) == 0 {
				stats.UnmatchedEnds++
				p.logger.Warn("section end without open section", "line", lineNum, "text", line)
				continue
			}
			stack = stack[:len(stack)-1]

		case strings.HasPrefix(line, p.markers.Link):
			m := p.linkRe.FindStringSubmatch(line)
			if m == nil {
				return nil, Stats{}, &ParseError{LineNum: lineNum, Line: line, Reason: "malformed " + p.markers.Link}
			}
			if len(stack) == 0 {
				return nil, Stats{}, &ParseError{
					LineNum: lineNum,
					Line:    line,
					Reason:  fmt.Sprintf("%s outside of any %s", p.markers.Link, p.markers.SectionBegin),
				}
			}
			top := stack[len(stack)-1]
			top.Links = append(top.Links, Link{URL: m[1], Title: m[2]})
			stats.Links++
		}
	}

	p.logger.Info("menu parsed",
		"sections", stats.Sections,
		"links", stats.Links,
		"max_depth", stats.MaxDepth,
		"unmatched_ends", stats.UnmatchedEnds,
	)
	return root, stats, nil
}
