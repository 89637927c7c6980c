package menu

import "strings"

// FindSectionByTitle returns the first section, in traversal order, whose
// title equals title exactly.
func FindSectionByTitle(sections []*Section, title string) (*Section, error) {
	var found *Section
	Walk(sections, func(s *Section) bool {
		if s.Title == title {
			found = s
			return false
		}
		return true
	})
	if found == nil {
		return nil, &NotFoundError{What: "section", Query: title}
	}
	return found, nil
}

// FindAirport locates the aerodromes section by its exact title and returns
// the first section inside it (itself included) whose title starts with
// icaoPrefix. Later matches are ignored, so a prefix shared by two airports
// resolves to whichever comes first in the menu.
func FindAirport(sections []*Section, aerodromesTitle, icaoPrefix string) (*Section, error) {
	aerodromes, err := FindSectionByTitle(sections, aerodromesTitle)
	if err != nil {
		return nil, err
	}

	airport := findByTitlePrefix(aerodromes, icaoPrefix)
	if airport == nil {
		return nil, &NotFoundError{What: "airport", Query: icaoPrefix}
	}
	return airport, nil
}

// FindLinksForAirport returns the links of the section FindAirport selects.
func FindLinksForAirport(sections []*Section, aerodromesTitle, icaoPrefix string) ([]Link, error) {
	airport, err := FindAirport(sections, aerodromesTitle, icaoPrefix)
	if err != nil {
		return nil, err
	}
	return airport.Links, nil
}

func findByTitlePrefix(root *Section, prefix string) *Section {
	var found *Section
	Walk([]*Section{root}, func(s *Section) bool {
		if strings.HasPrefix(s.Title, prefix) {
			found = s
			return false
		}
		return true
	})
	return found
}
