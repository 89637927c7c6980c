// Package menu parses the AIP navigation menu and looks up airport documents in it.
//
// The menu is a flattened tree: ItemBegin/ItemEnd pairs open and close
// sections, ItemLink lines attach documents to the innermost open section.
package menu

// Link is a document attached to a section.
type Link struct {
	URL   string `json:"url" yaml:"url"`     // Relative to the menu page
	Title string `json:"title" yaml:"title"` // Display title, e.g. "GEN 0.1 Foreword"
}

// Section is a node of the navigation tree.
type Section struct {
	Number   string     `json:"number" yaml:"number"` // Opaque, not guaranteed numeric or unique
	URL      string     `json:"url" yaml:"url"`
	Title    string     `json:"title" yaml:"title"`
	Children []*Section `json:"children,omitempty" yaml:"children,omitempty"`
	Links    []Link     `json:"links,omitempty" yaml:"links,omitempty"`
}

// String returns the number and title, e.g. "7100 AD 2. Aerodromes".
func (s *Section) String() string {
	return s.Number + " " + s.Title
}

// Walk visits sections depth-first, each parent before its children and
// siblings in document order. Traversal stops when fn returns false.
// Walk reports whether the traversal ran to completion.
func Walk(sections []*Section, fn func(*Section) bool) bool {
	for _, s := range sections {
		if !fn(s) {
			return false
		}
		if !Walk(s.Children, fn) {
			return false
		}
	}
	return true
}

// Count returns the total number of sections in the forest, descendants included.
func Count(sections []*Section) int {
	n := 0
	Walk(sections, func(*Section) bool {
		n++
		return true
	})
	return n
}
