// Package nav tracks which portfolio section is active and keeps it in step
// with the reader's scroll position.
package nav

// Section is a named region of the page with a matching navigation tab.
type Section struct {
	ID    string
	Label string
}

// Sections is the page's fixed section list in declaration order.
var Sections = []Section{
	{ID: "about", Label: "About"},
	{ID: "skills", Label: "Skills"},
	{ID: "projects", Label: "Projects"},
	{ID: "experience", Label: "Experience"},
	{ID: "contact", Label: "Contact"},
}

// Lookup returns the section with the given id.
func Lookup(id string) (Section, bool) {
	for _, s := range Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}
