package models

// Project is the root of a writing workspace; every other entity belongs to
// exactly one project.
type Project struct {
	Meta
	Title    string `json:"title"`
	Synopsis string `json:"synopsis,omitempty"`
}

// GetProjectID returns the project's own id: a project is its own scope.
func (p *Project) GetProjectID() string { return p.ID }

// Chapter is a manuscript section.
type Chapter struct {
	Doc
	Title string `json:"title"`
	Body  string `json:"body,omitempty"`
	Order int    `json:"order"`
}

// Character is a cast member of a project.
type Character struct {
	Doc
	Name      string `json:"name"`
	Role      string `json:"role,omitempty"`
	Biography string `json:"biography,omitempty"`
}

// Location is a place referenced by the manuscript.
type Location struct {
	Doc
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Organization is a faction, guild, company or similar group.
type Organization struct {
	Doc
	Name    string `json:"name"`
	Purpose string `json:"purpose,omitempty"`
}

// Note is free-form research or planning text.
type Note struct {
	Doc
	Title string `json:"title"`
	Text  string `json:"text,omitempty"`
}

var (
	_ Entity = (*Project)(nil)
	_ Entity = (*Chapter)(nil)
	_ Entity = (*Character)(nil)
	_ Entity = (*Location)(nil)
	_ Entity = (*Organization)(nil)
	_ Entity = (*Note)(nil)
)
