// Package types provides type definitions for structured data used throughout the resume-match system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Resume is a résumé document. The static résumé served by GET /api/resume uses
// every field; match requests only need Skills and Experience[].Bullets.
type Resume struct {
	Contact    Contact      `json:"contact"`
	Summary    string       `json:"summary,omitempty"`
	Skills     []string     `json:"skills"`
	Experience []Experience `json:"experience" validate:"max=200,dive"`
	Education  []Education  `json:"education,omitempty"`
	Projects   []Project    `json:"projects,omitempty"`
}

// Contact holds the résumé header
type Contact struct {
	FullName string `json:"fullName,omitempty"`
	Role     string `json:"role,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Website  string `json:"website,omitempty"`
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// Experience is a single position with its achievement bullets
type Experience struct {
	ID       string   `json:"id,omitempty"`
	Title    string   `json:"title,omitempty"`
	Company  string   `json:"company,omitempty"`
	Location string   `json:"location,omitempty"`
	Start    string   `json:"start,omitempty"`
	End      string   `json:"end,omitempty"`
	Bullets  []string `json:"bullets" validate:"max=100"`
}

// Education is a single education entry
type Education struct {
	ID         string   `json:"id,omitempty"`
	School     string   `json:"school,omitempty"`
	Credential string   `json:"credential,omitempty"`
	Dates      string   `json:"dates,omitempty"`
	Details    []string `json:"details,omitempty"`
}

// Project is a single portfolio project
type Project struct {
	ID      string   `json:"id,omitempty"`
	Name    string   `json:"name,omitempty"`
	Link    string   `json:"link,omitempty"`
	Tech    string   `json:"tech,omitempty"`
	Bullets []string `json:"bullets,omitempty"`
}

// Bullets flattens the experience bullets in document order.
func (r *Resume) Bullets() []string {
	var bullets []string
	for _, exp := range r.Experience {
		bullets = append(bullets, exp.Bullets...)
	}
	return bullets
}
