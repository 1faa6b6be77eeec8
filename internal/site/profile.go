// Package site holds the portfolio data rendered around the blog: hero,
// about, skills, experience, services, projects, contact and footer.
package site

import "strings"

// ProjectPathPrefix is where project detail pages are served.
const ProjectPathPrefix = "/projects/"

// Profile is the content of the portfolio landing page.
type Profile struct {
	Hero       Hero         `yaml:"hero"       json:"hero"`
	About      About        `yaml:"about"      json:"about"`
	Skills     []SkillGroup `yaml:"skills"     json:"skills"`
	Experience []Experience `yaml:"experience" json:"experience"`
	Services   []Service    `yaml:"services"   json:"services"`
	Projects   []Project    `yaml:"projects"   json:"projects"`
	Contact    Contact      `yaml:"contact"    json:"contact"`
	Footer     Footer       `yaml:"footer"     json:"footer"`
}

// Project returns the project with the given slug.
func (p Profile) Project(slug string) (Project, bool) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return Project{}, false
	}
	for _, project := range p.Projects {
		if project.Slug == slug {
			return project, true
		}
	}
	return Project{}, false
}

// Hero is the banner at the top of the landing page.
type Hero struct {
	Name    string `yaml:"name"    json:"name"`
	Tagline string `yaml:"tagline" json:"tagline"`
	CTA     string `yaml:"cta"     json:"cta,omitempty"`
}

// About is the free-form introduction, one entry per paragraph.
type About struct {
	Paragraphs []string `yaml:"paragraphs" json:"paragraphs"`
}

// SkillGroup lists skills under a category heading.
type SkillGroup struct {
	Category string   `yaml:"category" json:"category"`
	Items    []string `yaml:"items"    json:"items"`
}

// Experience is one position in the work history.
type Experience struct {
	Title            string   `yaml:"title"            json:"title"`
	Company          string   `yaml:"company"          json:"company"`
	Duration         string   `yaml:"duration"         json:"duration"`
	Type             string   `yaml:"type"             json:"type,omitempty"`
	Responsibilities []string `yaml:"responsibilities" json:"responsibilities"`
}

// Service is an offering shown in the services grid.
type Service struct {
	Icon        string `yaml:"icon"        json:"icon,omitempty"`
	Title       string `yaml:"title"       json:"title"`
	Description string `yaml:"description" json:"description"`
}

// Project is a portfolio card. Slug defaults to the normalized title.
// Details, Features and Benefits fill the project's detail page.
type Project struct {
	Title       string      `yaml:"title"       json:"title"`
	Slug        string      `yaml:"slug"        json:"slug"`
	Description string      `yaml:"description" json:"description"`
	Link        string      `yaml:"link"        json:"link,omitempty"`
	Image       string      `yaml:"image"       json:"image,omitempty"`
	Tech        []string    `yaml:"tech"        json:"tech,omitempty"`
	Details     []string    `yaml:"details"     json:"details,omitempty"`
	Features    []Highlight `yaml:"features"    json:"features,omitempty"`
	Benefits    []Highlight `yaml:"benefits"    json:"benefits,omitempty"`
}

// URL is the card's target: Link when set, the detail page otherwise.
func (p Project) URL() string {
	if link := strings.TrimSpace(p.Link); link != "" {
		return link
	}
	return ProjectPathPrefix + p.Slug
}

// Highlight is a labelled bullet on a project page.
type Highlight struct {
	Label string `yaml:"label" json:"label,omitempty"`
	Text  string `yaml:"text"  json:"text"`
}

// Contact is the contact section. Empty fields are not rendered.
type Contact struct {
	Email    string `yaml:"email"    json:"email"`
	LinkedIn string `yaml:"linkedin" json:"linkedin,omitempty"`
	GitHub   string `yaml:"github"   json:"github,omitempty"`
	Location string `yaml:"location" json:"location,omitempty"`
}

// Footer is rendered at the bottom of every page.
type Footer struct {
	Copyright string `yaml:"copyright" json:"copyright"`
	Links     []Link `yaml:"links"     json:"links,omitempty"`
}

// Link is a labelled URL.
type Link struct {
	Label string `yaml:"label" json:"label"`
	URL   string `yaml:"url"   json:"url"`
}
