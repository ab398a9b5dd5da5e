package domain

// Section identifies one block of the single-page portfolio.
type Section string

const (
	SectionAbout       Section = "about"
	SectionProjects    Section = "projects"
	SectionSkills      Section = "skills"
	SectionTimeline    Section = "timeline"
	SectionCaseStudies Section = "case-studies"
	SectionBlog        Section = "blog"
	SectionContacts    Section = "contacts"
)

// Sections lists the page blocks in rendering order.
func Sections() []Section {
	return []Section{
		SectionAbout,
		SectionProjects,
		SectionSkills,
		SectionTimeline,
		SectionCaseStudies,
		SectionBlog,
		SectionContacts,
	}
}

// Portfolio is the localized static content rendered around the carousel.
type Portfolio struct {
	Language    string          `json:"language" yaml:"language"`
	Profile     Profile         `json:"profile" yaml:"profile"`
	Skills      []SkillGroup    `json:"skills" yaml:"skills"`
	Timeline    []TimelineEntry `json:"timeline" yaml:"timeline"`
	CaseStudies []CaseStudy     `json:"case_studies" yaml:"case_studies"`
	Blog        []BlogPost      `json:"blog" yaml:"blog"`
	Contacts    []Contact       `json:"contacts" yaml:"contacts"`
	ContactForm ContactForm     `json:"contact_form" yaml:"contact_form"`
}

// Profile is the "About" block.
type Profile struct {
	Name   string   `json:"name" yaml:"name"`
	Role   string   `json:"role" yaml:"role"`
	About  []string `json:"about" yaml:"about"`
	CVLink string   `json:"cv_link,omitempty" yaml:"cv_link,omitempty"`

	// Taglines cycle in the hero typewriter.
	Taglines []string `json:"taglines,omitempty" yaml:"taglines,omitempty"`
}

// SkillGroup is a titled list of skills.
type SkillGroup struct {
	Title  string   `json:"title" yaml:"title"`
	Skills []string `json:"skills" yaml:"skills"`
}

// TimelineEntry is one step of the career timeline.
type TimelineEntry struct {
	Period  string `json:"period" yaml:"period"`
	Title   string `json:"title" yaml:"title"`
	Place   string `json:"place" yaml:"place"`
	Summary string `json:"summary" yaml:"summary"`
}

// CaseStudy is a long-form project write-up.
type CaseStudy struct {
	Title    string `json:"title" yaml:"title"`
	Problem  string `json:"problem" yaml:"problem"`
	Approach string `json:"approach" yaml:"approach"`
	Outcome  string `json:"outcome" yaml:"outcome"`
}

// BlogPost is a short article; Body is markdown.
type BlogPost struct {
	Title   string `json:"title" yaml:"title"`
	Date    string `json:"date" yaml:"date"`
	Summary string `json:"summary" yaml:"summary"`
	Body    string `json:"body,omitempty" yaml:"body,omitempty"`
	Link    string `json:"link,omitempty" yaml:"link,omitempty"`
}

// Contact is an outbound link (mail, code hosting, social).
type Contact struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// ContactForm describes the client-side form. It has no submission target.
type ContactForm struct {
	Fields []FormField `json:"fields" yaml:"fields"`
	Submit string      `json:"submit" yaml:"submit"`
}

// FormField is one input of the contact form.
type FormField struct {
	Name        string `json:"name" yaml:"name"`
	Label       string `json:"label" yaml:"label"`
	Type        string `json:"type" yaml:"type"` // text | email | textarea
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}
