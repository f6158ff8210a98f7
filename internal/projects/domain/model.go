package domain

import "time"

// Section names. The section set is fixed; there are no dynamic sections.
const (
	SectionGeneral   = "general"
	SectionTechnical = "technical"
	SectionFinancial = "financial"
	SectionResources = "resources"
)

// Complexity levels for the technical section.
const (
	ComplexityLow    = "Low"
	ComplexityMedium = "Medium"
	ComplexityHigh   = "High"
)

// ValidSection reports whether name is one of the four fixed sections.
func ValidSection(name string) bool {
	switch name {
	case SectionGeneral, SectionTechnical, SectionFinancial, SectionResources:
		return true
	}
	return false
}

// ValidComplexity reports whether c is one of Low/Medium/High.
func ValidComplexity(c string) bool {
	switch c {
	case ComplexityLow, ComplexityMedium, ComplexityHigh:
		return true
	}
	return false
}

// Attachment is the single uploaded file reference a section may carry.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

type GeneralSection struct {
	ProjectType string      `json:"project_type"`
	ClientName  string      `json:"client_name"`
	StartDate   *time.Time  `json:"start_date,omitempty"`
	EndDate     *time.Time  `json:"end_date,omitempty"`
	Attachment  *Attachment `json:"attachment,omitempty"`
	// AttachmentText caches the text extracted from the attached PDF.
	AttachmentText string `json:"attachment_text,omitempty"`
}

type TechnicalSection struct {
	Technologies          []string    `json:"technologies"`
	Complexity            string      `json:"complexity"`
	TechnicalRequirements string      `json:"technical_requirements"`
	Attachment            *Attachment `json:"attachment,omitempty"`
	AttachmentText        string      `json:"attachment_text,omitempty"`
}

type FinancialSection struct {
	Budget         float64     `json:"budget"`
	EstimatedCost  float64     `json:"estimated_cost"`
	Currency       string      `json:"currency"`
	ProfitMargin   float64     `json:"profit_margin"`
	Attachment     *Attachment `json:"attachment,omitempty"`
	AttachmentText string      `json:"attachment_text,omitempty"`
}

type ResourcesSection struct {
	TeamMembers     []string    `json:"team_members"`
	RequiredSkills  []string    `json:"required_skills"`
	EquipmentNeeded []string    `json:"equipment_needed"`
	Attachment      *Attachment `json:"attachment,omitempty"`
	AttachmentText  string      `json:"attachment_text,omitempty"`
}

type Sections struct {
	General   GeneralSection   `json:"general"`
	Technical TechnicalSection `json:"technical"`
	Financial FinancialSection `json:"financial"`
	Resources ResourcesSection `json:"resources"`
}

// Project is a documentation record with four fixed, independently
// editable sections. It is storage-agnostic and shared across the
// repository and HTTP layers.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Sections    Sections  `json:"sections"`
}

// NewProject returns a project with empty sections and sane defaults.
// The caller assigns the ID and timestamps.
func NewProject(name, description string) *Project {
	return &Project{
		Name:        name,
		Description: description,
		Sections: Sections{
			Technical: TechnicalSection{
				Technologies: []string{},
				Complexity:   ComplexityMedium,
			},
			Financial: FinancialSection{
				Currency: "EUR",
			},
			Resources: ResourcesSection{
				TeamMembers:     []string{},
				RequiredSkills:  []string{},
				EquipmentNeeded: []string{},
			},
		},
	}
}

// SectionAttachment returns the attachment and cached text for the named
// section. Unknown section names yield nil and an empty string.
func (p *Project) SectionAttachment(section string) (*Attachment, string) {
	switch section {
	case SectionGeneral:
		return p.Sections.General.Attachment, p.Sections.General.AttachmentText
	case SectionTechnical:
		return p.Sections.Technical.Attachment, p.Sections.Technical.AttachmentText
	case SectionFinancial:
		return p.Sections.Financial.Attachment, p.Sections.Financial.AttachmentText
	case SectionResources:
		return p.Sections.Resources.Attachment, p.Sections.Resources.AttachmentText
	}
	return nil, ""
}

// SetSectionAttachment replaces the named section's attachment and cached
// text. Passing a nil attachment clears both.
func (p *Project) SetSectionAttachment(section string, att *Attachment, text string) {
	if att == nil {
		text = ""
	}
	switch section {
	case SectionGeneral:
		p.Sections.General.Attachment = att
		p.Sections.General.AttachmentText = text
	case SectionTechnical:
		p.Sections.Technical.Attachment = att
		p.Sections.Technical.AttachmentText = text
	case SectionFinancial:
		p.Sections.Financial.Attachment = att
		p.Sections.Financial.AttachmentText = text
	case SectionResources:
		p.Sections.Resources.Attachment = att
		p.Sections.Resources.AttachmentText = text
	}
}
