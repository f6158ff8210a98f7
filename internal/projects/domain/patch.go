package domain

import "time"

// Patch types carry partial updates. Nil fields are left untouched, so a
// patch against one section never disturbs its siblings or the project's
// top-level fields.

type GeneralPatch struct {
	ProjectType *string    `json:"project_type,omitempty"`
	ClientName  *string    `json:"client_name,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

type TechnicalPatch struct {
	Technologies          *[]string `json:"technologies,omitempty"`
	Complexity            *string   `json:"complexity,omitempty"`
	TechnicalRequirements *string   `json:"technical_requirements,omitempty"`
}

type FinancialPatch struct {
	Budget        *float64 `json:"budget,omitempty"`
	EstimatedCost *float64 `json:"estimated_cost,omitempty"`
	Currency      *string  `json:"currency,omitempty"`
	ProfitMargin  *float64 `json:"profit_margin,omitempty"`
}

type ResourcesPatch struct {
	TeamMembers     *[]string `json:"team_members,omitempty"`
	RequiredSkills  *[]string `json:"required_skills,omitempty"`
	EquipmentNeeded *[]string `json:"equipment_needed,omitempty"`
}

type SectionsPatch struct {
	General   *GeneralPatch   `json:"general,omitempty"`
	Technical *TechnicalPatch `json:"technical,omitempty"`
	Financial *FinancialPatch `json:"financial,omitempty"`
	Resources *ResourcesPatch `json:"resources,omitempty"`
}

type ProjectPatch struct {
	Name        *string       `json:"name,omitempty"`
	Description *string       `json:"description,omitempty"`
	Sections    SectionsPatch `json:"sections"`
}

// Apply merges the patch into p, field by field.
func (patch *ProjectPatch) Apply(p *Project) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if g := patch.Sections.General; g != nil {
		g.apply(&p.Sections.General)
	}
	if t := patch.Sections.Technical; t != nil {
		t.apply(&p.Sections.Technical)
	}
	if f := patch.Sections.Financial; f != nil {
		f.apply(&p.Sections.Financial)
	}
	if r := patch.Sections.Resources; r != nil {
		r.apply(&p.Sections.Resources)
	}
}

func (patch *GeneralPatch) apply(s *GeneralSection) {
	if patch.ProjectType != nil {
		s.ProjectType = *patch.ProjectType
	}
	if patch.ClientName != nil {
		s.ClientName = *patch.ClientName
	}
	if patch.StartDate != nil {
		s.StartDate = patch.StartDate
	}
	if patch.EndDate != nil {
		s.EndDate = patch.EndDate
	}
}

func (patch *TechnicalPatch) apply(s *TechnicalSection) {
	if patch.Technologies != nil {
		s.Technologies = *patch.Technologies
	}
	if patch.Complexity != nil {
		s.Complexity = *patch.Complexity
	}
	if patch.TechnicalRequirements != nil {
		s.TechnicalRequirements = *patch.TechnicalRequirements
	}
}

func (patch *FinancialPatch) apply(s *FinancialSection) {
	if patch.Budget != nil {
		s.Budget = *patch.Budget
	}
	if patch.EstimatedCost != nil {
		s.EstimatedCost = *patch.EstimatedCost
	}
	if patch.Currency != nil {
		s.Currency = *patch.Currency
	}
	if patch.ProfitMargin != nil {
		s.ProfitMargin = *patch.ProfitMargin
	}
}

func (patch *ResourcesPatch) apply(s *ResourcesSection) {
	if patch.TeamMembers != nil {
		s.TeamMembers = *patch.TeamMembers
	}
	if patch.RequiredSkills != nil {
		s.RequiredSkills = *patch.RequiredSkills
	}
	if patch.EquipmentNeeded != nil {
		s.EquipmentNeeded = *patch.EquipmentNeeded
	}
}

// Validate rejects values a patch must not carry.
func (patch *ProjectPatch) Validate() error {
	if t := patch.Sections.Technical; t != nil && t.Complexity != nil {
		if !ValidComplexity(*t.Complexity) {
			return ErrInvalidComplexity
		}
	}
	return nil
}
