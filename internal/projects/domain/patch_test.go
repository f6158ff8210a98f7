package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectPatch_SingleSectionLeavesSiblingsUntouched(t *testing.T) {
	p := NewProject("Warehouse", "storage facility docs")
	p.Sections.General.ClientName = "Acme"
	p.Sections.Financial.Budget = 5000
	p.Sections.Resources.TeamMembers = []string{"Ana", "Bogdan"}

	high := ComplexityHigh
	patch := ProjectPatch{
		Sections: SectionsPatch{
			Technical: &TechnicalPatch{Complexity: &high},
		},
	}
	patch.Apply(p)

	assert.Equal(t, ComplexityHigh, p.Sections.Technical.Complexity)

	// Siblings and top-level fields are untouched.
	assert.Equal(t, "Warehouse", p.Name)
	assert.Equal(t, "Acme", p.Sections.General.ClientName)
	assert.Equal(t, float64(5000), p.Sections.Financial.Budget)
	assert.Equal(t, []string{"Ana", "Bogdan"}, p.Sections.Resources.TeamMembers)
}

func TestProjectPatch_TopLevelFields(t *testing.T) {
	p := NewProject("old", "old desc")

	name := "new"
	patch := ProjectPatch{Name: &name}
	patch.Apply(p)

	assert.Equal(t, "new", p.Name)
	assert.Equal(t, "old desc", p.Description)
}

func TestProjectPatch_ValidateComplexity(t *testing.T) {
	bogus := "Extreme"
	patch := ProjectPatch{
		Sections: SectionsPatch{
			Technical: &TechnicalPatch{Complexity: &bogus},
		},
	}
	require.ErrorIs(t, patch.Validate(), ErrInvalidComplexity)

	ok := ComplexityLow
	patch.Sections.Technical.Complexity = &ok
	require.NoError(t, patch.Validate())
}

func TestGeneralPatch_Dates(t *testing.T) {
	p := NewProject("dated", "")

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	patch := ProjectPatch{
		Sections: SectionsPatch{
			General: &GeneralPatch{StartDate: &start},
		},
	}
	patch.Apply(p)

	require.NotNil(t, p.Sections.General.StartDate)
	assert.Equal(t, start, *p.Sections.General.StartDate)
	assert.Nil(t, p.Sections.General.EndDate)
}

func TestSetSectionAttachment_NilClearsText(t *testing.T) {
	p := NewProject("att", "")
	p.SetSectionAttachment(SectionGeneral, &Attachment{Name: "a.pdf", URL: "/x/1", Type: "application/pdf"}, "some text")

	att, text := p.SectionAttachment(SectionGeneral)
	require.NotNil(t, att)
	assert.Equal(t, "some text", text)

	p.SetSectionAttachment(SectionGeneral, nil, "ignored")
	att, text = p.SectionAttachment(SectionGeneral)
	assert.Nil(t, att)
	assert.Empty(t, text)
}

func TestValidSection(t *testing.T) {
	for _, s := range []string{SectionGeneral, SectionTechnical, SectionFinancial, SectionResources} {
		assert.True(t, ValidSection(s), s)
	}
	assert.False(t, ValidSection("marketing"))
	assert.False(t, ValidSection(""))
}
