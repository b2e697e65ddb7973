package cv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func completeCV() CV {
	return CV{
		PersonalInfo: PersonalInfo{
			FullName:            "Jane Smith",
			Email:               "jane@example.com",
			Phone:               "07700 900123",
			Address:             "1 High Street",
			Postcode:            "AB1 2CD",
			ProfessionalSummary: strings.Repeat("Approved electrician. ", 4),
		},
		Experience: []WorkExperience{
			{JobTitle: "Electrician", Company: "Acme Ltd", Description: "Domestic rewires"},
			{JobTitle: "Apprentice", Company: "Acme Ltd"},
		},
		Education:      []Education{{Qualification: "Level 3 NVQ"}},
		Skills:         []string{"a", "b", "c", "d", "e"},
		Certifications: []string{"18th Edition", "AM2"},
	}
}

func TestScore_Bounds(t *testing.T) {
	assert.Equal(t, 0, Score(CV{}))
	assert.Equal(t, 100, Score(completeCV()))
}

func TestScore_WhitespaceDoesNotCount(t *testing.T) {
	c := CV{PersonalInfo: PersonalInfo{FullName: "   ", Email: "\t"}}
	assert.Equal(t, 0, Score(c))
}

func TestScore_PartialCredit(t *testing.T) {
	c := completeCV()
	c.Experience = c.Experience[1:] // one entry, no description
	c.Skills = c.Skills[:2]
	c.Certifications = c.Certifications[:1]
	// 100 - 25 - 5 - 5 + 15 + 3 + 3
	assert.Equal(t, 86, Score(c))

	c.PersonalInfo.ProfessionalSummary = "too short"
	assert.Equal(t, 71, Score(c))
}

func TestScore_ExperienceNeedsADescription(t *testing.T) {
	c := completeCV()
	c.Experience[0].Description = ""
	assert.Equal(t, 90, Score(c))
}

func TestBreakdown(t *testing.T) {
	got := Breakdown(CV{Skills: []string{"a", "b"}})
	assert.Equal(t, 3, got.Score)
	assert.Len(t, got.Criteria, 10)

	var total float64
	for _, cr := range got.Criteria {
		total += cr.Weight
		if cr.Field == "skills" {
			assert.InDelta(t, 3.0, cr.Awarded, 1e-9)
		}
	}
	assert.InDelta(t, 100.0, total, 1e-9)
}
