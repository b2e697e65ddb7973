package cv

import (
	"math"
	"strings"
)

const partialCredit = 0.6

// Criterion is one line of the completeness checklist.
type Criterion struct {
	Field   string  `json:"field"`
	Weight  float64 `json:"weight"`
	Awarded float64 `json:"awarded"`
}

// Completeness is the scored checklist for one CV.
type Completeness struct {
	Score    int         `json:"score"`
	Criteria []Criterion `json:"criteria"`
}

// Score returns the weighted completeness percentage of c in [0,100].
func Score(c CV) int {
	return Breakdown(c).Score
}

// Breakdown scores c and reports what each criterion contributed.
func Breakdown(c CV) Completeness {
	p := c.PersonalInfo
	criteria := []Criterion{
		{Field: "fullName", Weight: 10, Awarded: full(filled(p.FullName), 10)},
		{Field: "email", Weight: 10, Awarded: full(filled(p.Email), 10)},
		{Field: "phone", Weight: 8, Awarded: full(filled(p.Phone), 8)},
		{Field: "address", Weight: 5, Awarded: full(filled(p.Address), 5)},
		{Field: "postcode", Weight: 5, Awarded: full(filled(p.Postcode), 5)},
		{Field: "professionalSummary", Weight: 15, Awarded: full(len(strings.TrimSpace(p.ProfessionalSummary)) >= 50, 15)},
		{Field: "experience", Weight: 25, Awarded: experienceCredit(c.Experience, 25)},
		{Field: "education", Weight: 12, Awarded: full(len(c.Education) >= 1, 12)},
		{Field: "skills", Weight: 5, Awarded: tiered(len(c.Skills), 5, 2, 5)},
		{Field: "certifications", Weight: 5, Awarded: tiered(len(c.Certifications), 2, 1, 5)},
	}
	var sum float64
	for _, cr := range criteria {
		sum += cr.Awarded
	}
	score := int(math.Round(sum))
	if score > 100 {
		score = 100
	}
	return Completeness{Score: score, Criteria: criteria}
}

func filled(s string) bool { return strings.TrimSpace(s) != "" }

func full(ok bool, weight float64) float64 {
	if ok {
		return weight
	}
	return 0
}

// tiered gives full weight at n >= fullAt and partial credit at n >= partialAt.
func tiered(n, fullAt, partialAt int, weight float64) float64 {
	switch {
	case n >= fullAt:
		return weight
	case n >= partialAt:
		return weight * partialCredit
	default:
		return 0
	}
}

func experienceCredit(items []WorkExperience, weight float64) float64 {
	if len(items) == 0 {
		return 0
	}
	if len(items) >= 2 {
		for _, e := range items {
			if filled(e.Description) {
				return weight
			}
		}
	}
	return weight * partialCredit
}
