package cvsync

import (
	"github.com/elecmate/cvbuilder/pkg/cv"
	"github.com/elecmate/cvbuilder/pkg/elecid"
)

const (
	gradeCompleted  = "Completed"
	gradeInProgress = "In Progress"
)

// SkillsToStrings extracts skill names, dropping empty ones.
func SkillsToStrings(skills []elecid.Skill) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s.SkillName != "" {
			out = append(out, s.SkillName)
		}
	}
	return out
}

// QualificationsToStrings extracts qualification names, dropping empty ones.
func QualificationsToStrings(quals []elecid.Qualification) []string {
	out := make([]string, 0, len(quals))
	for _, q := range quals {
		if q.QualificationName != "" {
			out = append(out, q.QualificationName)
		}
	}
	return out
}

// WorkHistoryToExperience maps Elec-ID employment records onto CV experience.
// The profile carries no location, so it is left blank.
func WorkHistoryToExperience(history []elecid.WorkHistory) []cv.WorkExperience {
	out := make([]cv.WorkExperience, 0, len(history))
	for _, w := range history {
		out = append(out, cv.WorkExperience{
			ID:          w.ID,
			JobTitle:    w.JobTitle,
			Company:     w.EmployerName,
			Location:    "",
			StartDate:   w.StartDate,
			EndDate:     w.EndDate,
			Current:     w.IsCurrent,
			Description: w.Description,
		})
	}
	return out
}

// TrainingToEducation maps Elec-ID training records onto CV education.
// Anything not yet completed is reported as current / "In Progress".
func TrainingToEducation(training []elecid.Training) []cv.Education {
	out := make([]cv.Education, 0, len(training))
	for _, t := range training {
		completed := t.Status == elecid.TrainingStatusCompleted
		grade := gradeInProgress
		if completed {
			grade = gradeCompleted
		}
		out = append(out, cv.Education{
			ID:            t.ID,
			Qualification: t.TrainingName,
			Institution:   t.Provider,
			Location:      "",
			StartDate:     "",
			EndDate:       t.CompletedDate,
			Current:       !completed,
			Grade:         grade,
		})
	}
	return out
}
