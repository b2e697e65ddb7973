package cvsync

import (
	"strings"

	"github.com/elecmate/cvbuilder/pkg/cv"
	"github.com/elecmate/cvbuilder/pkg/elecid"
	"github.com/elecmate/cvbuilder/pkg/nlp"
)

// MergeListField appends every external label not yet present in cvList.
// Existing entries keep their position and spelling; labels repeated in
// externalList are added once.
func MergeListField(cvList, externalList []string) []string {
	seen := nlp.NewNormalizedSet(cvList...)
	out := make([]string, 0, len(cvList)+len(externalList))
	out = append(out, cvList...)
	for _, v := range externalList {
		if seen.Add(v) {
			out = append(out, v)
		}
	}
	return out
}

// SelectiveImport returns the external records to append to existing.
// A nil selectedIDs imports everything; otherwise only records whose id is listed.
// Records whose dedup key already occurs in existing are skipped.
func SelectiveImport[T any](existing, external []T, key func(T) string, id func(T) string, selectedIDs []string) []T {
	var selected map[string]struct{}
	if selectedIDs != nil {
		selected = make(map[string]struct{}, len(selectedIDs))
		for _, s := range selectedIDs {
			selected[s] = struct{}{}
		}
	}
	present := nlp.NewNormalizedSet()
	for _, r := range existing {
		present.Add(key(r))
	}
	out := make([]T, 0, len(external))
	for _, r := range external {
		if selected != nil {
			if _, ok := selected[id(r)]; !ok {
				continue
			}
		}
		if present.Contains(key(r)) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FillScalarIfEmpty keeps a user-entered value and only falls back to the external one when blank.
func FillScalarIfEmpty(cvValue, externalValue string) string {
	if strings.TrimSpace(cvValue) != "" {
		return cvValue
	}
	return externalValue
}

// ExperienceKey identifies a job by title and employer.
func ExperienceKey(e cv.WorkExperience) string {
	return nlp.NormalizeLabel(e.JobTitle + "-" + e.Company)
}

// EducationKey identifies an education record by qualification name alone.
func EducationKey(e cv.Education) string {
	return nlp.NormalizeLabel(e.Qualification)
}

func experienceID(e cv.WorkExperience) string { return e.ID }
func educationID(e cv.Education) string       { return e.ID }

// FullImport applies every merge rule at once: personal details are filled only
// where blank, non-duplicate experience and education are appended, skills and
// certifications are merged. Either profile or info may be nil.
func FullImport(c cv.CV, profile *elecid.Profile, info *elecid.UserInfo) cv.CV {
	out := c.Clone()
	if info != nil {
		out.PersonalInfo.FullName = FillScalarIfEmpty(c.PersonalInfo.FullName, info.FullName)
		out.PersonalInfo.Email = FillScalarIfEmpty(c.PersonalInfo.Email, info.Email)
	}
	if profile == nil {
		return out
	}
	out.Experience = append(out.Experience,
		SelectiveImport(c.Experience, WorkHistoryToExperience(profile.WorkHistory), ExperienceKey, experienceID, nil)...)
	out.Education = append(out.Education,
		SelectiveImport(c.Education, TrainingToEducation(profile.Training), EducationKey, educationID, nil)...)
	out.Skills = MergeListField(c.Skills, SkillsToStrings(profile.Skills))
	out.Certifications = MergeListField(c.Certifications, QualificationsToStrings(profile.Qualifications))
	return out
}
