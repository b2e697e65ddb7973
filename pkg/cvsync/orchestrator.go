package cvsync

import (
	"errors"

	"github.com/elecmate/cvbuilder/pkg/cv"
	"github.com/elecmate/cvbuilder/pkg/elecid"
	"github.com/elecmate/cvbuilder/pkg/nlp"
)

var (
	// ErrNoProfile: no credential profile found, nothing to sync.
	ErrNoProfile = errors.New("no elec-id profile found, nothing to sync")
	// ErrNoData: neither a profile nor account details are available to import.
	ErrNoData = errors.New("no elec-id data available to import")
)

type SyncStatus struct {
	HasElecIDProfile      bool     `json:"hasElecIdProfile"`
	IsInSync              bool     `json:"isInSync"`
	PendingSkills         []string `json:"pendingSkills"`
	PendingCertifications []string `json:"pendingCertifications"`
}

type SyncPreview struct {
	Skills         ListDiff `json:"skills"`
	Certifications ListDiff `json:"certifications"`
}

type ImportPreview struct {
	Experience RecordPreview[cv.WorkExperience] `json:"experience"`
	Education  RecordPreview[cv.Education]      `json:"education"`
}

// RecordPreview splits external records into importable ones and ids already on the CV.
type RecordPreview[T any] struct {
	Available       []T      `json:"available"`
	AlreadyImported []string `json:"alreadyImported"`
}

// ComputeSyncStatus reports whether skills and certifications are up to date.
func ComputeSyncStatus(c cv.CV, profile *elecid.Profile) SyncStatus {
	p := ComputeSyncPreview(c, profile)
	return SyncStatus{
		HasElecIDProfile:      profile != nil,
		IsInSync:              len(p.Skills.ToAdd) == 0 && len(p.Certifications.ToAdd) == 0,
		PendingSkills:         p.Skills.ToAdd,
		PendingCertifications: p.Certifications.ToAdd,
	}
}

// ComputeSyncPreview is a dry run of SyncSkillsAndCerts.
func ComputeSyncPreview(c cv.CV, profile *elecid.Profile) SyncPreview {
	if profile == nil {
		return SyncPreview{
			Skills:         ListDiff{ToAdd: []string{}, Unchanged: append([]string{}, c.Skills...), ToRemove: []string{}},
			Certifications: ListDiff{ToAdd: []string{}, Unchanged: append([]string{}, c.Certifications...), ToRemove: []string{}},
		}
	}
	return SyncPreview{
		Skills:         Diff(c.Skills, SkillsToStrings(profile.Skills)),
		Certifications: Diff(c.Certifications, QualificationsToStrings(profile.Qualifications)),
	}
}

// ComputeImportPreview is a dry run of ImportWorkHistory and ImportTraining.
func ComputeImportPreview(c cv.CV, profile *elecid.Profile) ImportPreview {
	if profile == nil {
		return ImportPreview{
			Experience: RecordPreview[cv.WorkExperience]{Available: []cv.WorkExperience{}, AlreadyImported: []string{}},
			Education:  RecordPreview[cv.Education]{Available: []cv.Education{}, AlreadyImported: []string{}},
		}
	}
	return ImportPreview{
		Experience: previewRecords(c.Experience, WorkHistoryToExperience(profile.WorkHistory), ExperienceKey, experienceID),
		Education:  previewRecords(c.Education, TrainingToEducation(profile.Training), EducationKey, educationID),
	}
}

func previewRecords[T any](existing, external []T, key, id func(T) string) RecordPreview[T] {
	present := nlp.NewNormalizedSet()
	for _, r := range existing {
		present.Add(key(r))
	}
	out := RecordPreview[T]{Available: SelectiveImport(existing, external, key, id, nil), AlreadyImported: []string{}}
	// decided per record: ids alone are not unique enough to tell records apart
	for _, r := range external {
		if present.Contains(key(r)) {
			out.AlreadyImported = append(out.AlreadyImported, id(r))
		}
	}
	return out
}

// SyncSkillsAndCerts merges profile skills and qualifications into the CV lists.
func SyncSkillsAndCerts(c cv.CV, profile *elecid.Profile) (cv.CV, error) {
	if profile == nil {
		return cv.CV{}, ErrNoProfile
	}
	out := c.Clone()
	out.Skills = MergeListField(c.Skills, SkillsToStrings(profile.Skills))
	out.Certifications = MergeListField(c.Certifications, QualificationsToStrings(profile.Qualifications))
	return out, nil
}

// ImportWorkHistory appends selected, not yet imported employment records.
// A nil selectedIDs imports all of them.
func ImportWorkHistory(c cv.CV, profile *elecid.Profile, selectedIDs []string) (cv.CV, error) {
	if profile == nil {
		return cv.CV{}, ErrNoProfile
	}
	out := c.Clone()
	out.Experience = append(out.Experience,
		SelectiveImport(c.Experience, WorkHistoryToExperience(profile.WorkHistory), ExperienceKey, experienceID, selectedIDs)...)
	return out, nil
}

// ImportTraining appends selected, not yet imported training records as education.
// A nil selectedIDs imports all of them.
func ImportTraining(c cv.CV, profile *elecid.Profile, selectedIDs []string) (cv.CV, error) {
	if profile == nil {
		return cv.CV{}, ErrNoProfile
	}
	out := c.Clone()
	out.Education = append(out.Education,
		SelectiveImport(c.Education, TrainingToEducation(profile.Training), EducationKey, educationID, selectedIDs)...)
	return out, nil
}

// ImportFromElecID is the one-click import of everything available.
func ImportFromElecID(c cv.CV, profile *elecid.Profile, info *elecid.UserInfo) (cv.CV, error) {
	if profile == nil && info == nil {
		return cv.CV{}, ErrNoData
	}
	return FullImport(c, profile, info), nil
}
