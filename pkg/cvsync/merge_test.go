package cvsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elecmate/cvbuilder/pkg/cv"
	"github.com/elecmate/cvbuilder/pkg/elecid"
)

var mergeCases = []struct {
	name     string
	cvList   []string
	external []string
	want     []string
}{
	{"nothing on either side", nil, nil, []string{}},
	{"cv only", []string{"AM2"}, nil, []string{"AM2"}},
	{"external only", nil, []string{"AM2", "18th Edition"}, []string{"AM2", "18th Edition"}},
	{"case-insensitive duplicate", []string{"NVQ Level 3"}, []string{"nvq level 3 "}, []string{"NVQ Level 3"}},
	{"repeats in external", []string{"A"}, []string{"b", "B", "a", "c"}, []string{"A", "b", "c"}},
	{"existing duplicates untouched", []string{"x", "X"}, []string{"y"}, []string{"x", "X", "y"}},
}

func TestMergeListField(t *testing.T) {
	for _, tt := range mergeCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeListField(tt.cvList, tt.external))
		})
	}
}

func TestMergeListField_Idempotent(t *testing.T) {
	for _, tt := range mergeCases {
		t.Run(tt.name, func(t *testing.T) {
			once := MergeListField(tt.cvList, tt.external)
			twice := MergeListField(once, tt.external)
			assert.Equal(t, once, twice)
		})
	}
}

func TestMergeListField_NeverRemoves(t *testing.T) {
	for _, tt := range mergeCases {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeListField(tt.cvList, tt.external)
			require.GreaterOrEqual(t, len(got), len(tt.cvList))
			for i, v := range tt.cvList {
				assert.Equal(t, v, got[i])
			}
		})
	}
}

func TestMergeListField_DoesNotMutateInput(t *testing.T) {
	cvList := make([]string, 1, 4)
	cvList[0] = "A"
	_ = MergeListField(cvList, []string{"B"})
	assert.Equal(t, []string{"A"}, cvList)
	assert.Equal(t, "", cvList[:2][1])
}

func TestSelectiveImport_HonorsSelectedIDs(t *testing.T) {
	external := []cv.WorkExperience{
		{ID: "a", JobTitle: "Apprentice", Company: "Acme Ltd"},
		{ID: "b", JobTitle: "Electrician", Company: "Acme Ltd"},
		{ID: "c", JobTitle: "Supervisor", Company: "Acme Ltd"},
	}

	got := SelectiveImport(nil, external, ExperienceKey, experienceID, []string{"b"})
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)

	existing := []cv.WorkExperience{{ID: "mine", JobTitle: "ELECTRICIAN", Company: "acme ltd"}}
	got = SelectiveImport(existing, external, ExperienceKey, experienceID, []string{"b"})
	assert.Empty(t, got)
}

func TestSelectiveImport_NilVersusEmptySelection(t *testing.T) {
	external := []cv.Education{{ID: "1", Qualification: "AM2"}, {ID: "2", Qualification: "18th Edition"}}

	assert.Len(t, SelectiveImport(nil, external, EducationKey, educationID, nil), 2)
	assert.Empty(t, SelectiveImport(nil, external, EducationKey, educationID, []string{}))
}

func TestExperienceAndEducationKeys(t *testing.T) {
	assert.Equal(t, "electrician-acme ltd", ExperienceKey(cv.WorkExperience{JobTitle: " Electrician", Company: "Acme Ltd "}))
	assert.Equal(t, "am2", EducationKey(cv.Education{Qualification: " AM2 ", Institution: "anything"}))
}

func TestFillScalarIfEmpty(t *testing.T) {
	assert.Equal(t, "Jane Doe", FillScalarIfEmpty("Jane Doe", "Jane Smith"))
	assert.Equal(t, "Jane Smith", FillScalarIfEmpty("   ", "Jane Smith"))
	assert.Equal(t, "", FillScalarIfEmpty("", ""))
}

func TestFullImport(t *testing.T) {
	base := cv.CV{
		PersonalInfo: cv.PersonalInfo{FullName: "Jane Doe"},
		Experience:   []cv.WorkExperience{{ID: "e1", JobTitle: "Electrician", Company: "Acme Ltd"}},
		Education:    []cv.Education{{ID: "d1", Qualification: "AM2"}},
		Skills:       []string{"Cable Jointing"},
	}
	profile := &elecid.Profile{
		Skills:         []elecid.Skill{{SkillName: "cable jointing"}, {SkillName: "PAT Testing"}},
		Qualifications: []elecid.Qualification{{QualificationName: "18th Edition"}},
		WorkHistory: []elecid.WorkHistory{
			{ID: "w1", JobTitle: "Electrician", EmployerName: "Acme Ltd"},
			{ID: "w2", JobTitle: "Supervisor", EmployerName: "Acme Ltd"},
		},
		Training: []elecid.Training{
			{ID: "t1", TrainingName: "am2", Status: "completed"},
			{ID: "t2", TrainingName: "EV Charging", Status: "completed"},
		},
	}
	info := &elecid.UserInfo{FullName: "Jane Smith", Email: "jane@example.com"}

	got := FullImport(base, profile, info)

	assert.Equal(t, "Jane Doe", got.PersonalInfo.FullName)
	assert.Equal(t, "jane@example.com", got.PersonalInfo.Email)
	assert.Equal(t, []string{"Cable Jointing", "PAT Testing"}, got.Skills)
	assert.Equal(t, []string{"18th Edition"}, got.Certifications)
	require.Len(t, got.Experience, 2)
	assert.Equal(t, "Supervisor", got.Experience[1].JobTitle)
	require.Len(t, got.Education, 2)
	assert.Equal(t, "EV Charging", got.Education[1].Qualification)

	again := FullImport(got, profile, info)
	assert.Equal(t, got, again)

	// input untouched
	assert.Len(t, base.Experience, 1)
	assert.Equal(t, "", base.PersonalInfo.Email)
}

func TestFullImport_UserInfoOnly(t *testing.T) {
	got := FullImport(cv.CV{}, nil, &elecid.UserInfo{FullName: "Sam Spark", Email: "sam@example.com"})
	assert.Equal(t, cv.PersonalInfo{FullName: "Sam Spark", Email: "sam@example.com"}, got.PersonalInfo)
	assert.Empty(t, got.Skills)
	assert.Empty(t, got.Experience)
}
