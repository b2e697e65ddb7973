package elecid

import (
	"context"

	"github.com/google/uuid"
)

// Profile is an electrician's professional Elec-ID profile, the source CVs sync from.
type Profile struct {
	Skills         []Skill         `json:"skills"`
	Qualifications []Qualification `json:"qualifications"`
	WorkHistory    []WorkHistory   `json:"workHistory"`
	Training       []Training      `json:"training"`
}

type Skill struct {
	SkillName string `json:"skillName"`
}

type Qualification struct {
	QualificationName string `json:"qualificationName"`
}

type WorkHistory struct {
	ID           string `json:"id"`
	JobTitle     string `json:"jobTitle"`
	EmployerName string `json:"employerName"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	IsCurrent    bool   `json:"isCurrent"`
	Description  string `json:"description"`
}

const TrainingStatusCompleted = "completed"

type Training struct {
	ID            string `json:"id"`
	TrainingName  string `json:"trainingName"`
	Provider      string `json:"provider"`
	CompletedDate string `json:"completedDate"`
	Status        string `json:"status"`
}

// UserInfo is the account-level identity used to prefill personal details.
type UserInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// Repository stores Elec-ID profiles.
type Repository interface {
	// GetByUser returns nil without error when the user has no profile.
	GetByUser(ctx context.Context, userID uuid.UUID) (*Profile, error)
	// Replace overwrites the whole profile of userID.
	Replace(ctx context.Context, userID uuid.UUID, p Profile) error
}

// UserDirectory resolves account details of a user; nil when unknown.
type UserDirectory interface {
	UserInfo(ctx context.Context, userID uuid.UUID) (*UserInfo, error)
}
