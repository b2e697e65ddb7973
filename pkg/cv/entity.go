package cv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CV is the document a user edits in the CV builder.
type CV struct {
	ID             uuid.UUID        `json:"id"`
	UserID         uuid.UUID        `json:"userId"`
	Title          string           `json:"title"`
	IsPrimary      bool             `json:"isPrimary"`
	Version        int64            `json:"version"`
	PersonalInfo   PersonalInfo     `json:"personalInfo"`
	Experience     []WorkExperience `json:"experience"`
	Education      []Education      `json:"education"`
	Skills         []string         `json:"skills"`
	Certifications []string         `json:"certifications"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

type PersonalInfo struct {
	FullName            string `json:"fullName"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	Address             string `json:"address"`
	Postcode            string `json:"postcode"`
	ProfessionalSummary string `json:"professionalSummary"`
}

type WorkExperience struct {
	ID          string `json:"id"`
	JobTitle    string `json:"jobTitle"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type Education struct {
	ID            string `json:"id"`
	Qualification string `json:"qualification"`
	Institution   string `json:"institution"`
	Location      string `json:"location"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	Current       bool   `json:"current"`
	Grade         string `json:"grade"`
}

// Clone returns a deep copy so callers can change slices without touching the original.
func (c CV) Clone() CV {
	out := c
	out.Experience = append([]WorkExperience{}, c.Experience...)
	out.Education = append([]Education{}, c.Education...)
	out.Skills = append([]string{}, c.Skills...)
	out.Certifications = append([]string{}, c.Certifications...)
	return out
}

// Repository stores CVs.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (CV, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]CV, error)
	// GetPrimary returns ErrNotFound when the user has no primary CV.
	GetPrimary(ctx context.Context, userID uuid.UUID) (CV, error)
	Create(ctx context.Context, c CV) (CV, error)
	// Update writes c only if the stored version equals c.Version and
	// returns the stored row with the bumped version.
	Update(ctx context.Context, c CV) (CV, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// SetPrimary unsets every other primary CV of userID and marks id primary, atomically.
	SetPrimary(ctx context.Context, userID, id uuid.UUID) error
}

var (
	ErrNotFound        = errors.New("cv not found")
	ErrVersionConflict = errors.New("cv was modified concurrently")
)

// ErrValidation is a plain validation failure.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

// PersistenceError wraps a storage failure. Callers surface it as is.
type PersistenceError struct {
	Message string
	Err     error
}

func (e *PersistenceError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
