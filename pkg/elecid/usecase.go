package elecid

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrValidation is a plain validation failure.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

// UseCase reads and replaces the caller's own Elec-ID profile.
type UseCase interface {
	Get(ctx context.Context, userID uuid.UUID) (*Profile, error)
	Replace(ctx context.Context, userID uuid.UUID, p Profile) (Profile, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	return s.repo.GetByUser(ctx, userID)
}

func (s *service) Replace(ctx context.Context, userID uuid.UUID, p Profile) (Profile, error) {
	if userID == uuid.Nil {
		return Profile{}, ErrValidation("user is required")
	}
	out := Profile{
		Skills:         make([]Skill, 0, len(p.Skills)),
		Qualifications: make([]Qualification, 0, len(p.Qualifications)),
		WorkHistory:    make([]WorkHistory, 0, len(p.WorkHistory)),
		Training:       make([]Training, 0, len(p.Training)),
	}
	for _, sk := range p.Skills {
		sk.SkillName = strings.TrimSpace(sk.SkillName)
		if sk.SkillName == "" {
			return Profile{}, ErrValidation("skillName is required")
		}
		out.Skills = append(out.Skills, sk)
	}
	for _, q := range p.Qualifications {
		q.QualificationName = strings.TrimSpace(q.QualificationName)
		if q.QualificationName == "" {
			return Profile{}, ErrValidation("qualificationName is required")
		}
		out.Qualifications = append(out.Qualifications, q)
	}
	workIDs := make(map[string]struct{}, len(p.WorkHistory))
	trainingIDs := make(map[string]struct{}, len(p.Training))
	for i, w := range p.WorkHistory {
		if strings.TrimSpace(w.JobTitle) == "" || strings.TrimSpace(w.EmployerName) == "" {
			return Profile{}, ErrValidation(fmt.Sprintf("workHistory[%d]: jobTitle and employerName are required", i))
		}
		if w.ID == "" {
			w.ID = uuid.NewString()
		}
		if _, dup := workIDs[w.ID]; dup {
			return Profile{}, ErrValidation(fmt.Sprintf("workHistory[%d]: duplicate id %q", i, w.ID))
		}
		workIDs[w.ID] = struct{}{}
		out.WorkHistory = append(out.WorkHistory, w)
	}
	for i, t := range p.Training {
		if strings.TrimSpace(t.TrainingName) == "" {
			return Profile{}, ErrValidation(fmt.Sprintf("training[%d]: trainingName is required", i))
		}
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if _, dup := trainingIDs[t.ID]; dup {
			return Profile{}, ErrValidation(fmt.Sprintf("training[%d]: duplicate id %q", i, t.ID))
		}
		trainingIDs[t.ID] = struct{}{}
		out.Training = append(out.Training, t)
	}
	if err := s.repo.Replace(ctx, userID, out); err != nil {
		return Profile{}, err
	}
	return out, nil
}
