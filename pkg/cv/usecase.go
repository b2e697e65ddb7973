package cv

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/elecmate/cvbuilder/pkg/nlp"
)

const defaultTitle = "Untitled CV"

// Draft is the editable content of a new CV.
type Draft struct {
	Title          string           `json:"title"`
	PersonalInfo   PersonalInfo     `json:"personalInfo"`
	Experience     []WorkExperience `json:"experience"`
	Education      []Education      `json:"education"`
	Skills         []string         `json:"skills"`
	Certifications []string         `json:"certifications"`
}

// Patch is a partial update; nil fields are left untouched.
// When Version is set the update fails with ErrVersionConflict unless it matches.
type Patch struct {
	Title          *string           `json:"title,omitempty"`
	PersonalInfo   *PersonalInfo     `json:"personalInfo,omitempty"`
	Experience     *[]WorkExperience `json:"experience,omitempty"`
	Education      *[]Education      `json:"education,omitempty"`
	Skills         *[]string         `json:"skills,omitempty"`
	Certifications *[]string         `json:"certifications,omitempty"`
	Version        *int64            `json:"version,omitempty"`
}

// UseCase covers what a user does with their own CVs.
type UseCase interface {
	Create(ctx context.Context, userID uuid.UUID, d Draft) (CV, error)
	Get(ctx context.Context, userID, id uuid.UUID) (CV, error)
	List(ctx context.Context, userID uuid.UUID) ([]CV, error)
	// Primary returns nil without error when the user has no primary CV.
	Primary(ctx context.Context, userID uuid.UUID) (*CV, error)
	Update(ctx context.Context, userID, id uuid.UUID, p Patch) (CV, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	SetPrimary(ctx context.Context, userID, id uuid.UUID) error
	Completeness(ctx context.Context, userID, id uuid.UUID) (Completeness, error)
}

type service struct {
	repo   Repository
	events *Notifier
}

func NewService(repo Repository, events *Notifier) UseCase {
	return &service{repo: repo, events: events}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, d Draft) (CV, error) {
	if userID == uuid.Nil {
		return CV{}, ErrValidation("user is required")
	}
	existing, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return CV{}, err
	}
	c := CV{
		ID:             uuid.New(),
		UserID:         userID,
		Title:          strings.TrimSpace(d.Title),
		IsPrimary:      len(existing) == 0,
		PersonalInfo:   d.PersonalInfo,
		Experience:     d.Experience,
		Education:      d.Education,
		Skills:         d.Skills,
		Certifications: d.Certifications,
	}
	sanitize(&c)
	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return CV{}, err
	}
	s.events.Publish(ctx, Event{Kind: EventCreated, UserID: userID, CVID: created.ID})
	return created, nil
}

func (s *service) Get(ctx context.Context, userID, id uuid.UUID) (CV, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return CV{}, err
	}
	// another user's CV does not exist as far as the caller can tell
	if c.UserID != userID {
		return CV{}, ErrNotFound
	}
	return c, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]CV, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []CV{}
	}
	return items, nil
}

func (s *service) Primary(ctx context.Context, userID uuid.UUID) (*CV, error) {
	c, err := s.repo.GetPrimary(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *service) Update(ctx context.Context, userID, id uuid.UUID, p Patch) (CV, error) {
	c, err := s.Get(ctx, userID, id)
	if err != nil {
		return CV{}, err
	}
	if p.Version != nil && *p.Version != c.Version {
		return CV{}, ErrVersionConflict
	}
	if p.Title != nil {
		c.Title = strings.TrimSpace(*p.Title)
	}
	if p.PersonalInfo != nil {
		c.PersonalInfo = *p.PersonalInfo
	}
	if p.Experience != nil {
		c.Experience = *p.Experience
	}
	if p.Education != nil {
		c.Education = *p.Education
	}
	if p.Skills != nil {
		c.Skills = *p.Skills
	}
	if p.Certifications != nil {
		c.Certifications = *p.Certifications
	}
	sanitize(&c)
	updated, err := s.repo.Update(ctx, c)
	if err != nil {
		return CV{}, err
	}
	s.events.Publish(ctx, Event{Kind: EventUpdated, UserID: userID, CVID: id})
	return updated, nil
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Publish(ctx, Event{Kind: EventDeleted, UserID: userID, CVID: id})
	return nil
}

func (s *service) SetPrimary(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	prev, err := s.repo.GetPrimary(ctx, userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	hadPrev := err == nil
	if err := s.repo.SetPrimary(ctx, userID, id); err != nil {
		return err
	}
	// the demoted CV changed too, listeners must drop their copy of it
	if hadPrev && prev.ID != id {
		s.events.Publish(ctx, Event{Kind: EventPrimaryChanged, UserID: userID, CVID: prev.ID})
	}
	s.events.Publish(ctx, Event{Kind: EventPrimaryChanged, UserID: userID, CVID: id})
	return nil
}

func (s *service) Completeness(ctx context.Context, userID, id uuid.UUID) (Completeness, error) {
	c, err := s.Get(ctx, userID, id)
	if err != nil {
		return Completeness{}, err
	}
	return Breakdown(c), nil
}

// sanitize enforces the list invariants before a CV is written:
// no normalized duplicates in skills/certifications, every record has an id, nil slices become empty.
func sanitize(c *CV) {
	if c.Title == "" {
		c.Title = defaultTitle
	}
	c.Skills = nlp.Dedupe(dropBlank(c.Skills))
	c.Certifications = nlp.Dedupe(dropBlank(c.Certifications))
	c.Experience = append([]WorkExperience{}, c.Experience...)
	for i := range c.Experience {
		if c.Experience[i].ID == "" {
			c.Experience[i].ID = uuid.NewString()
		}
	}
	c.Education = append([]Education{}, c.Education...)
	for i := range c.Education {
		if c.Education[i].ID == "" {
			c.Education[i].ID = uuid.NewString()
		}
	}
}

func dropBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
