package cvsync

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/elecmate/cvbuilder/pkg/cv"
	"github.com/elecmate/cvbuilder/pkg/elecid"
)

// maxAttempts bounds how often a mutation is re-applied after a version conflict.
const maxAttempts = 3

// ProfileSource loads the Elec-ID profile and account info of a user.
type ProfileSource interface {
	Fetch(ctx context.Context, userID uuid.UUID) (*elecid.Profile, *elecid.UserInfo, error)
}

// UseCase syncs a user's CVs with their Elec-ID profile.
type UseCase interface {
	Status(ctx context.Context, userID, cvID uuid.UUID) (SyncStatus, error)
	Preview(ctx context.Context, userID, cvID uuid.UUID) (SyncPreview, error)
	ImportPreview(ctx context.Context, userID, cvID uuid.UUID) (ImportPreview, error)
	SyncSkillsAndCerts(ctx context.Context, userID, cvID uuid.UUID) (cv.CV, error)
	ImportWorkHistory(ctx context.Context, userID, cvID uuid.UUID, selectedIDs []string) (cv.CV, error)
	ImportTraining(ctx context.Context, userID, cvID uuid.UUID, selectedIDs []string) (cv.CV, error)
	ImportFromElecID(ctx context.Context, userID, cvID uuid.UUID) (cv.CV, error)
}

type service struct {
	cvs      cv.Repository
	profiles ProfileSource
	events   *cv.Notifier
	log      *slog.Logger
}

func NewService(cvs cv.Repository, profiles ProfileSource, events *cv.Notifier, log *slog.Logger) UseCase {
	if log == nil {
		log = slog.Default()
	}
	return &service{cvs: cvs, profiles: profiles, events: events, log: log}
}

func (s *service) Status(ctx context.Context, userID, cvID uuid.UUID) (SyncStatus, error) {
	c, profile, _, err := s.load(ctx, userID, cvID)
	if err != nil {
		return SyncStatus{}, err
	}
	return ComputeSyncStatus(c, profile), nil
}

func (s *service) Preview(ctx context.Context, userID, cvID uuid.UUID) (SyncPreview, error) {
	c, profile, _, err := s.load(ctx, userID, cvID)
	if err != nil {
		return SyncPreview{}, err
	}
	return ComputeSyncPreview(c, profile), nil
}

func (s *service) ImportPreview(ctx context.Context, userID, cvID uuid.UUID) (ImportPreview, error) {
	c, profile, _, err := s.load(ctx, userID, cvID)
	if err != nil {
		return ImportPreview{}, err
	}
	return ComputeImportPreview(c, profile), nil
}

func (s *service) SyncSkillsAndCerts(ctx context.Context, userID, cvID uuid.UUID) (cv.CV, error) {
	return s.apply(ctx, userID, cvID, "skills_and_certifications", func(c cv.CV, p *elecid.Profile, _ *elecid.UserInfo) (cv.CV, error) {
		return SyncSkillsAndCerts(c, p)
	})
}

func (s *service) ImportWorkHistory(ctx context.Context, userID, cvID uuid.UUID, selectedIDs []string) (cv.CV, error) {
	return s.apply(ctx, userID, cvID, "work_history", func(c cv.CV, p *elecid.Profile, _ *elecid.UserInfo) (cv.CV, error) {
		return ImportWorkHistory(c, p, selectedIDs)
	})
}

func (s *service) ImportTraining(ctx context.Context, userID, cvID uuid.UUID, selectedIDs []string) (cv.CV, error) {
	return s.apply(ctx, userID, cvID, "training", func(c cv.CV, p *elecid.Profile, _ *elecid.UserInfo) (cv.CV, error) {
		return ImportTraining(c, p, selectedIDs)
	})
}

func (s *service) ImportFromElecID(ctx context.Context, userID, cvID uuid.UUID) (cv.CV, error) {
	return s.apply(ctx, userID, cvID, "full_import", ImportFromElecID)
}

type mutation func(c cv.CV, p *elecid.Profile, info *elecid.UserInfo) (cv.CV, error)

// apply loads the CV and profile, runs op and writes the result back.
// A concurrent writer makes Update fail with ErrVersionConflict; the merge is
// then recomputed on the fresh CV, so neither side's additions are lost.
func (s *service) apply(ctx context.Context, userID, cvID uuid.UUID, op string, m mutation) (cv.CV, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		c, profile, info, err := s.load(ctx, userID, cvID)
		if err != nil {
			return cv.CV{}, err
		}
		next, err := m(c, profile, info)
		if err != nil {
			return cv.CV{}, err
		}
		if !changed(c, next) {
			s.log.DebugContext(ctx, "cv already in sync", "op", op, "cv_id", cvID)
			return c, nil
		}
		saved, err := s.cvs.Update(ctx, next)
		if errors.Is(err, cv.ErrVersionConflict) {
			s.log.WarnContext(ctx, "cv sync version conflict, retrying", "op", op, "cv_id", cvID, "attempt", attempt)
			lastErr = err
			continue
		}
		if err != nil {
			return cv.CV{}, err
		}
		s.log.InfoContext(ctx, "cv synced from elec-id", "op", op, "cv_id", cvID,
			"skills", len(saved.Skills), "certifications", len(saved.Certifications),
			"experience", len(saved.Experience), "education", len(saved.Education))
		s.events.Publish(ctx, cv.Event{Kind: cv.EventSynced, UserID: userID, CVID: cvID})
		return saved, nil
	}
	return cv.CV{}, lastErr
}

func (s *service) load(ctx context.Context, userID, cvID uuid.UUID) (cv.CV, *elecid.Profile, *elecid.UserInfo, error) {
	c, err := s.cvs.GetByID(ctx, cvID)
	if err != nil {
		return cv.CV{}, nil, nil, err
	}
	if c.UserID != userID {
		return cv.CV{}, nil, nil, cv.ErrNotFound
	}
	profile, info, err := s.profiles.Fetch(ctx, userID)
	if err != nil {
		return cv.CV{}, nil, nil, err
	}
	return c, profile, info, nil
}

// changed reports whether a merge result differs from its input. Merges only
// append to lists and fill blank personal fields, so lengths and personal info suffice.
func changed(before, after cv.CV) bool {
	return before.PersonalInfo != after.PersonalInfo ||
		len(before.Skills) != len(after.Skills) ||
		len(before.Certifications) != len(after.Certifications) ||
		len(before.Experience) != len(after.Experience) ||
		len(before.Education) != len(after.Education)
}
