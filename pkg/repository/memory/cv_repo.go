package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/elecmate/cvbuilder/pkg/cv"
)

// CVRepository keeps CVs in process memory. It is used for local runs without
// PostgreSQL and as a test double with the same version semantics.
type CVRepository struct {
	mu   sync.Mutex
	rows map[uuid.UUID]cv.CV
	now  func() time.Time
}

func NewCVRepository() *CVRepository {
	return &CVRepository{
		rows: make(map[uuid.UUID]cv.CV),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *CVRepository) GetByID(_ context.Context, id uuid.UUID) (cv.CV, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok {
		return cv.CV{}, cv.ErrNotFound
	}
	return c.Clone(), nil
}

func (r *CVRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]cv.CV, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []cv.CV{}
	for _, c := range r.rows {
		if c.UserID == userID {
			out = append(out, c.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *CVRepository) GetPrimary(_ context.Context, userID uuid.UUID) (cv.CV, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.rows {
		if c.UserID == userID && c.IsPrimary {
			return c.Clone(), nil
		}
	}
	return cv.CV{}, cv.ErrNotFound
}

func (r *CVRepository) Create(_ context.Context, c cv.CV) (cv.CV, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := r.now()
	c.Version = 1
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.IsPrimary {
		r.unsetPrimaryLocked(c.UserID)
	}
	r.rows[c.ID] = c.Clone()
	return c.Clone(), nil
}

func (r *CVRepository) Update(_ context.Context, c cv.CV) (cv.CV, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[c.ID]
	if !ok {
		return cv.CV{}, cv.ErrNotFound
	}
	if cur.Version != c.Version {
		return cv.CV{}, cv.ErrVersionConflict
	}
	c.UserID = cur.UserID
	c.IsPrimary = cur.IsPrimary
	c.CreatedAt = cur.CreatedAt
	c.UpdatedAt = r.now()
	c.Version = cur.Version + 1
	r.rows[c.ID] = c.Clone()
	return c.Clone(), nil
}

func (r *CVRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return cv.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *CVRepository) SetPrimary(_ context.Context, userID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok || c.UserID != userID {
		return cv.ErrNotFound
	}
	r.unsetPrimaryLocked(userID)
	c.IsPrimary = true
	r.rows[id] = c
	return nil
}

func (r *CVRepository) unsetPrimaryLocked(userID uuid.UUID) {
	for id, c := range r.rows {
		if c.UserID == userID && c.IsPrimary {
			c.IsPrimary = false
			r.rows[id] = c
		}
	}
}
