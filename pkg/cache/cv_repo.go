package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/elecmate/cvbuilder/pkg/cv"
)

const keyPrefix = "cvbuilder:"

func cvKey(id uuid.UUID) string          { return keyPrefix + "cv:" + id.String() }
func listKey(userID uuid.UUID) string    { return keyPrefix + "cvs:user:" + userID.String() }
func primaryKey(userID uuid.UUID) string { return keyPrefix + "cvs:primary:" + userID.String() }

// CVRepository caches the read views of a cv.Repository: one CV by id, the
// list of a user and the user's primary CV. Writes go straight through; the
// cached views are dropped by Invalidate, which must be subscribed to the
// cv.Notifier that announces every persisted mutation.
type CVRepository struct {
	next  cv.Repository
	store Store
	ttl   time.Duration
	log   *slog.Logger
}

func NewCVRepository(next cv.Repository, store Store, ttl time.Duration, log *slog.Logger) *CVRepository {
	if log == nil {
		log = slog.Default()
	}
	return &CVRepository{next: next, store: store, ttl: ttl, log: log}
}

func (r *CVRepository) GetByID(ctx context.Context, id uuid.UUID) (cv.CV, error) {
	return readThrough(ctx, r, cvKey(id), func() (cv.CV, error) { return r.next.GetByID(ctx, id) })
}

func (r *CVRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]cv.CV, error) {
	return readThrough(ctx, r, listKey(userID), func() ([]cv.CV, error) { return r.next.ListByUser(ctx, userID) })
}

// GetPrimary does not cache absence; only a found primary CV is stored.
func (r *CVRepository) GetPrimary(ctx context.Context, userID uuid.UUID) (cv.CV, error) {
	return readThrough(ctx, r, primaryKey(userID), func() (cv.CV, error) { return r.next.GetPrimary(ctx, userID) })
}

func (r *CVRepository) Create(ctx context.Context, c cv.CV) (cv.CV, error) {
	return r.next.Create(ctx, c)
}

func (r *CVRepository) Update(ctx context.Context, c cv.CV) (cv.CV, error) {
	return r.next.Update(ctx, c)
}

func (r *CVRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.next.Delete(ctx, id)
}

func (r *CVRepository) SetPrimary(ctx context.Context, userID, id uuid.UUID) error {
	return r.next.SetPrimary(ctx, userID, id)
}

// Invalidate drops every view the event's CV may appear in.
// Its signature matches cv.Listener.
func (r *CVRepository) Invalidate(ctx context.Context, e cv.Event) {
	keys := []string{cvKey(e.CVID), listKey(e.UserID), primaryKey(e.UserID)}
	if err := r.store.Del(ctx, keys...); err != nil {
		r.log.ErrorContext(ctx, "cache invalidation failed", "cv_id", e.CVID, "user_id", e.UserID, "kind", string(e.Kind), "err", err)
	}
}

func readThrough[T any](ctx context.Context, r *CVRepository, key string, load func() (T, error)) (T, error) {
	raw, err := r.store.Get(ctx, key)
	if err == nil {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
		r.log.WarnContext(ctx, "cache entry undecodable, reloading", "key", key)
	} else if !errors.Is(err, ErrMiss) {
		r.log.WarnContext(ctx, "cache read failed, falling back to repository", "key", key, "err", err)
	}

	v, err := load()
	if err != nil {
		return v, err
	}
	if raw, err := json.Marshal(v); err == nil {
		if err := r.store.Set(ctx, key, raw, r.ttl); err != nil {
			r.log.WarnContext(ctx, "cache write failed", "key", key, "err", err)
		}
	}
	return v, nil
}

var _ cv.Repository = (*CVRepository)(nil)
