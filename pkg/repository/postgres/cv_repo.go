package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/elecmate/cvbuilder/pkg/cv"
)

const cvColumns = `id, user_id, title, is_primary, version, personal_info, experience, education, skills, certifications, created_at, updated_at`

// CVRepository stores CVs; lists and personal details live in JSONB columns.
type CVRepository struct {
	pool *pgxpool.Pool
}

func NewCVRepository(pool *pgxpool.Pool) *CVRepository {
	return &CVRepository{pool: pool}
}

func (r *CVRepository) GetByID(ctx context.Context, id uuid.UUID) (cv.CV, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+cvColumns+` FROM cvs WHERE id = $1`, id)
	c, err := scanCV(row)
	if err != nil {
		return cv.CV{}, mapErr("get cv", err)
	}
	return c, nil
}

func (r *CVRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]cv.CV, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+cvColumns+`
FROM cvs WHERE user_id = $1
ORDER BY updated_at DESC
`, userID)
	if err != nil {
		return nil, mapErr("list cvs", err)
	}
	defer rows.Close()
	res := []cv.CV{}
	for rows.Next() {
		c, err := scanCV(rows)
		if err != nil {
			return nil, mapErr("scan cv", err)
		}
		res = append(res, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr("list cvs", err)
	}
	return res, nil
}

func (r *CVRepository) GetPrimary(ctx context.Context, userID uuid.UUID) (cv.CV, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+cvColumns+` FROM cvs WHERE user_id = $1 AND is_primary`, userID)
	c, err := scanCV(row)
	if err != nil {
		return cv.CV{}, mapErr("get primary cv", err)
	}
	return c, nil
}

func (r *CVRepository) Create(ctx context.Context, c cv.CV) (cv.CV, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := time.Now().UTC()
	doc, err := encodeDoc(c)
	if err != nil {
		return cv.CV{}, err
	}
	row := r.pool.QueryRow(ctx, `
INSERT INTO cvs (id, user_id, title, is_primary, version, personal_info, experience, education, skills, certifications, created_at, updated_at)
VALUES ($1, $2, $3, $4, 1, $5, $6, $7, $8, $9, $10, $10)
RETURNING `+cvColumns,
		c.ID, c.UserID, c.Title, c.IsPrimary,
		doc.personalInfo, doc.experience, doc.education, doc.skills, doc.certifications, now)
	created, err := scanCV(row)
	if err != nil {
		return cv.CV{}, mapErr("create cv", err)
	}
	return created, nil
}

func (r *CVRepository) Update(ctx context.Context, c cv.CV) (cv.CV, error) {
	doc, err := encodeDoc(c)
	if err != nil {
		return cv.CV{}, err
	}
	row := r.pool.QueryRow(ctx, `
UPDATE cvs SET
	title = $3,
	personal_info = $4,
	experience = $5,
	education = $6,
	skills = $7,
	certifications = $8,
	version = version + 1,
	updated_at = $9
WHERE id = $1 AND version = $2
RETURNING `+cvColumns,
		c.ID, c.Version, c.Title,
		doc.personalInfo, doc.experience, doc.education, doc.skills, doc.certifications, time.Now().UTC())
	updated, err := scanCV(row)
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return cv.CV{}, mapErr("update cv", err)
	}
	// no row matched: either gone or someone bumped the version first
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM cvs WHERE id = $1)`, c.ID).Scan(&exists); err != nil {
		return cv.CV{}, mapErr("update cv", err)
	}
	if exists {
		return cv.CV{}, cv.ErrVersionConflict
	}
	return cv.CV{}, cv.ErrNotFound
}

func (r *CVRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cvs WHERE id = $1`, id)
	if err != nil {
		return mapErr("delete cv", err)
	}
	if tag.RowsAffected() == 0 {
		return cv.ErrNotFound
	}
	return nil
}

func (r *CVRepository) SetPrimary(ctx context.Context, userID, id uuid.UUID) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
UPDATE cvs SET is_primary = FALSE
WHERE user_id = $1 AND is_primary AND id <> $2
`, userID, id); err != nil {
			return mapErr("unset primary", err)
		}
		tag, err := tx.Exec(ctx, `UPDATE cvs SET is_primary = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
		if err != nil {
			return mapErr("set primary", err)
		}
		if tag.RowsAffected() == 0 {
			return cv.ErrNotFound
		}
		return nil
	})
}

type cvDoc struct {
	personalInfo, experience, education, skills, certifications []byte
}

func encodeDoc(c cv.CV) (cvDoc, error) {
	var d cvDoc
	var err error
	if d.personalInfo, err = json.Marshal(c.PersonalInfo); err != nil {
		return cvDoc{}, err
	}
	if d.experience, err = json.Marshal(nonNil(c.Experience)); err != nil {
		return cvDoc{}, err
	}
	if d.education, err = json.Marshal(nonNil(c.Education)); err != nil {
		return cvDoc{}, err
	}
	if d.skills, err = json.Marshal(nonNil(c.Skills)); err != nil {
		return cvDoc{}, err
	}
	if d.certifications, err = json.Marshal(nonNil(c.Certifications)); err != nil {
		return cvDoc{}, err
	}
	return d, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func scanCV(row pgx.Row) (cv.CV, error) {
	var c cv.CV
	var d cvDoc
	var created, updated time.Time
	if err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.IsPrimary, &c.Version,
		&d.personalInfo, &d.experience, &d.education, &d.skills, &d.certifications,
		&created, &updated); err != nil {
		return cv.CV{}, err
	}
	for _, f := range []struct {
		raw []byte
		dst any
	}{
		{d.personalInfo, &c.PersonalInfo},
		{d.experience, &c.Experience},
		{d.education, &c.Education},
		{d.skills, &c.Skills},
		{d.certifications, &c.Certifications},
	} {
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return cv.CV{}, err
		}
	}
	c.CreatedAt = created.UTC()
	c.UpdatedAt = updated.UTC()
	return c, nil
}

func mapErr(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return cv.ErrNotFound
	}
	return &cv.PersistenceError{Message: op, Err: err}
}
