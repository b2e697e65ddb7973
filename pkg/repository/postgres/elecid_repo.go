package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/elecmate/cvbuilder/pkg/cv"
	"github.com/elecmate/cvbuilder/pkg/elecid"
)

// ElecIDRepository reads and replaces a user's Elec-ID profile.
type ElecIDRepository struct {
	pool *pgxpool.Pool
}

func NewElecIDRepository(pool *pgxpool.Pool) *ElecIDRepository {
	return &ElecIDRepository{pool: pool}
}

func (r *ElecIDRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*elecid.Profile, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM elec_id_profiles WHERE user_id = $1)`, userID).Scan(&exists); err != nil {
		return nil, persistErr("check elec-id profile", err)
	}
	if !exists {
		return nil, nil
	}

	p := &elecid.Profile{
		Skills:         []elecid.Skill{},
		Qualifications: []elecid.Qualification{},
		WorkHistory:    []elecid.WorkHistory{},
		Training:       []elecid.Training{},
	}
	skills, err := r.pool.Query(ctx, `SELECT skill_name FROM elec_id_skills WHERE user_id = $1 ORDER BY position`, userID)
	if err != nil {
		return nil, persistErr("load elec-id skills", err)
	}
	p.Skills, err = pgx.CollectRows(skills, func(row pgx.CollectableRow) (elecid.Skill, error) {
		var s elecid.Skill
		err := row.Scan(&s.SkillName)
		return s, err
	})
	if err != nil {
		return nil, persistErr("scan elec-id skills", err)
	}

	quals, err := r.pool.Query(ctx, `SELECT qualification_name FROM elec_id_qualifications WHERE user_id = $1 ORDER BY position`, userID)
	if err != nil {
		return nil, persistErr("load elec-id qualifications", err)
	}
	p.Qualifications, err = pgx.CollectRows(quals, func(row pgx.CollectableRow) (elecid.Qualification, error) {
		var q elecid.Qualification
		err := row.Scan(&q.QualificationName)
		return q, err
	})
	if err != nil {
		return nil, persistErr("scan elec-id qualifications", err)
	}

	work, err := r.pool.Query(ctx, `
SELECT id, job_title, employer_name, start_date, end_date, is_current, description
FROM elec_id_work_history WHERE user_id = $1 ORDER BY position
`, userID)
	if err != nil {
		return nil, persistErr("load elec-id work history", err)
	}
	p.WorkHistory, err = pgx.CollectRows(work, func(row pgx.CollectableRow) (elecid.WorkHistory, error) {
		var w elecid.WorkHistory
		err := row.Scan(&w.ID, &w.JobTitle, &w.EmployerName, &w.StartDate, &w.EndDate, &w.IsCurrent, &w.Description)
		return w, err
	})
	if err != nil {
		return nil, persistErr("scan elec-id work history", err)
	}

	training, err := r.pool.Query(ctx, `
SELECT id, training_name, provider, completed_date, status
FROM elec_id_training WHERE user_id = $1 ORDER BY position
`, userID)
	if err != nil {
		return nil, persistErr("load elec-id training", err)
	}
	p.Training, err = pgx.CollectRows(training, func(row pgx.CollectableRow) (elecid.Training, error) {
		var t elecid.Training
		err := row.Scan(&t.ID, &t.TrainingName, &t.Provider, &t.CompletedDate, &t.Status)
		return t, err
	})
	if err != nil {
		return nil, persistErr("scan elec-id training", err)
	}
	return p, nil
}

func (r *ElecIDRepository) Replace(ctx context.Context, userID uuid.UUID, p elecid.Profile) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		// child rows go with the profile row via ON DELETE CASCADE
		if _, err := tx.Exec(ctx, `DELETE FROM elec_id_profiles WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("clear elec-id profile: %w", err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO elec_id_profiles (user_id, updated_at) VALUES ($1, $2)`, userID, time.Now().UTC()); err != nil {
			return fmt.Errorf("insert elec-id profile: %w", err)
		}

		batch := &pgx.Batch{}
		for i, s := range p.Skills {
			batch.Queue(`INSERT INTO elec_id_skills (user_id, position, skill_name) VALUES ($1, $2, $3)`, userID, i, s.SkillName)
		}
		for i, q := range p.Qualifications {
			batch.Queue(`INSERT INTO elec_id_qualifications (user_id, position, qualification_name) VALUES ($1, $2, $3)`, userID, i, q.QualificationName)
		}
		for i, w := range p.WorkHistory {
			batch.Queue(`
INSERT INTO elec_id_work_history (id, user_id, position, job_title, employer_name, start_date, end_date, is_current, description)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, w.ID, userID, i, w.JobTitle, w.EmployerName, w.StartDate, w.EndDate, w.IsCurrent, w.Description)
		}
		for i, t := range p.Training {
			batch.Queue(`
INSERT INTO elec_id_training (id, user_id, position, training_name, provider, completed_date, status)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, t.ID, userID, i, t.TrainingName, t.Provider, t.CompletedDate, t.Status)
		}
		if batch.Len() == 0 {
			return nil
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert elec-id records: %w", err)
		}
		return nil
	})
	if err != nil {
		return persistErr("replace elec-id profile", err)
	}
	return nil
}

// persistErr surfaces driver failures as persistence errors so the API reports them with their own code.
func persistErr(op string, err error) error {
	return &cv.PersistenceError{Message: op, Err: err}
}
