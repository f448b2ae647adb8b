package experience

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mehmetcc/folio/internal/dbx"
	"go.uber.org/zap"
)

type ExperienceRepo interface {
	List(ctx context.Context, includeHidden bool) ([]Experience, error)
	Get(ctx context.Context, id int64) (*Experience, error)
	Create(ctx context.Context, e *Experience) (*Experience, error)
	Update(ctx context.Context, e *Experience) (*Experience, error)
	Delete(ctx context.Context, id int64) error
}

type experienceRepo struct {
	db     dbx.DBTX
	logger *zap.Logger
}

func NewExperienceRepo(db dbx.DBTX, logger *zap.Logger) ExperienceRepo {
	return &experienceRepo{db: db, logger: logger}
}

const (
	experienceColumns = `id, title, company, location, start_date, end_date, is_current, duration,
						responsibilities, achievements, technologies, color, sort_order, is_visible, created_at`

	listExperiencesQuery = `
						SELECT ` + experienceColumns + `
						FROM experiences
						WHERE is_visible OR $1
						ORDER BY sort_order DESC, start_date DESC NULLS LAST, id DESC
						`
	getExperienceQuery    = `SELECT ` + experienceColumns + ` FROM experiences WHERE id = $1`
	insertExperienceQuery = `
						INSERT INTO experiences (title, company, location, start_date, end_date, is_current,
						duration, responsibilities, achievements, technologies, color, sort_order, is_visible)
						VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
						RETURNING ` + experienceColumns
	updateExperienceQuery = `
						UPDATE experiences SET title = $2, company = $3, location = $4, start_date = $5,
						end_date = $6, is_current = $7, duration = $8, responsibilities = $9,
						achievements = $10, technologies = $11, color = $12, sort_order = $13, is_visible = $14
						WHERE id = $1
						RETURNING ` + experienceColumns
	deleteExperienceQuery = `DELETE FROM experiences WHERE id = $1`
)

func scanExperience(row dbx.Scanner) (*Experience, error) {
	var (
		e                  Experience
		resp, achiev, tech dbx.JSON[[]string]
	)
	err := row.Scan(&e.ID, &e.Title, &e.Company, &e.Location, &e.StartDate, &e.EndDate, &e.IsCurrent,
		&e.Duration, &resp, &achiev, &tech, &e.Color, &e.Order, &e.IsVisible, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.Responsibilities = orEmpty(resp.V)
	e.Achievements = orEmpty(achiev.V)
	e.Technologies = orEmpty(tech.V)
	return &e, nil
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func (r *experienceRepo) List(ctx context.Context, includeHidden bool) ([]Experience, error) {
	rows, err := r.db.QueryContext(ctx, listExperiencesQuery, includeHidden)
	if err != nil {
		r.logger.Error("failed to list experiences", zap.Error(err))
		return nil, err
	}
	return dbx.CollectRows(rows, scanExperience)
}

func (r *experienceRepo) Get(ctx context.Context, id int64) (*Experience, error) {
	e, err := scanExperience(r.db.QueryRowContext(ctx, getExperienceQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return e, err
}

func (r *experienceRepo) Create(ctx context.Context, e *Experience) (*Experience, error) {
	created, err := scanExperience(r.db.QueryRowContext(ctx, insertExperienceQuery,
		e.Title, e.Company, e.Location, e.StartDate, e.EndDate, e.IsCurrent, e.Duration,
		dbx.NewJSON(e.Responsibilities), dbx.NewJSON(e.Achievements), dbx.NewJSON(e.Technologies),
		e.Color, e.Order, e.IsVisible,
	))
	if err != nil {
		r.logger.Error("failed to insert experience", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (r *experienceRepo) Update(ctx context.Context, e *Experience) (*Experience, error) {
	updated, err := scanExperience(r.db.QueryRowContext(ctx, updateExperienceQuery,
		e.ID, e.Title, e.Company, e.Location, e.StartDate, e.EndDate, e.IsCurrent, e.Duration,
		dbx.NewJSON(e.Responsibilities), dbx.NewJSON(e.Achievements), dbx.NewJSON(e.Technologies),
		e.Color, e.Order, e.IsVisible,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.logger.Error("failed to update experience", zap.Int64("id", e.ID), zap.Error(err))
		return nil, err
	}
	return updated, nil
}

func (r *experienceRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteExperienceQuery, id)
	if err != nil {
		r.logger.Error("failed to delete experience", zap.Int64("id", id), zap.Error(err))
		return err
	}
	ok, err := dbx.RowsAffected(res)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
