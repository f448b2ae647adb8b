package project

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mehmetcc/folio/internal/dbx"
	"go.uber.org/zap"
)

type ProjectRepo interface {
	List(ctx context.Context, includeHidden bool) ([]Project, error)
	Get(ctx context.Context, id int64) (*Project, error)
	Create(ctx context.Context, p *Project) (*Project, error)
	Update(ctx context.Context, p *Project) (*Project, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type projectRepo struct {
	db     dbx.DBTX
	logger *zap.Logger
}

func NewProjectRepo(db dbx.DBTX, logger *zap.Logger) ProjectRepo {
	return &projectRepo{db: db, logger: logger}
}

const (
	projectColumns = `id, title, description, tech, links, image, gallery, project_type,
						start_date, end_date, role, team_size, categories, is_visible, sort_order, created_at`

	listProjectsQuery = `
						SELECT ` + projectColumns + `
						FROM projects
						WHERE is_visible OR $1
						ORDER BY sort_order ASC, id ASC
						`
	getProjectQuery = `
						SELECT ` + projectColumns + `
						FROM projects WHERE id = $1
						`
	insertProjectQuery = `
						INSERT INTO projects (title, description, tech, links, image, gallery, project_type,
						start_date, end_date, role, team_size, categories, is_visible, sort_order)
						VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
						RETURNING ` + projectColumns
	updateProjectQuery = `
						UPDATE projects SET title = $2, description = $3, tech = $4, links = $5, image = $6,
						gallery = $7, project_type = $8, start_date = $9, end_date = $10, role = $11,
						team_size = $12, categories = $13, is_visible = $14, sort_order = $15
						WHERE id = $1
						RETURNING ` + projectColumns
	deleteProjectQuery = `DELETE FROM projects WHERE id = $1`
	countProjectsQuery = `SELECT count(*) FROM projects`
)

func scanProject(row dbx.Scanner) (*Project, error) {
	var (
		p          Project
		tech       dbx.JSON[[]string]
		links      dbx.JSON[[]Link]
		gallery    dbx.JSON[[]string]
		categories dbx.JSON[[]string]
	)
	err := row.Scan(&p.ID, &p.Title, &p.Description, &tech, &links, &p.Image, &gallery, &p.ProjectType,
		&p.StartDate, &p.EndDate, &p.Role, &p.TeamSize, &categories, &p.IsVisible, &p.Order, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Tech, p.Links, p.Gallery, p.Categories = tech.V, links.V, gallery.V, categories.V
	return &p, nil
}

func (r *projectRepo) List(ctx context.Context, includeHidden bool) ([]Project, error) {
	rows, err := r.db.QueryContext(ctx, listProjectsQuery, includeHidden)
	if err != nil {
		r.logger.Error("failed to list projects", zap.Error(err))
		return nil, err
	}
	return dbx.CollectRows(rows, scanProject)
}

func (r *projectRepo) Get(ctx context.Context, id int64) (*Project, error) {
	p, err := scanProject(r.db.QueryRowContext(ctx, getProjectQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.logger.Error("failed to get project", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *projectRepo) Create(ctx context.Context, p *Project) (*Project, error) {
	created, err := scanProject(r.db.QueryRowContext(ctx, insertProjectQuery,
		p.Title, p.Description, dbx.NewJSON(p.Tech), dbx.NewJSON(p.Links), p.Image, dbx.NewJSON(p.Gallery),
		p.ProjectType, p.StartDate, p.EndDate, p.Role, p.TeamSize, dbx.NewJSON(p.Categories), p.IsVisible, p.Order,
	))
	if err != nil {
		r.logger.Error("failed to insert project", zap.Error(err))
		return nil, err
	}
	r.logger.Debug("project created", zap.Int64("id", created.ID))
	return created, nil
}

func (r *projectRepo) Update(ctx context.Context, p *Project) (*Project, error) {
	updated, err := scanProject(r.db.QueryRowContext(ctx, updateProjectQuery,
		p.ID, p.Title, p.Description, dbx.NewJSON(p.Tech), dbx.NewJSON(p.Links), p.Image, dbx.NewJSON(p.Gallery),
		p.ProjectType, p.StartDate, p.EndDate, p.Role, p.TeamSize, dbx.NewJSON(p.Categories), p.IsVisible, p.Order,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.logger.Error("failed to update project", zap.Int64("id", p.ID), zap.Error(err))
		return nil, err
	}
	return updated, nil
}

func (r *projectRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteProjectQuery, id)
	if err != nil {
		r.logger.Error("failed to delete project", zap.Int64("id", id), zap.Error(err))
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

func (r *projectRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, countProjectsQuery).Scan(&n)
	return n, err
}
