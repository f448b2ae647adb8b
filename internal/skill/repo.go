package skill

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mehmetcc/folio/internal/dbx"
	"go.uber.org/zap"
)

type SkillRepo interface {
	List(ctx context.Context, includeHidden bool) ([]Skill, error)
	Get(ctx context.Context, id int64) (*Skill, error)
	Create(ctx context.Context, s *Skill) (*Skill, error)
	Update(ctx context.Context, s *Skill) (*Skill, error)
	Delete(ctx context.Context, id int64) error
}

type skillRepo struct {
	db     dbx.DBTX
	logger *zap.Logger
}

func NewSkillRepo(db dbx.DBTX, logger *zap.Logger) SkillRepo {
	return &skillRepo{db: db, logger: logger}
}

const (
	skillColumns = `id, title, skills, color, icon, sort_order, is_visible, created_at`

	listSkillsQuery = `
						SELECT ` + skillColumns + `
						FROM technical_skills
						WHERE is_visible OR $1
						ORDER BY sort_order ASC, id ASC
						`
	getSkillQuery    = `SELECT ` + skillColumns + ` FROM technical_skills WHERE id = $1`
	insertSkillQuery = `
						INSERT INTO technical_skills (title, skills, color, icon, sort_order, is_visible)
						VALUES ($1, $2, $3, $4, $5, $6)
						RETURNING ` + skillColumns
	updateSkillQuery = `
						UPDATE technical_skills SET title = $2, skills = $3, color = $4, icon = $5,
						sort_order = $6, is_visible = $7
						WHERE id = $1
						RETURNING ` + skillColumns
	deleteSkillQuery = `DELETE FROM technical_skills WHERE id = $1`
)

func scanSkill(row dbx.Scanner) (*Skill, error) {
	var (
		s      Skill
		skills dbx.JSON[[]string]
	)
	if err := row.Scan(&s.ID, &s.Title, &skills, &s.Color, &s.Icon, &s.Order, &s.IsVisible, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.Skills = skills.V
	if s.Skills == nil {
		s.Skills = []string{}
	}
	return &s, nil
}

func (r *skillRepo) List(ctx context.Context, includeHidden bool) ([]Skill, error) {
	rows, err := r.db.QueryContext(ctx, listSkillsQuery, includeHidden)
	if err != nil {
		r.logger.Error("failed to list technical skills", zap.Error(err))
		return nil, err
	}
	return dbx.CollectRows(rows, scanSkill)
}

func (r *skillRepo) Get(ctx context.Context, id int64) (*Skill, error) {
	s, err := scanSkill(r.db.QueryRowContext(ctx, getSkillQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return s, err
}

func (r *skillRepo) Create(ctx context.Context, s *Skill) (*Skill, error) {
	created, err := scanSkill(r.db.QueryRowContext(ctx, insertSkillQuery,
		s.Title, dbx.NewJSON(s.Skills), s.Color, s.Icon, s.Order, s.IsVisible,
	))
	if err != nil {
		r.logger.Error("failed to insert technical skill", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (r *skillRepo) Update(ctx context.Context, s *Skill) (*Skill, error) {
	updated, err := scanSkill(r.db.QueryRowContext(ctx, updateSkillQuery,
		s.ID, s.Title, dbx.NewJSON(s.Skills), s.Color, s.Icon, s.Order, s.IsVisible,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.logger.Error("failed to update technical skill", zap.Int64("id", s.ID), zap.Error(err))
		return nil, err
	}
	return updated, nil
}

func (r *skillRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteSkillQuery, id)
	if err != nil {
		r.logger.Error("failed to delete technical skill", zap.Int64("id", id), zap.Error(err))
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
