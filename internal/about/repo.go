package about

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mehmetcc/folio/internal/dbx"
	"go.uber.org/zap"
)

// AboutRepo stores at most one row. Get returns the oldest one if several exist.
type AboutRepo interface {
	Get(ctx context.Context) (*About, error)
	Create(ctx context.Context, a *About) (*About, error)
	Update(ctx context.Context, a *About) (*About, error)
	Delete(ctx context.Context) error
}

type aboutRepo struct {
	db     dbx.DBTX
	logger *zap.Logger
}

func NewAboutRepo(db dbx.DBTX, logger *zap.Logger) AboutRepo {
	return &aboutRepo{db: db, logger: logger}
}

const (
	aboutColumns = `id, name, headline, bio, photo, cover_image, location, email, phone, birthday, resume_url, social_links`

	getAboutQuery    = `SELECT ` + aboutColumns + ` FROM about ORDER BY id ASC LIMIT 1`
	insertAboutQuery = `
						INSERT INTO about (name, headline, bio, photo, cover_image, location, email, phone,
						birthday, resume_url, social_links)
						SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
						WHERE NOT EXISTS (SELECT 1 FROM about)
						RETURNING ` + aboutColumns
	updateAboutQuery = `
						UPDATE about SET name = $2, headline = $3, bio = $4, photo = $5, cover_image = $6,
						location = $7, email = $8, phone = $9, birthday = $10, resume_url = $11, social_links = $12
						WHERE id = $1
						RETURNING ` + aboutColumns
	deleteAboutQuery = `DELETE FROM about`
)

func scanAbout(row dbx.Scanner) (*About, error) {
	var (
		a     About
		links dbx.JSON[map[string]string]
	)
	err := row.Scan(&a.ID, &a.Name, &a.Headline, &a.Bio, &a.Photo, &a.CoverImage, &a.Location,
		&a.Email, &a.Phone, &a.Birthday, &a.ResumeURL, &links)
	if err != nil {
		return nil, err
	}
	a.SocialLinks = links.V
	if a.SocialLinks == nil {
		a.SocialLinks = map[string]string{}
	}
	return &a, nil
}

func (r *aboutRepo) Get(ctx context.Context) (*About, error) {
	a, err := scanAbout(r.db.QueryRowContext(ctx, getAboutQuery))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

// Create inserts only while the table is empty and returns ErrAlreadyExists otherwise.
func (r *aboutRepo) Create(ctx context.Context, a *About) (*About, error) {
	created, err := scanAbout(r.db.QueryRowContext(ctx, insertAboutQuery,
		a.Name, a.Headline, a.Bio, a.Photo, a.CoverImage, a.Location, a.Email, a.Phone,
		a.Birthday, a.ResumeURL, dbx.NewJSON(a.SocialLinks),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAlreadyExists
		}
		r.logger.Error("failed to insert about", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (r *aboutRepo) Update(ctx context.Context, a *About) (*About, error) {
	updated, err := scanAbout(r.db.QueryRowContext(ctx, updateAboutQuery,
		a.ID, a.Name, a.Headline, a.Bio, a.Photo, a.CoverImage, a.Location, a.Email, a.Phone,
		a.Birthday, a.ResumeURL, dbx.NewJSON(a.SocialLinks),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.logger.Error("failed to update about", zap.Error(err))
		return nil, err
	}
	return updated, nil
}

func (r *aboutRepo) Delete(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, deleteAboutQuery); err != nil {
		r.logger.Error("failed to delete about", zap.Error(err))
		return err
	}
	return nil
}
