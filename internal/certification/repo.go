package certification

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mehmetcc/folio/internal/dbx"
	"go.uber.org/zap"
)

type CertificationRepo interface {
	List(ctx context.Context) ([]Certification, error)
	Get(ctx context.Context, id int64) (*Certification, error)
	Create(ctx context.Context, c *Certification) (*Certification, error)
	Update(ctx context.Context, c *Certification) (*Certification, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type certificationRepo struct {
	db     dbx.DBTX
	logger *zap.Logger
}

func NewCertificationRepo(db dbx.DBTX, logger *zap.Logger) CertificationRepo {
	return &certificationRepo{db: db, logger: logger}
}

const (
	certColumns = `id, name, issuer, issued, credential_url, image, description, skills, certificate_id, expiration_date`

	listCertsQuery  = `SELECT ` + certColumns + ` FROM certifications ORDER BY id ASC`
	getCertQuery    = `SELECT ` + certColumns + ` FROM certifications WHERE id = $1`
	insertCertQuery = `
						INSERT INTO certifications (name, issuer, issued, credential_url, image, description,
						skills, certificate_id, expiration_date)
						VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
						RETURNING ` + certColumns
	updateCertQuery = `
						UPDATE certifications SET name = $2, issuer = $3, issued = $4, credential_url = $5,
						image = $6, description = $7, skills = $8, certificate_id = $9, expiration_date = $10
						WHERE id = $1
						RETURNING ` + certColumns
	deleteCertQuery = `DELETE FROM certifications WHERE id = $1`
	countCertsQuery = `SELECT count(*) FROM certifications`
)

func scanCertification(row dbx.Scanner) (*Certification, error) {
	var (
		c      Certification
		skills dbx.JSON[[]string]
	)
	err := row.Scan(&c.ID, &c.Name, &c.Issuer, &c.Date, &c.CredentialURL, &c.Image, &c.Description,
		&skills, &c.CertificateID, &c.ExpirationDate)
	if err != nil {
		return nil, err
	}
	c.Skills = skills.V
	if c.Skills == nil {
		c.Skills = []string{}
	}
	return &c, nil
}

func (r *certificationRepo) List(ctx context.Context) ([]Certification, error) {
	rows, err := r.db.QueryContext(ctx, listCertsQuery)
	if err != nil {
		r.logger.Error("failed to list certifications", zap.Error(err))
		return nil, err
	}
	return dbx.CollectRows(rows, scanCertification)
}

func (r *certificationRepo) Get(ctx context.Context, id int64) (*Certification, error) {
	c, err := scanCertification(r.db.QueryRowContext(ctx, getCertQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

func (r *certificationRepo) Create(ctx context.Context, c *Certification) (*Certification, error) {
	created, err := scanCertification(r.db.QueryRowContext(ctx, insertCertQuery,
		c.Name, c.Issuer, c.Date, c.CredentialURL, c.Image, c.Description,
		dbx.NewJSON(c.Skills), c.CertificateID, c.ExpirationDate,
	))
	if err != nil {
		r.logger.Error("failed to insert certification", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (r *certificationRepo) Update(ctx context.Context, c *Certification) (*Certification, error) {
	updated, err := scanCertification(r.db.QueryRowContext(ctx, updateCertQuery,
		c.ID, c.Name, c.Issuer, c.Date, c.CredentialURL, c.Image, c.Description,
		dbx.NewJSON(c.Skills), c.CertificateID, c.ExpirationDate,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.logger.Error("failed to update certification", zap.Int64("id", c.ID), zap.Error(err))
		return nil, err
	}
	return updated, nil
}

func (r *certificationRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteCertQuery, id)
	if err != nil {
		r.logger.Error("failed to delete certification", zap.Int64("id", id), zap.Error(err))
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

func (r *certificationRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, countCertsQuery).Scan(&n)
	return n, err
}
