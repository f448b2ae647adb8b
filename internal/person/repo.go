package person

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type PersonDTO struct {
	Username     string
	Email        string
	PasswordHash string
}

type PersonRepo interface {
	Create(ctx context.Context, dto *PersonDTO) (*Person, error)
	GetByID(ctx context.Context, id int64) (*Person, error)
	// GetByLogin matches login against username or email.
	GetByLogin(ctx context.Context, login string) (*Person, error)
	TouchLastLogin(ctx context.Context, id int64) error
	List(ctx context.Context) ([]Person, error)
	ToggleAdmin(ctx context.Context, id int64) (*Person, error)
	Count(ctx context.Context) (int64, error)
}

type personRepo struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPersonRepo(db *sql.DB, logger *zap.Logger) PersonRepo {
	return &personRepo{
		db:     db,
		logger: logger,
	}
}

const (
	personColumns = `id, username, email, password_hash, is_admin, created_at, last_login`

	insertPersonQuery = `
						INSERT INTO users (username, email, password_hash, is_admin)
						VALUES ($1, $2, $3, FALSE)
						RETURNING ` + personColumns
	selectPersonByIDQuery = `
						SELECT ` + personColumns + `
						FROM users WHERE id = $1
						`
	selectPersonByLoginQuery = `
						SELECT ` + personColumns + `
						FROM users WHERE username = $1 OR email = lower($1)
						LIMIT 1
						`
	touchLastLoginQuery = `
						UPDATE users SET last_login = now() WHERE id = $1
						`
	listPersonsQuery = `
						SELECT ` + personColumns + `
						FROM users ORDER BY created_at DESC, id DESC
						`
	toggleAdminQuery = `
						UPDATE users SET is_admin = NOT is_admin WHERE id = $1
						RETURNING ` + personColumns
	countPersonsQuery = `SELECT count(*) FROM users`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner) (*Person, error) {
	var p Person
	if err := row.Scan(&p.ID, &p.Username, &p.Email, &p.PasswordHash, &p.IsAdmin, &p.CreatedAt, &p.LastLogin); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *personRepo) Create(ctx context.Context, dto *PersonDTO) (*Person, error) {
	row := p.db.QueryRowContext(ctx,
		insertPersonQuery,
		strings.TrimSpace(dto.Username),
		strings.ToLower(strings.TrimSpace(dto.Email)),
		dto.PasswordHash,
	)

	created, err := scanPerson(row)
	if err != nil {
		// context canceled/deadline
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			p.logger.Warn("create person canceled/timed out", zap.Error(err))
			return nil, err
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			switch pgErr.ConstraintName {
			case "users_email_key":
				p.logger.Debug("duplicate email", zap.String("email", dto.Email))
				return nil, ErrDuplicateEmail
			case "users_username_key":
				p.logger.Debug("duplicate username", zap.String("username", dto.Username))
				return nil, ErrDuplicateUsername
			}
		}
		if pgErr != nil {
			p.logger.Error("postgres error",
				zap.String("code", pgErr.Code),
				zap.String("msg", pgErr.Message),
				zap.String("detail", pgErr.Detail),
			)
			return nil, err
		}

		p.logger.Error("driver/scan error", zap.Error(err))
		return nil, err
	}

	p.logger.Debug("person created", zap.Int64("id", created.ID))
	return created, nil
}

func (p *personRepo) GetByID(ctx context.Context, id int64) (*Person, error) {
	found, err := scanPerson(p.db.QueryRowContext(ctx, selectPersonByIDQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Error("failed to get person by id", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return found, nil
}

func (p *personRepo) GetByLogin(ctx context.Context, login string) (*Person, error) {
	found, err := scanPerson(p.db.QueryRowContext(ctx, selectPersonByLoginQuery, strings.TrimSpace(login)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Error("failed to get person by login", zap.Error(err))
		return nil, err
	}
	return found, nil
}

func (p *personRepo) TouchLastLogin(ctx context.Context, id int64) error {
	if _, err := p.db.ExecContext(ctx, touchLastLoginQuery, id); err != nil {
		p.logger.Error("failed to update last login", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (p *personRepo) List(ctx context.Context) ([]Person, error) {
	rows, err := p.db.QueryContext(ctx, listPersonsQuery)
	if err != nil {
		p.logger.Error("failed to list persons", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	out := []Person{}
	for rows.Next() {
		found, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *found)
	}
	return out, rows.Err()
}

func (p *personRepo) ToggleAdmin(ctx context.Context, id int64) (*Person, error) {
	updated, err := scanPerson(p.db.QueryRowContext(ctx, toggleAdminQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Error("failed to toggle admin", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	p.logger.Info("admin flag toggled", zap.Int64("id", id), zap.Bool("is_admin", updated.IsAdmin))
	return updated, nil
}

func (p *personRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := p.db.QueryRowContext(ctx, countPersonsQuery).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
