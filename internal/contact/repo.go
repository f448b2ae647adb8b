package contact

import (
	"context"

	"github.com/mehmetcc/folio/internal/dbx"
	"go.uber.org/zap"
)

type MessageRepo interface {
	Create(ctx context.Context, m *Message) (*Message, error)
	List(ctx context.Context) ([]Message, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type messageRepo struct {
	db     dbx.DBTX
	logger *zap.Logger
}

func NewMessageRepo(db dbx.DBTX, logger *zap.Logger) MessageRepo {
	return &messageRepo{db: db, logger: logger}
}

const (
	messageColumns = `id, name, email, subject, message, phone, preferred_contact_method, is_read, created_at`

	insertMessageQuery = `
						INSERT INTO contact_messages (name, email, subject, message, phone, preferred_contact_method)
						VALUES ($1, $2, $3, $4, $5, $6)
						RETURNING ` + messageColumns
	listMessagesQuery  = `SELECT ` + messageColumns + ` FROM contact_messages ORDER BY created_at DESC, id DESC`
	markReadQuery      = `UPDATE contact_messages SET is_read = TRUE WHERE id = $1`
	markAllReadQuery   = `UPDATE contact_messages SET is_read = TRUE WHERE NOT is_read`
	deleteMessageQuery = `DELETE FROM contact_messages WHERE id = $1`
	countMessagesQuery = `SELECT count(*) FROM contact_messages`
)

func scanMessage(row dbx.Scanner) (*Message, error) {
	var m Message
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Phone,
		&m.PreferredContactMethod, &m.IsRead, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *messageRepo) Create(ctx context.Context, m *Message) (*Message, error) {
	created, err := scanMessage(r.db.QueryRowContext(ctx, insertMessageQuery,
		m.Name, m.Email, m.Subject, m.Message, m.Phone, m.PreferredContactMethod,
	))
	if err != nil {
		r.logger.Error("failed to insert contact message", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (r *messageRepo) List(ctx context.Context) ([]Message, error) {
	rows, err := r.db.QueryContext(ctx, listMessagesQuery)
	if err != nil {
		r.logger.Error("failed to list contact messages", zap.Error(err))
		return nil, err
	}
	return dbx.CollectRows(rows, scanMessage)
}

// MarkRead is idempotent: marking an already read message succeeds.
func (r *messageRepo) MarkRead(ctx context.Context, id int64) error {
	return r.execOne(ctx, markReadQuery, id)
}

// MarkAllRead returns how many messages changed state.
func (r *messageRepo) MarkAllRead(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, markAllReadQuery)
	if err != nil {
		r.logger.Error("failed to mark contact messages read", zap.Error(err))
		return 0, err
	}
	return res.RowsAffected()
}

func (r *messageRepo) Delete(ctx context.Context, id int64) error {
	return r.execOne(ctx, deleteMessageQuery, id)
}

func (r *messageRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, countMessagesQuery).Scan(&n)
	return n, err
}

func (r *messageRepo) execOne(ctx context.Context, query string, id int64) error {
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("contact message write failed", zap.Int64("id", id), zap.Error(err))
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
