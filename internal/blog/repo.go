package blog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mehmetcc/folio/internal/dbx"
	"go.uber.org/zap"
)

type BlogRepo interface {
	List(ctx context.Context, includeHidden bool) ([]Post, error)
	Get(ctx context.Context, id int64) (*Post, error)
	Create(ctx context.Context, p *Post) (*Post, error)
	Update(ctx context.Context, p *Post) (*Post, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type blogRepo struct {
	db     dbx.DBTX
	logger *zap.Logger
}

func NewBlogRepo(db dbx.DBTX, logger *zap.Logger) BlogRepo {
	return &blogRepo{db: db, logger: logger}
}

const (
	blogColumns = `id, title, excerpt, content, cover_image, published_at, reading_time,
						featured, is_visible, author_name, author_email, tags`

	listBlogsQuery = `
						SELECT ` + blogColumns + `
						FROM blogs
						WHERE is_visible OR $1
						ORDER BY published_at DESC, id DESC
						`
	getBlogQuery = `
						SELECT ` + blogColumns + `
						FROM blogs WHERE id = $1
						`
	insertBlogQuery = `
						INSERT INTO blogs (title, excerpt, content, cover_image, published_at, reading_time,
						featured, is_visible, author_name, author_email, tags)
						VALUES ($1, $2, $3, $4, COALESCE($5, now()), $6, $7, $8, $9, $10, $11)
						RETURNING ` + blogColumns
	updateBlogQuery = `
						UPDATE blogs SET title = $2, excerpt = $3, content = $4, cover_image = $5,
						published_at = $6, reading_time = $7, featured = $8, is_visible = $9,
						author_name = $10, author_email = $11, tags = $12
						WHERE id = $1
						RETURNING ` + blogColumns
	deleteBlogQuery = `DELETE FROM blogs WHERE id = $1`
	countBlogsQuery = `SELECT count(*) FROM blogs`
)

func scanPost(row dbx.Scanner) (*Post, error) {
	var (
		p           Post
		authorName  string
		authorEmail string
		tags        dbx.JSON[[]string]
	)
	err := row.Scan(&p.ID, &p.Title, &p.Excerpt, &p.Content, &p.CoverImage, &p.Date, &p.ReadingTime,
		&p.Featured, &p.IsVisible, &authorName, &authorEmail, &tags)
	if err != nil {
		return nil, err
	}
	if authorName != "" {
		p.Author = &Author{Name: authorName, Email: authorEmail}
	}
	p.Tags = tags.V
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return &p, nil
}

func authorColumns(p *Post) (string, string) {
	if p.Author == nil {
		return "", ""
	}
	return p.Author.Name, p.Author.Email
}

func (r *blogRepo) List(ctx context.Context, includeHidden bool) ([]Post, error) {
	rows, err := r.db.QueryContext(ctx, listBlogsQuery, includeHidden)
	if err != nil {
		r.logger.Error("failed to list blogs", zap.Error(err))
		return nil, err
	}
	return dbx.CollectRows(rows, scanPost)
}

func (r *blogRepo) Get(ctx context.Context, id int64) (*Post, error) {
	p, err := scanPost(r.db.QueryRowContext(ctx, getBlogQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.logger.Error("failed to get blog", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *blogRepo) Create(ctx context.Context, p *Post) (*Post, error) {
	var date any
	if !p.Date.IsZero() {
		date = p.Date
	}
	name, email := authorColumns(p)
	created, err := scanPost(r.db.QueryRowContext(ctx, insertBlogQuery,
		p.Title, p.Excerpt, p.Content, p.CoverImage, date, p.ReadingTime,
		p.Featured, p.IsVisible, name, email, dbx.NewJSON(p.Tags),
	))
	if err != nil {
		r.logger.Error("failed to insert blog", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (r *blogRepo) Update(ctx context.Context, p *Post) (*Post, error) {
	name, email := authorColumns(p)
	updated, err := scanPost(r.db.QueryRowContext(ctx, updateBlogQuery,
		p.ID, p.Title, p.Excerpt, p.Content, p.CoverImage, p.Date, p.ReadingTime,
		p.Featured, p.IsVisible, name, email, dbx.NewJSON(p.Tags),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.logger.Error("failed to update blog", zap.Int64("id", p.ID), zap.Error(err))
		return nil, err
	}
	return updated, nil
}

func (r *blogRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteBlogQuery, id)
	if err != nil {
		r.logger.Error("failed to delete blog", zap.Int64("id", id), zap.Error(err))
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

func (r *blogRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, countBlogsQuery).Scan(&n)
	return n, err
}
