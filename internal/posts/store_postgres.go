// Copyright (c) 2026 Inkwell. All rights reserved.

package posts

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-dev/inkwell/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const postColumns = `id, authorid, title, slug, summary, content, published, publishedat, createdat, updatedat`

func (repository *PostgresRepository) List(ctx context.Context, f Filter, limit, offset int) ([]*Post, int, error) {
	where := ` WHERE deletedat IS NULL`
	args := []any{}

	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		where += fmt.Sprintf(" AND title ILIKE $%d", len(args))
	}
	if f.AuthorID != "" {
		args = append(args, f.AuthorID)
		where += fmt.Sprintf(" AND authorid = $%d", len(args))
	}
	if f.Published != nil {
		args = append(args, *f.Published)
		where += fmt.Sprintf(" AND published = $%d", len(args))
	}

	var total int
	countQuery := `SELECT count(*) FROM blog.post` + where
	if err := repository.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}

	query := `SELECT ` + postColumns + ` FROM blog.post` + where +
		fmt.Sprintf(" ORDER BY createdat DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}
	defer rows.Close()

	var posts []*Post
	for rows.Next() {
		post := &Post{}
		if err := rows.Scan(
			&post.ID, &post.AuthorID, &post.Title, &post.Slug, &post.Summary,
			&post.Content, &post.Published, &post.PublishedAt, &post.CreatedAt, &post.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "")
		}
		posts = append(posts, post)
	}

	return posts, total, nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Post, error) {
	query := `SELECT ` + postColumns + ` FROM blog.post WHERE id = $1 AND deletedat IS NULL`
	return repository.scanOne(ctx, query, id)
}

func (repository *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*Post, error) {
	query := `SELECT ` + postColumns + ` FROM blog.post WHERE slug = $1 AND deletedat IS NULL`
	return repository.scanOne(ctx, query, slug)
}

func (repository *PostgresRepository) scanOne(ctx context.Context, query string, arg any) (*Post, error) {
	post := &Post{}
	err := repository.db.QueryRow(ctx, query, arg).Scan(
		&post.ID, &post.AuthorID, &post.Title, &post.Slug, &post.Summary,
		&post.Content, &post.Published, &post.PublishedAt, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}
	return post, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, post *Post) error {
	const query = `
		INSERT INTO blog.post (
			id, authorid, title, slug, summary, content, published, publishedat, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING createdat, updatedat`

	err := repository.db.QueryRow(ctx, query,
		post.ID, post.AuthorID, post.Title, post.Slug, post.Summary,
		post.Content, post.Published, post.PublishedAt,
	).Scan(&post.CreatedAt, &post.UpdatedAt)

	return dberr.Wrap(err, "A post with this slug already exists")
}

func (repository *PostgresRepository) Update(ctx context.Context, post *Post) error {
	const query = `
		UPDATE blog.post
		SET title = $2, summary = $3, content = $4, published = $5, publishedat = $6, updatedat = NOW()
		WHERE id = $1 AND deletedat IS NULL
		RETURNING updatedat`

	err := repository.db.QueryRow(ctx, query,
		post.ID, post.Title, post.Summary, post.Content, post.Published, post.PublishedAt,
	).Scan(&post.UpdatedAt)

	return dberr.Wrap(err, "")
}

func (repository *PostgresRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE blog.post SET deletedat = $2 WHERE id = $1 AND deletedat IS NULL`

	cmd, err := repository.db.Exec(ctx, query, id, time.Now())
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
