// Copyright (c) 2026 Inkwell. All rights reserved.

package comments

import (
	"context"
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

func (repository *PostgresRepository) ListByPost(ctx context.Context, postID string, limit, offset int) ([]*Comment, int, error) {
	var total int
	const countQuery = `SELECT count(*) FROM blog.comment WHERE postid = $1 AND deletedat IS NULL`
	if err := repository.db.QueryRow(ctx, countQuery, postID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}

	// Join the account table so each comment carries its author's display name.
	const query = `
		SELECT c.id, c.postid, c.authorid, a.username, c.content, c.createdat, c.updatedat
		FROM blog.comment c
		JOIN users.account a ON a.id = c.authorid
		WHERE c.postid = $1 AND c.deletedat IS NULL
		ORDER BY c.createdat ASC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(ctx, query, postID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}
	defer rows.Close()

	var comments []*Comment
	for rows.Next() {
		comment := &Comment{}
		if err := rows.Scan(
			&comment.ID, &comment.PostID, &comment.AuthorID, &comment.AuthorUsername,
			&comment.Content, &comment.CreatedAt, &comment.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "")
		}
		comments = append(comments, comment)
	}

	return comments, total, nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Comment, error) {
	const query = `
		SELECT c.id, c.postid, c.authorid, a.username, c.content, c.createdat, c.updatedat
		FROM blog.comment c
		JOIN users.account a ON a.id = c.authorid
		WHERE c.id = $1 AND c.deletedat IS NULL`

	comment := &Comment{}
	err := repository.db.QueryRow(ctx, query, id).Scan(
		&comment.ID, &comment.PostID, &comment.AuthorID, &comment.AuthorUsername,
		&comment.Content, &comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}
	return comment, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, comment *Comment) error {
	const query = `
		INSERT INTO blog.comment (id, postid, authorid, content, createdat, updatedat)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING createdat, updatedat`

	err := repository.db.QueryRow(ctx, query,
		comment.ID, comment.PostID, comment.AuthorID, comment.Content,
	).Scan(&comment.CreatedAt, &comment.UpdatedAt)

	return dberr.Wrap(err, "")
}

func (repository *PostgresRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE blog.comment SET deletedat = $2 WHERE id = $1 AND deletedat IS NULL`

	cmd, err := repository.db.Exec(ctx, query, id, time.Now())
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
