package db

import (
	"context"
	"time"
)

const commentColumns = `id, post_id, user_id, nickname, comment, created_at, updated_at`

const createComment = `-- name: CreateComment :exec
INSERT INTO comments (id, post_id, user_id, nickname, comment, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

// CreateCommentParams はCreateCommentの引数。
type CreateCommentParams struct {
	ID        string
	PostID    string
	UserID    string
	Nickname  string
	Comment   string
	CreatedAt time.Time
}

// CreateComment はコメントを作成する。
func (q *Queries) CreateComment(ctx context.Context, arg CreateCommentParams) error {
	ts := formatTime(arg.CreatedAt)
	_, err := q.db.ExecContext(ctx, createComment,
		arg.ID,
		arg.PostID,
		arg.UserID,
		arg.Nickname,
		arg.Comment,
		ts,
		ts,
	)
	return err
}

const getCommentByID = `-- name: GetCommentByID :one
SELECT ` + commentColumns + ` FROM comments
WHERE id = ?
`

// GetCommentByID はIDでコメントを取得する。存在しない場合は sql.ErrNoRows を返す。
func (q *Queries) GetCommentByID(ctx context.Context, id string) (Comment, error) {
	return scanComment(q.db.QueryRowContext(ctx, getCommentByID, id))
}

const listCommentsByPostID = `-- name: ListCommentsByPostID :many
SELECT ` + commentColumns + ` FROM comments
WHERE post_id = ?
ORDER BY created_at DESC, rowid DESC
`

// ListCommentsByPostID は投稿に付いたコメントを新しい順に返す。
func (q *Queries) ListCommentsByPostID(ctx context.Context, postID string) ([]Comment, error) {
	rows, err := q.db.QueryContext(ctx, listCommentsByPostID, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateCommentByOwner = `-- name: UpdateCommentByOwner :execrows
UPDATE comments SET comment = ?, updated_at = ?
WHERE id = ? AND user_id = ?
`

// UpdateCommentByOwnerParams はUpdateCommentByOwnerの引数。
type UpdateCommentByOwnerParams struct {
	Comment   string
	UpdatedAt time.Time
	ID        string
	UserID    string
}

// UpdateCommentByOwner はコメント投稿者本人のコメントだけを更新し、更新した行数を返す。
func (q *Queries) UpdateCommentByOwner(ctx context.Context, arg UpdateCommentByOwnerParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateCommentByOwner,
		arg.Comment,
		formatTime(arg.UpdatedAt),
		arg.ID,
		arg.UserID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteCommentByOwner = `-- name: DeleteCommentByOwner :execrows
DELETE FROM comments
WHERE id = ? AND user_id = ?
`

// DeleteCommentByOwnerParams はDeleteCommentByOwnerの引数。
type DeleteCommentByOwnerParams struct {
	ID     string
	UserID string
}

// DeleteCommentByOwner はコメント投稿者本人のコメントだけを削除し、削除した行数を返す。
func (q *Queries) DeleteCommentByOwner(ctx context.Context, arg DeleteCommentByOwnerParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteCommentByOwner, arg.ID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func scanComment(row interface{ Scan(...any) error }) (Comment, error) {
	var (
		c                    Comment
		createdAt, updatedAt string
	)
	if err := row.Scan(&c.ID, &c.PostID, &c.UserID, &c.Nickname, &c.Comment, &createdAt, &updatedAt); err != nil {
		return Comment{}, err
	}
	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return Comment{}, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return Comment{}, err
	}
	return c, nil
}
