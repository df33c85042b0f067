package db

import (
	"context"
	"strings"
	"time"
)

const postColumns = `id, user_id, nickname, title, content, created_at, updated_at`

const createPost = `-- name: CreatePost :exec
INSERT INTO posts (id, user_id, nickname, title, content, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

// CreatePostParams はCreatePostの引数。
type CreatePostParams struct {
	ID        string
	UserID    string
	Nickname  string
	Title     string
	Content   string
	CreatedAt time.Time
}

// CreatePost は投稿を作成する。updated_atはcreated_atと同じ値になる。
func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) error {
	ts := formatTime(arg.CreatedAt)
	_, err := q.db.ExecContext(ctx, createPost,
		arg.ID,
		arg.UserID,
		arg.Nickname,
		arg.Title,
		arg.Content,
		ts,
		ts,
	)
	return err
}

const getPostByID = `-- name: GetPostByID :one
SELECT ` + postColumns + ` FROM posts
WHERE id = ?
`

// GetPostByID はIDで投稿を取得する。存在しない場合は sql.ErrNoRows を返す。
func (q *Queries) GetPostByID(ctx context.Context, id string) (Post, error) {
	return scanPost(q.db.QueryRowContext(ctx, getPostByID, id))
}

const listPosts = `-- name: ListPosts :many
SELECT ` + postColumns + ` FROM posts
ORDER BY created_at DESC, rowid DESC
`

// ListPosts は全投稿を新しい順に返す。
func (q *Queries) ListPosts(ctx context.Context) ([]Post, error) {
	return q.queryPosts(ctx, listPosts)
}

const searchPostsByTitle = `-- name: SearchPostsByTitle :many
SELECT ` + postColumns + ` FROM posts
WHERE title LIKE ? ESCAPE '\'
ORDER BY created_at DESC, rowid DESC
`

// SearchPostsByTitle はタイトルにtermを含む投稿を新しい順に返す。
// ASCII文字は大文字小文字を区別しない。termに含まれる % と _ は文字として扱う。
func (q *Queries) SearchPostsByTitle(ctx context.Context, term string) ([]Post, error) {
	return q.queryPosts(ctx, searchPostsByTitle, "%"+escapeLike(term)+"%")
}

const updatePostByOwner = `-- name: UpdatePostByOwner :execrows
UPDATE posts SET title = ?, content = ?, updated_at = ?
WHERE id = ? AND user_id = ?
`

// UpdatePostByOwnerParams はUpdatePostByOwnerの引数。
type UpdatePostByOwnerParams struct {
	Title     string
	Content   string
	UpdatedAt time.Time
	ID        string
	UserID    string
}

// UpdatePostByOwner は投稿者本人の投稿だけを更新し、更新した行数を返す。
func (q *Queries) UpdatePostByOwner(ctx context.Context, arg UpdatePostByOwnerParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updatePostByOwner,
		arg.Title,
		arg.Content,
		formatTime(arg.UpdatedAt),
		arg.ID,
		arg.UserID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deletePostByOwner = `-- name: DeletePostByOwner :execrows
DELETE FROM posts
WHERE id = ? AND user_id = ?
`

// DeletePostByOwnerParams はDeletePostByOwnerの引数。
type DeletePostByOwnerParams struct {
	ID     string
	UserID string
}

// DeletePostByOwner は投稿者本人の投稿だけを削除し、削除した行数を返す。
// 投稿に付いたコメントは外部キーのカスケードで削除される。
func (q *Queries) DeletePostByOwner(ctx context.Context, arg DeletePostByOwnerParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deletePostByOwner, arg.ID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (q *Queries) queryPosts(ctx context.Context, query string, args ...any) ([]Post, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanPost(row interface{ Scan(...any) error }) (Post, error) {
	var (
		p                    Post
		createdAt, updatedAt string
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.Nickname, &p.Title, &p.Content, &createdAt, &updatedAt); err != nil {
		return Post{}, err
	}
	var err error
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return Post{}, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return Post{}, err
	}
	return p, nil
}

// likeEscaper はLIKEのワイルドカードとエスケープ文字をエスケープする。
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
