package db

import (
	"context"
	"time"
)

const createUser = `-- name: CreateUser :exec
INSERT INTO users (id, email, nickname, password_hash, created_at)
VALUES (?, ?, ?, ?, ?)
`

// CreateUserParams はCreateUserの引数。
type CreateUserParams struct {
	ID           string
	Email        string
	Nickname     string
	PasswordHash []byte
	CreatedAt    time.Time
}

// CreateUser はユーザーを作成する。
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) error {
	_, err := q.db.ExecContext(ctx, createUser,
		arg.ID,
		arg.Email,
		arg.Nickname,
		arg.PasswordHash,
		formatTime(arg.CreatedAt),
	)
	return err
}

const getUserByID = `-- name: GetUserByID :one
SELECT id, email, nickname, password_hash, created_at FROM users
WHERE id = ?
`

// GetUserByID はIDでユーザーを取得する。存在しない場合は sql.ErrNoRows を返す。
func (q *Queries) GetUserByID(ctx context.Context, id string) (User, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByID, id))
}

const getUserByEmail = `-- name: GetUserByEmail :one
SELECT id, email, nickname, password_hash, created_at FROM users
WHERE email = ?
`

// GetUserByEmail はメールアドレスでユーザーを取得する。
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByEmail, email))
}

const countUsersByEmailOrNickname = `-- name: CountUsersByEmailOrNickname :one
SELECT COUNT(*) FROM users
WHERE email = ? OR nickname = ?
`

// CountUsersByEmailOrNicknameParams はCountUsersByEmailOrNicknameの引数。
type CountUsersByEmailOrNicknameParams struct {
	Email    string
	Nickname string
}

// CountUsersByEmailOrNickname はメールアドレスまたはニックネームが一致するユーザー数を返す。
func (q *Queries) CountUsersByEmailOrNickname(ctx context.Context, arg CountUsersByEmailOrNicknameParams) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countUsersByEmailOrNickname, arg.Email, arg.Nickname).Scan(&count)
	return count, err
}

func scanUser(row interface{ Scan(...any) error }) (User, error) {
	var (
		u         User
		createdAt string
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Nickname, &u.PasswordHash, &createdAt); err != nil {
		return User{}, err
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return User{}, err
	}
	u.CreatedAt = t
	return u, nil
}
