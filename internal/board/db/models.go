package db

import (
	"encoding/json"
	"time"

	"github.com/nao1215/board/pkg/middleware"
)

// User はusersテーブルの行。
type User struct {
	ID           string
	Email        string
	Nickname     string
	PasswordHash []byte
	CreatedAt    time.Time
}

// Identity はユーザーを認証済みの要求者として表したものを返す。
// パスワードハッシュは含まない。
func (u User) Identity() middleware.Identity {
	return middleware.Identity{
		UserID:   u.ID,
		Email:    u.Email,
		Nickname: u.Nickname,
	}
}

// Post はpostsテーブルの行。
type Post struct {
	ID        string
	UserID    string
	Nickname  string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Comment はcommentsテーブルの行。
type Comment struct {
	ID        string
	PostID    string
	UserID    string
	Nickname  string
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Activity はactivitiesテーブルの行。
type Activity struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	ActorID       string
	Data          json.RawMessage
	CreatedAt     time.Time
}
