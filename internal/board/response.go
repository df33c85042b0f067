package board

import (
	"encoding/json"
	"time"

	boarddb "github.com/nao1215/board/internal/board/db"
	"github.com/nao1215/board/pkg/middleware"
)

// userResponse はユーザーのJSONレスポンス構造。パスワードは含まない。
type userResponse struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

func toUserResponse(id middleware.Identity) userResponse {
	return userResponse{UserID: id.UserID, Email: id.Email, Nickname: id.Nickname}
}

// postResponse は投稿のJSONレスポンス構造。
type postResponse struct {
	PostID    string `json:"post_id"`
	UserID    string `json:"user_id"`
	Nickname  string `json:"nickname"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toPostResponse(p boarddb.Post) postResponse {
	return postResponse{
		PostID:    p.ID,
		UserID:    p.UserID,
		Nickname:  p.Nickname,
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
}

func toPostResponses(posts []boarddb.Post) []postResponse {
	res := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		res = append(res, toPostResponse(p))
	}
	return res
}

// commentResponse はコメントのJSONレスポンス構造。
type commentResponse struct {
	CommentID string `json:"comment_id"`
	PostID    string `json:"post_id"`
	UserID    string `json:"user_id"`
	Nickname  string `json:"nickname"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toCommentResponse(cm boarddb.Comment) commentResponse {
	return commentResponse{
		CommentID: cm.ID,
		PostID:    cm.PostID,
		UserID:    cm.UserID,
		Nickname:  cm.Nickname,
		Comment:   cm.Comment,
		CreatedAt: cm.CreatedAt.Format(time.RFC3339),
		UpdatedAt: cm.UpdatedAt.Format(time.RFC3339),
	}
}

// activityResponse はアクティビティのJSONレスポンス構造。
type activityResponse struct {
	ID            string          `json:"id"`
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	EventType     string          `json:"event_type"`
	Data          json.RawMessage `json:"data"`
	CreatedAt     string          `json:"created_at"`
}

func toActivityResponse(a boarddb.Activity) activityResponse {
	return activityResponse{
		ID:            a.ID,
		AggregateID:   a.AggregateID,
		AggregateType: a.AggregateType,
		EventType:     a.EventType,
		Data:          a.Data,
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
	}
}
