// Package event は掲示板で発生した変更操作の記録（アクティビティ）を表す型を提供する。
// 記録は追記のみで、更新・削除されない。
package event

import (
	"encoding/json"
	"time"
)

// AggregateType はイベントの対象となるエンティティの種類を表す。
type AggregateType string

const (
	// AggregateTypeUser はユーザーエンティティを表す。
	AggregateTypeUser AggregateType = "User"
	// AggregateTypePost は投稿エンティティを表す。
	AggregateTypePost AggregateType = "Post"
	// AggregateTypeComment はコメントエンティティを表す。
	AggregateTypeComment AggregateType = "Comment"
)

// Type はイベントの種類を表す。
type Type string

const (
	// TypeUserRegistered はユーザーが登録されたことを表す。
	TypeUserRegistered Type = "UserRegistered"

	// TypePostCreated は投稿が作成されたことを表す。
	TypePostCreated Type = "PostCreated"
	// TypePostUpdated は投稿が更新されたことを表す。
	TypePostUpdated Type = "PostUpdated"
	// TypePostDeleted は投稿が削除されたことを表す。
	TypePostDeleted Type = "PostDeleted"

	// TypeCommentCreated はコメントが作成されたことを表す。
	TypeCommentCreated Type = "CommentCreated"
	// TypeCommentUpdated はコメントが更新されたことを表す。
	TypeCommentUpdated Type = "CommentUpdated"
	// TypeCommentDeleted はコメントが削除されたことを表す。
	TypeCommentDeleted Type = "CommentDeleted"
)

// Event は1回の変更操作の不変な記録。
type Event struct {
	// ID はイベントの一意識別子（UUID）。
	ID string `json:"id"`
	// AggregateID は対象エンティティの識別子。
	AggregateID string `json:"aggregate_id"`
	// AggregateType は対象エンティティの種類。
	AggregateType AggregateType `json:"aggregate_type"`
	// EventType はイベントの種類。
	EventType Type `json:"event_type"`
	// ActorID は操作を行ったユーザーのID。
	ActorID string `json:"actor_id"`
	// Data はイベント固有のデータ（JSON形式）。
	Data json.RawMessage `json:"data"`
	// CreatedAt はイベントが作成された日時。
	CreatedAt time.Time `json:"created_at"`
}

// UserRegisteredData はUserRegisteredイベントのデータ。
// パスワードに関する情報は含めない。
type UserRegisteredData struct {
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

// PostData は投稿に関するイベントのデータ。
type PostData struct {
	// Title は操作時点の投稿タイトル。
	Title string `json:"title"`
}

// CommentData はコメントに関するイベントのデータ。
type CommentData struct {
	// PostID はコメントが属する投稿のID。
	PostID string `json:"post_id"`
}
