package db

import (
	"context"
	"encoding/json"
	"time"
)

const createActivity = `-- name: CreateActivity :exec
INSERT INTO activities (id, aggregate_id, aggregate_type, event_type, actor_id, data, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

// CreateActivityParams はCreateActivityの引数。
type CreateActivityParams struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	ActorID       string
	Data          json.RawMessage
	CreatedAt     time.Time
}

// CreateActivity はアクティビティを追記する。
func (q *Queries) CreateActivity(ctx context.Context, arg CreateActivityParams) error {
	_, err := q.db.ExecContext(ctx, createActivity,
		arg.ID,
		arg.AggregateID,
		arg.AggregateType,
		arg.EventType,
		arg.ActorID,
		string(arg.Data),
		formatTime(arg.CreatedAt),
	)
	return err
}

const listActivitiesByActor = `-- name: ListActivitiesByActor :many
SELECT id, aggregate_id, aggregate_type, event_type, actor_id, data, created_at FROM activities
WHERE actor_id = ?
ORDER BY created_at DESC, rowid DESC
LIMIT ?
`

// ListActivitiesByActorParams はListActivitiesByActorの引数。
type ListActivitiesByActorParams struct {
	ActorID string
	Limit   int64
}

// ListActivitiesByActor はユーザーが行った操作の記録を新しい順に返す。
func (q *Queries) ListActivitiesByActor(ctx context.Context, arg ListActivitiesByActorParams) ([]Activity, error) {
	rows, err := q.db.QueryContext(ctx, listActivitiesByActor, arg.ActorID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Activity
	for rows.Next() {
		var (
			a               Activity
			data, createdAt string
		)
		if err := rows.Scan(&a.ID, &a.AggregateID, &a.AggregateType, &a.EventType, &a.ActorID, &data, &createdAt); err != nil {
			return nil, err
		}
		a.Data = json.RawMessage(data)
		if a.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
