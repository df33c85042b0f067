package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrUnknownType は定義されていないイベント種別が指定されたことを表す。
	ErrUnknownType = errors.New("未知のイベント種別です")
	// ErrMissingAggregateID は対象エンティティのIDが空であることを表す。
	ErrMissingAggregateID = errors.New("対象エンティティのIDがありません")
	// ErrMissingActor は操作したユーザーのIDが空であることを表す。
	ErrMissingActor = errors.New("操作したユーザーのIDがありません")
)

// aggregateTypes はイベント種別ごとの対象エンティティの種類。
var aggregateTypes = map[Type]AggregateType{
	TypeUserRegistered: AggregateTypeUser,
	TypePostCreated:    AggregateTypePost,
	TypePostUpdated:    AggregateTypePost,
	TypePostDeleted:    AggregateTypePost,
	TypeCommentCreated: AggregateTypeComment,
	TypeCommentUpdated: AggregateTypeComment,
	TypeCommentDeleted: AggregateTypeComment,
}

// AggregateType はイベント種別に対応する対象エンティティの種類を返す。
func (t Type) AggregateType() (AggregateType, bool) {
	at, ok := aggregateTypes[t]
	return at, ok
}

// New は新しいイベントを生成する。対象エンティティの種類はeventTypeから決まる。
// dataはJSON形式にシリアライズされる。
func New(eventType Type, aggregateID, actorID string, data any) (*Event, error) {
	aggregateType, ok := eventType.AggregateType()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, eventType)
	}
	if aggregateID == "" {
		return nil, ErrMissingAggregateID
	}
	if actorID == "" {
		return nil, ErrMissingActor
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("イベントデータのシリアライズに失敗: %w", err)
	}

	return &Event{
		ID:            uuid.New().String(),
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		ActorID:       actorID,
		Data:          jsonData,
		CreatedAt:     time.Now().UTC(),
	}, nil
}
