package board

import (
	"context"
	"fmt"

	boarddb "github.com/nao1215/board/internal/board/db"
	"github.com/nao1215/board/pkg/event"
)

// inTx はfnを1つのトランザクション内で実行する。
// fnがエラーを返した場合はロールバックする。
func (s *Server) inTx(ctx context.Context, fn func(q *boarddb.Queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクションの開始に失敗: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := fn(s.queries.WithTx(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("トランザクションのコミットに失敗: %w", err)
	}
	return nil
}

// recordActivity は変更操作のアクティビティを追記する。
// 変更と同じトランザクションのqを渡すこと。
func recordActivity(ctx context.Context, q *boarddb.Queries, eventType event.Type, aggregateID, actorID string, data any) error {
	ev, err := event.New(eventType, aggregateID, actorID, data)
	if err != nil {
		return fmt.Errorf("イベントの生成に失敗: %w", err)
	}
	if err := q.CreateActivity(ctx, boarddb.CreateActivityParams{
		ID:            ev.ID,
		AggregateID:   ev.AggregateID,
		AggregateType: string(ev.AggregateType),
		EventType:     string(ev.EventType),
		ActorID:       ev.ActorID,
		Data:          ev.Data,
		CreatedAt:     ev.CreatedAt,
	}); err != nil {
		return fmt.Errorf("アクティビティの記録に失敗: %w", err)
	}
	return nil
}
