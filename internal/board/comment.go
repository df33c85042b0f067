package board

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	boarddb "github.com/nao1215/board/internal/board/db"
	"github.com/nao1215/board/pkg/event"
	"github.com/nao1215/board/pkg/middleware"
)

// commentRequest はコメントの作成・更新リクエストのJSON構造。
type commentRequest struct {
	Comment string `json:"comment" validate:"required,max=2000"`
}

func (r *commentRequest) normalize() {
	r.Comment = strings.TrimSpace(r.Comment)
}

// findComment は投稿に属するコメントを取得する。
// 投稿が存在しない場合、コメントが存在しない場合、
// コメントが別の投稿に属する場合はKindNotFoundのエラーを返す。
func (s *Server) findComment(ctx context.Context, postID, commentID string) (boarddb.Comment, error) {
	if _, err := s.findPost(ctx, postID); err != nil {
		return boarddb.Comment{}, err
	}
	cm, err := s.queries.GetCommentByID(ctx, commentID)
	if errors.Is(err, sql.ErrNoRows) {
		return boarddb.Comment{}, notFound(msgCommentNotFound)
	}
	if err != nil {
		return boarddb.Comment{}, storeFailure("コメントの取得に失敗しました", err)
	}
	if cm.PostID != postID {
		return boarddb.Comment{}, notFound(msgCommentNotFound)
	}
	return cm, nil
}

// handleListComments は投稿のコメントを新しい順に返す。
// 投稿が存在しない場合とコメントが1件もない場合は404を返す。
func (s *Server) handleListComments() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		post, err := s.findPost(ctx, c.Param("post"))
		if err != nil {
			s.fail(c, err)
			return
		}
		comments, err := s.queries.ListCommentsByPostID(ctx, post.ID)
		if err != nil {
			s.fail(c, storeFailure("コメント一覧の取得に失敗しました", err))
			return
		}
		if len(comments) == 0 {
			s.fail(c, notFound("コメントがありません"))
			return
		}

		res := make([]commentResponse, 0, len(comments))
		for _, cm := range comments {
			res = append(res, toCommentResponse(cm))
		}
		c.JSON(http.StatusOK, gin.H{"data": res})
	}
}

// handleCreateComment は投稿にコメントを追加する。
func (s *Server) handleCreateComment() middleware.IdentityHandler {
	return func(c *gin.Context, id middleware.Identity) {
		ctx := c.Request.Context()

		var req commentRequest
		if err := bindJSON(c, &req); err != nil {
			s.fail(c, err)
			return
		}

		post, err := s.findPost(ctx, c.Param("post"))
		if err != nil {
			s.fail(c, err)
			return
		}

		cm := boarddb.Comment{
			ID:        uuid.New().String(),
			PostID:    post.ID,
			UserID:    id.UserID,
			Nickname:  id.Nickname,
			Comment:   req.Comment,
			CreatedAt: time.Now().UTC(),
		}
		cm.UpdatedAt = cm.CreatedAt

		err = s.inTx(ctx, func(q *boarddb.Queries) error {
			if err := q.CreateComment(ctx, boarddb.CreateCommentParams{
				ID:        cm.ID,
				PostID:    cm.PostID,
				UserID:    cm.UserID,
				Nickname:  cm.Nickname,
				Comment:   cm.Comment,
				CreatedAt: cm.CreatedAt,
			}); err != nil {
				return storeFailure("コメントの作成に失敗しました", err)
			}
			return recordActivity(ctx, q, event.TypeCommentCreated, cm.ID, id.UserID,
				event.CommentData{PostID: post.ID})
		})
		if err != nil {
			s.fail(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "コメントを作成しました", "data": toCommentResponse(cm)})
	}
}

// handleUpdateComment はコメントを更新する。所有者のみ実行できる。
func (s *Server) handleUpdateComment() middleware.IdentityHandler {
	return func(c *gin.Context, id middleware.Identity) {
		ctx := c.Request.Context()

		var req commentRequest
		if err := bindJSON(c, &req); err != nil {
			s.fail(c, err)
			return
		}

		cm, err := s.findComment(ctx, c.Param("post"), c.Param("comment"))
		if err != nil {
			s.fail(c, err)
			return
		}
		if err := checkOwnership(id, cm.UserID); err != nil {
			s.fail(c, err)
			return
		}

		err = s.inTx(ctx, func(q *boarddb.Queries) error {
			n, err := q.UpdateCommentByOwner(ctx, boarddb.UpdateCommentByOwnerParams{
				Comment:   req.Comment,
				UpdatedAt: time.Now().UTC(),
				ID:        cm.ID,
				UserID:    id.UserID,
			})
			if err != nil {
				return storeFailure("コメントの更新に失敗しました", err)
			}
			if n == 0 {
				return notFound(msgCommentNotFound)
			}
			return recordActivity(ctx, q, event.TypeCommentUpdated, cm.ID, id.UserID,
				event.CommentData{PostID: cm.PostID})
		})
		if err != nil {
			s.fail(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "コメントを更新しました"})
	}
}

// handleDeleteComment はコメントを削除する。所有者のみ実行できる。
func (s *Server) handleDeleteComment() middleware.IdentityHandler {
	return func(c *gin.Context, id middleware.Identity) {
		ctx := c.Request.Context()

		cm, err := s.findComment(ctx, c.Param("post"), c.Param("comment"))
		if err != nil {
			s.fail(c, err)
			return
		}
		if err := checkOwnership(id, cm.UserID); err != nil {
			s.fail(c, err)
			return
		}

		err = s.inTx(ctx, func(q *boarddb.Queries) error {
			n, err := q.DeleteCommentByOwner(ctx, boarddb.DeleteCommentByOwnerParams{ID: cm.ID, UserID: id.UserID})
			if err != nil {
				return storeFailure("コメントの削除に失敗しました", err)
			}
			if n == 0 {
				return notFound(msgCommentNotFound)
			}
			return recordActivity(ctx, q, event.TypeCommentDeleted, cm.ID, id.UserID,
				event.CommentData{PostID: cm.PostID})
		})
		if err != nil {
			s.fail(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "コメントを削除しました"})
	}
}
