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

// postRequest は投稿の作成・更新リクエストのJSON構造。
type postRequest struct {
	// Title は投稿タイトル。
	Title string `json:"title" validate:"required,max=200"`
	// Content は投稿本文。
	Content string `json:"content" validate:"required,max=20000"`
}

func (r *postRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Content = strings.TrimSpace(r.Content)
}

// findPost は投稿を取得する。存在しない場合はKindNotFoundのエラーを返す。
func (s *Server) findPost(ctx context.Context, postID string) (boarddb.Post, error) {
	post, err := s.queries.GetPostByID(ctx, postID)
	if errors.Is(err, sql.ErrNoRows) {
		return boarddb.Post{}, notFound(msgPostNotFound)
	}
	if err != nil {
		return boarddb.Post{}, storeFailure("投稿の取得に失敗しました", err)
	}
	return post, nil
}

// handleListPosts は投稿を新しい順に返す。投稿が1件もない場合は404を返す。
func (s *Server) handleListPosts() gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := s.queries.ListPosts(c.Request.Context())
		if err != nil {
			s.fail(c, storeFailure("投稿一覧の取得に失敗しました", err))
			return
		}
		if len(posts) == 0 {
			s.fail(c, notFound("投稿がありません"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": toPostResponses(posts)})
	}
}

// handleSearchPosts はタイトルに検索語を含む投稿を新しい順に返す。
func (s *Server) handleSearchPosts() gin.HandlerFunc {
	return func(c *gin.Context) {
		term := strings.TrimSpace(c.Param("post"))
		if term == "" {
			s.fail(c, invalidInput(msgInvalidRequest, nil))
			return
		}
		posts, err := s.queries.SearchPostsByTitle(c.Request.Context(), term)
		if err != nil {
			s.fail(c, storeFailure("投稿の検索に失敗しました", err))
			return
		}
		if len(posts) == 0 {
			s.fail(c, notFound(msgPostNotFound))
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": toPostResponses(posts)})
	}
}

// handleCreatePost は投稿を作成する。投稿者のニックネームは作成時点の値を保存する。
func (s *Server) handleCreatePost() middleware.IdentityHandler {
	return func(c *gin.Context, id middleware.Identity) {
		ctx := c.Request.Context()

		var req postRequest
		if err := bindJSON(c, &req); err != nil {
			s.fail(c, err)
			return
		}

		post := boarddb.Post{
			ID:        uuid.New().String(),
			UserID:    id.UserID,
			Nickname:  id.Nickname,
			Title:     req.Title,
			Content:   req.Content,
			CreatedAt: time.Now().UTC(),
		}
		post.UpdatedAt = post.CreatedAt

		err := s.inTx(ctx, func(q *boarddb.Queries) error {
			if err := q.CreatePost(ctx, boarddb.CreatePostParams{
				ID:        post.ID,
				UserID:    post.UserID,
				Nickname:  post.Nickname,
				Title:     post.Title,
				Content:   post.Content,
				CreatedAt: post.CreatedAt,
			}); err != nil {
				return storeFailure("投稿の作成に失敗しました", err)
			}
			return recordActivity(ctx, q, event.TypePostCreated, post.ID, id.UserID,
				event.PostData{Title: post.Title})
		})
		if err != nil {
			s.fail(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "投稿を作成しました", "data": toPostResponse(post)})
	}
}

// handleUpdatePost は投稿のタイトルと本文を更新する。所有者のみ実行できる。
func (s *Server) handleUpdatePost() middleware.IdentityHandler {
	return func(c *gin.Context, id middleware.Identity) {
		ctx := c.Request.Context()

		var req postRequest
		if err := bindJSON(c, &req); err != nil {
			s.fail(c, err)
			return
		}

		post, err := s.findPost(ctx, c.Param("post"))
		if err != nil {
			s.fail(c, err)
			return
		}
		if err := checkOwnership(id, post.UserID); err != nil {
			s.fail(c, err)
			return
		}

		err = s.inTx(ctx, func(q *boarddb.Queries) error {
			n, err := q.UpdatePostByOwner(ctx, boarddb.UpdatePostByOwnerParams{
				Title:     req.Title,
				Content:   req.Content,
				UpdatedAt: time.Now().UTC(),
				ID:        post.ID,
				UserID:    id.UserID,
			})
			if err != nil {
				return storeFailure("投稿の更新に失敗しました", err)
			}
			// 所有者チェックの後に削除された場合
			if n == 0 {
				return notFound(msgPostNotFound)
			}
			return recordActivity(ctx, q, event.TypePostUpdated, post.ID, id.UserID,
				event.PostData{Title: req.Title})
		})
		if err != nil {
			s.fail(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "投稿を更新しました"})
	}
}

// handleDeletePost は投稿を削除する。投稿に付いたコメントも削除される。所有者のみ実行できる。
func (s *Server) handleDeletePost() middleware.IdentityHandler {
	return func(c *gin.Context, id middleware.Identity) {
		ctx := c.Request.Context()

		post, err := s.findPost(ctx, c.Param("post"))
		if err != nil {
			s.fail(c, err)
			return
		}
		if err := checkOwnership(id, post.UserID); err != nil {
			s.fail(c, err)
			return
		}

		err = s.inTx(ctx, func(q *boarddb.Queries) error {
			n, err := q.DeletePostByOwner(ctx, boarddb.DeletePostByOwnerParams{ID: post.ID, UserID: id.UserID})
			if err != nil {
				return storeFailure("投稿の削除に失敗しました", err)
			}
			if n == 0 {
				return notFound(msgPostNotFound)
			}
			return recordActivity(ctx, q, event.TypePostDeleted, post.ID, id.UserID,
				event.PostData{Title: post.Title})
		})
		if err != nil {
			s.fail(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "投稿を削除しました"})
	}
}
