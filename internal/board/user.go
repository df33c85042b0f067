package board

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	boarddb "github.com/nao1215/board/internal/board/db"
	"github.com/nao1215/board/pkg/crypto"
	"github.com/nao1215/board/pkg/event"
	"github.com/nao1215/board/pkg/middleware"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 100
)

// registerRequest は会員登録リクエストのJSON構造。
type registerRequest struct {
	// Email はメールアドレス。小文字に正規化して保存する。
	Email string `json:"email" validate:"required,email,max=254"`
	// Nickname は英数字3〜50文字のニックネーム。
	Nickname string `json:"nickname" validate:"required,nickname"`
	// Password は4文字以上のパスワード。
	Password string `json:"password" validate:"required,min=4"`
	// ConfirmPassword はPasswordと一致しなければならない。
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

func (r *registerRequest) normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Nickname = strings.TrimSpace(r.Nickname)
}

// handleRegister は会員登録を処理する。
func (s *Server) handleRegister() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var req registerRequest
		if err := bindJSON(c, &req); err != nil {
			s.fail(c, err)
			return
		}
		if err := checkPasswordPolicy(req.Password, req.Nickname); err != nil {
			s.fail(c, err)
			return
		}

		n, err := s.queries.CountUsersByEmailOrNickname(ctx, boarddb.CountUsersByEmailOrNicknameParams{
			Email:    req.Email,
			Nickname: req.Nickname,
		})
		if err != nil {
			s.fail(c, storeFailure("会員登録に失敗しました", err))
			return
		}
		if n > 0 {
			s.fail(c, conflict(msgDuplicateUser, nil))
			return
		}

		hash, err := crypto.HashPassword(req.Password)
		if err != nil {
			s.fail(c, storeFailure("会員登録に失敗しました", err))
			return
		}

		user := boarddb.User{
			ID:           uuid.New().String(),
			Email:        req.Email,
			Nickname:     req.Nickname,
			PasswordHash: hash,
			CreatedAt:    time.Now().UTC(),
		}
		err = s.inTx(ctx, func(q *boarddb.Queries) error {
			if err := q.CreateUser(ctx, boarddb.CreateUserParams{
				ID:           user.ID,
				Email:        user.Email,
				Nickname:     user.Nickname,
				PasswordHash: user.PasswordHash,
				CreatedAt:    user.CreatedAt,
			}); err != nil {
				// 重複確認とINSERTの間に同じ値が登録された場合
				if isUniqueViolation(err) {
					return conflict(msgDuplicateUser, err)
				}
				return storeFailure("会員登録に失敗しました", err)
			}
			return recordActivity(ctx, q, event.TypeUserRegistered, user.ID, user.ID,
				event.UserRegisteredData{Email: user.Email, Nickname: user.Nickname})
		})
		if err != nil {
			s.fail(c, err)
			return
		}

		s.logger.Info("ユーザーを登録しました", "user_id", user.ID)
		c.JSON(http.StatusCreated, gin.H{"data": toUserResponse(user.Identity())})
	}
}

// handleGetMe はログイン中のユーザー情報を返す。
func (s *Server) handleGetMe() middleware.IdentityHandler {
	return func(c *gin.Context, id middleware.Identity) {
		c.JSON(http.StatusOK, gin.H{"data": toUserResponse(id)})
	}
}

// handleListMyActivity はログイン中のユーザーが行った操作を新しい順に返す。
// クエリパラメータ limit で件数を指定できる（既定50、最大100）。
func (s *Server) handleListMyActivity() middleware.IdentityHandler {
	return func(c *gin.Context, id middleware.Identity) {
		limit := defaultActivityLimit
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > maxActivityLimit {
				s.fail(c, &Error{
					Kind:    KindInvalidInput,
					Message: msgInvalidRequest,
					Fields:  map[string]string{"limit": "range"},
					Err:     err,
				})
				return
			}
			limit = n
		}

		items, err := s.queries.ListActivitiesByActor(c.Request.Context(), boarddb.ListActivitiesByActorParams{
			ActorID: id.UserID,
			Limit:   int64(limit),
		})
		if err != nil {
			s.fail(c, storeFailure("操作履歴の取得に失敗しました", err))
			return
		}

		res := make([]activityResponse, 0, len(items))
		for _, a := range items {
			res = append(res, toActivityResponse(a))
		}
		c.JSON(http.StatusOK, gin.H{"data": res})
	}
}
