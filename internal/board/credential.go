package board

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	boarddb "github.com/nao1215/board/internal/board/db"
	"github.com/nao1215/board/pkg/middleware"
)

// userFinder はユーザーIDからユーザーを取得する。
type userFinder interface {
	GetUserByID(ctx context.Context, id string) (boarddb.User, error)
}

// Verifier は "Bearer <token>" 形式の認証情報を検証して要求者を解決する。
// 署名と有効期限に加え、トークンが指すユーザーが現存することを確認する。
type Verifier struct {
	secret string
	users  userFinder
}

var _ middleware.CredentialVerifier = (*Verifier)(nil)

// NewVerifier はVerifierを生成する。
func NewVerifier(secret string, users userFinder) *Verifier {
	return &Verifier{secret: secret, users: users}
}

// Verify は認証情報を検証する。認証情報が不正な場合は失敗理由にかかわらず
// KindUnauthenticatedのエラーを返す。ユーザーの取得自体に失敗した場合は
// middleware.ErrVerifierUnavailable をラップしたKindStoreFailureのエラーを返す。
func (v *Verifier) Verify(ctx context.Context, credential string) (middleware.Identity, error) {
	token, err := middleware.BearerToken(credential)
	if err != nil {
		return middleware.Identity{}, unauthenticated(err)
	}
	claims, err := middleware.ParseJWT(v.secret, token)
	if err != nil {
		return middleware.Identity{}, unauthenticated(err)
	}

	user, err := v.users.GetUserByID(ctx, claims.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return middleware.Identity{}, unauthenticated(fmt.Errorf("ユーザーが存在しません: %s", claims.UserID))
	}
	if err != nil {
		return middleware.Identity{}, storeFailure(msgInternal, fmt.Errorf("%w: ユーザーの取得に失敗: %w", middleware.ErrVerifierUnavailable, err))
	}
	return user.Identity(), nil
}
