package board

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind はリクエスト処理の失敗の種類。
type Kind int

const (
	// KindInvalidInput は入力が不正であることを表す。
	KindInvalidInput Kind = iota + 1
	// KindUnauthenticated は要求者を特定できないことを表す。
	KindUnauthenticated
	// KindNotFound はリソースが存在しないことを表す。
	KindNotFound
	// KindForbidden は要求者がリソースの所有者でないことを表す。
	KindForbidden
	// KindConflict は一意であるべき値が既に使われていることを表す。
	KindConflict
	// KindStoreFailure はデータベース操作の失敗を表す。
	KindStoreFailure
)

// String はレスポンスの "code" に使う名前を返す。
func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindStoreFailure:
		return "store_failure"
	default:
		return "unknown"
	}
}

// status はKindに対応するHTTPステータスコードを返す。
func (k Kind) status() int {
	switch k {
	// 重複は入力不備と同じ400で返し、"code" で区別する
	case KindInvalidInput, KindConflict:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error はクライアントに返す失敗。Messageはそのままレスポンスに含まれ、
// Errは内部の原因としてログにのみ出力される。
type Error struct {
	Kind    Kind
	Message string
	// Fields は入力検証に失敗したフィールド名と規則名。
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf はエラーのKindを返す。*Errorを含まない場合はKindStoreFailureとみなす。
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStoreFailure
}

const (
	msgForbidden        = "アクセスが許可されていません"
	msgPostNotFound     = "投稿が見つかりません"
	msgCommentNotFound  = "コメントが見つかりません"
	msgInvalidLogin     = "メールアドレスまたはパスワードが正しくありません"
	msgDuplicateUser    = "メールアドレスまたはニックネームは既に使用されています"
	msgInternal         = "内部サーバーエラーが発生しました"
	msgUnauthenticated  = "ログイン後に利用できる機能です"
	msgInvalidRequest   = "入力内容が不正です"
	msgMalformedRequest = "リクエストの形式が不正です"
)

func invalidInput(msg string, err error) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg, Err: err}
}

func unauthenticated(err error) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msgUnauthenticated, Err: err}
}

func notFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func forbidden() *Error {
	return &Error{Kind: KindForbidden, Message: msgForbidden}
}

func conflict(msg string, err error) *Error {
	return &Error{Kind: KindConflict, Message: msg, Err: err}
}

func storeFailure(msg string, err error) *Error {
	return &Error{Kind: KindStoreFailure, Message: msg, Err: err}
}

// fail はエラーをJSONのエラーレスポンスに変換して処理を中断する。
// *Errorでないエラーは内部エラーとして扱い、詳細はクライアントに返さない。
func (s *Server) fail(c *gin.Context, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = storeFailure(msgInternal, err)
	}

	switch e.Kind {
	case KindStoreFailure:
		s.logger.Error(e.Message,
			"error", e.Err,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
	case KindForbidden, KindUnauthenticated:
		s.logger.Warn(e.Message,
			"error", e.Err,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
	}

	body := gin.H{"error": e.Message, "code": e.Kind.String()}
	if len(e.Fields) > 0 {
		body["fields"] = e.Fields
	}
	c.AbortWithStatusJSON(e.Kind.status(), body)
}
