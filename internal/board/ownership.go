package board

import "github.com/nao1215/board/pkg/middleware"

// isOwner は要求者がリソースの所有者かどうかを返す。
func isOwner(id middleware.Identity, ownerID string) bool {
	return id.UserID != "" && id.UserID == ownerID
}

// checkOwnership は要求者が所有者でなければKindForbiddenのエラーを返す。
func checkOwnership(id middleware.Identity, ownerID string) error {
	if !isOwner(id, ownerID) {
		return forbidden()
	}
	return nil
}
