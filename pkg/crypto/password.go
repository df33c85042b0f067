// Package crypto はパスワードのハッシュ化と照合を提供する。
package crypto

import "golang.org/x/crypto/bcrypt"

// HashPassword は平文パスワードをbcryptでハッシュ化する。
func HashPassword(plain string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
}

// ComparePassword はハッシュと平文パスワードを照合する。一致しない場合はエラーを返す。
func ComparePassword(hash []byte, plain string) error {
	return bcrypt.CompareHashAndPassword(hash, []byte(plain))
}
