package board

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// nicknamePattern はニックネームに使える文字と長さ。
var nicknamePattern = regexp.MustCompile(`^[A-Za-z0-9]{3,50}$`)

// maxPasswordBytes はbcryptが扱えるパスワードの最大バイト数。
const maxPasswordBytes = 72

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// エラーのフィールド名にはJSONのキー名を使う
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("nickname", func(fl validator.FieldLevel) bool {
		return nicknamePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// normalizer は検証前に入力を正規化するリクエスト。
type normalizer interface {
	normalize()
}

// bindJSON はリクエストボディをreqにデコードし、正規化と検証を行う。
// 失敗した場合はKindInvalidInputのエラーを返す。
func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return invalidInput(msgMalformedRequest, err)
	}
	if n, ok := req.(normalizer); ok {
		n.normalize()
	}
	return validateStruct(req)
}

func validateStruct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return invalidInput(msgInvalidRequest, err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return &Error{Kind: KindInvalidInput, Message: msgInvalidRequest, Fields: fields, Err: err}
}

// checkPasswordPolicy は構造体タグで表せないパスワードの規則を検証する。
func checkPasswordPolicy(password, nickname string) error {
	if len(password) > maxPasswordBytes {
		return &Error{
			Kind:    KindInvalidInput,
			Message: msgInvalidRequest,
			Fields:  map[string]string{"password": "max_bytes"},
		}
	}
	if nickname != "" && strings.Contains(strings.ToLower(password), strings.ToLower(nickname)) {
		return &Error{
			Kind:    KindInvalidInput,
			Message: "パスワードにニックネームを含めることはできません",
			Fields:  map[string]string{"password": "contains_nickname"},
		}
	}
	return nil
}
