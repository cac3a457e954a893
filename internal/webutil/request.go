// internal/webutil/request.go
package webutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go_5s_keep/internal/model"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes はリクエストボディの上限です。自由記述のテキストしか受け取らないので小さめ
const maxBodyBytes = 64 << 10

// DecodeJSONBody はリクエストボディを dst にデコードします。
// 空ボディ、未知のフィールド、不正なJSONは ErrInvalidInput を包んだ AppError になります。
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.NewAppError("INVALID_JSON", "Thiếu nội dung yêu cầu.", "", model.ErrInvalidInput)
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return model.NewAppError("INVALID_JSON", "Thiếu nội dung yêu cầu.", "", model.ErrInvalidInput)
		}
		return model.NewAppError("INVALID_JSON", "Dữ liệu JSON không hợp lệ.", "", errors.Join(model.ErrInvalidInput, err))
	}
	return nil
}

// DecodeAndValidate はデコード後に validate タグでの検証まで行います
func DecodeAndValidate(r *http.Request, dst interface{}) error {
	if err := DecodeJSONBody(r, dst); err != nil {
		return err
	}
	return ValidateStruct(dst)
}

// ValidateStruct は構造体を検証し、失敗時は翻訳済みの AppError を返します
func ValidateStruct(s interface{}) error {
	err := Validator.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return NewValidationErrorResponse(verrs)
	}
	return model.NewAppError("VALIDATION_ERROR", "Dữ liệu không hợp lệ.", "", errors.Join(model.ErrInvalidInput, err))
}
