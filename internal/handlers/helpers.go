// internal/handlers/helpers.go
package handlers

import (
	"go_5s_keep/internal/model"

	"github.com/google/uuid"
)

// parseID は UUID 文字列を解析し、失敗時は field を指す ErrInvalidInput を返します
func parseID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, model.NewAppError("INVALID_ID", "Mã không hợp lệ.", field, model.ErrInvalidInput)
	}
	return id, nil
}
