// internal/webutil/response.go
package webutil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"go_5s_keep/internal/model"

	"github.com/go-playground/validator/v10"
)

// HandleError はエラーを解釈し、適切なJSONエラーレスポンスを返します。
// アプリケーションのエラーハンドリングの中心です。
func HandleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	statusCode := MapErrorToStatusCode(err)

	var errResp model.APIErrorResponse
	var appErr *model.AppError

	if errors.As(err, &appErr) {
		errResp = model.APIErrorResponse{Error: appErr.Detail()}
		if statusCode >= http.StatusInternalServerError {
			logger.Error("Request failed", "code", appErr.Code, "error", err)
		}
	} else {
		switch {
		case errors.Is(err, model.ErrNotFound):
			errResp = newErrorResponse("NOT_FOUND", "Không tìm thấy dữ liệu.")
		case errors.Is(err, model.ErrInvalidInput):
			errResp = newErrorResponse("INVALID_INPUT", "Dữ liệu không hợp lệ.")
		case errors.Is(err, model.ErrConflict):
			errResp = newErrorResponse("CONFLICT", "Dữ liệu đã tồn tại.")
		case errors.Is(err, model.ErrOnboardingRequired):
			errResp = newErrorResponse("ONBOARDING_REQUIRED", "Vui lòng hoàn thành bước khởi đầu trước.")
		default:
			// 予期せぬエラー。詳細はログにのみ出す
			logger.Error("Unhandled error", "error", err)
			errResp = newErrorResponse("INTERNAL_SERVER_ERROR", "Đã xảy ra lỗi máy chủ.")
		}
	}

	RespondWithJSON(w, statusCode, errResp, logger)
}

func newErrorResponse(code, message string) model.APIErrorResponse {
	return model.APIErrorResponse{Error: model.ErrorDetail{Code: code, Message: message}}
}

// MapErrorToStatusCode はアプリケーションエラーをHTTPステータスコードにマッピングします
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrConflict), errors.Is(err, model.ErrOnboardingRequired):
		return http.StatusConflict
	case errors.Is(err, model.ErrSessionMissing):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithJSON はJSONレスポンスを返します
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		if logger != nil {
			logger.Error("Error marshaling JSON response", "error", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":"INTERNAL_SERVER_ERROR","message":"Không thể tạo phản hồi."}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil && logger != nil {
		logger.Warn("Failed to write response body", "error", err)
	}
}

// RespondNoContent は 204 を返します (空入力による作成スキップ、削除成功など)
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// NewValidationErrorResponse はバリデーションエラーを翻訳済みメッセージの AppError に変換します
func NewValidationErrorResponse(errs validator.ValidationErrors) *model.AppError {
	fields := make([]string, 0, len(errs))
	messages := make([]string, 0, len(errs))

	for _, fe := range errs {
		fields = append(fields, fe.Field())
		messages = append(messages, fe.Translate(Trans))
	}

	return model.NewAppError(
		"VALIDATION_ERROR",
		strings.Join(messages, "; "),
		strings.Join(fields, ","),
		model.ErrInvalidInput,
	)
}
