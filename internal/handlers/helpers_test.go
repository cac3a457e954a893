// helpers_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go_5s_keep/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// httpRequestDetails はHTTPリクエストの送信に必要な情報をまとめます。
type httpRequestDetails struct {
	Method  string
	Path    string
	Body    interface{}
	Headers map[string]string
}

// httpResponseExpectations はHTTPレスポンスの検証に必要な期待値をまとめます。
type httpResponseExpectations struct {
	ExpectedCode int
}

// sendRequest はHTTPリクエストを送信し、ステータスコードとボディを返します。
// リダイレクトは追わずにそのまま返します。
func sendRequest(t *testing.T, server *httptest.Server, details httpRequestDetails, expectations httpResponseExpectations) (*http.Response, []byte) {
	t.Helper()

	var reqBodyReader io.Reader
	if details.Body != nil {
		if strPayload, ok := details.Body.(string); ok {
			reqBodyReader = strings.NewReader(strPayload)
		} else {
			reqBodyBytes, err := json.Marshal(details.Body)
			require.NoError(t, err, "Failed to marshal request body")
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
	}

	req, err := http.NewRequest(details.Method, server.URL+details.Path, reqBodyReader)
	require.NoError(t, err, "Failed to create request")

	if details.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range details.Headers {
		req.Header.Set(key, value)
	}

	client := server.Client()
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	resp, err := client.Do(req)
	require.NoError(t, err, "Failed to execute request")
	defer resp.Body.Close()

	assert.Equal(t, expectations.ExpectedCode, resp.StatusCode, "Status code mismatch for %s %s", details.Method, details.Path)

	respBodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")

	return resp, respBodyBytes
}

// sessionHeaders はセッションIDヘッダーを作ります
func sessionHeaders(sessionID string) map[string]string {
	return map[string]string{model.SessionHeader: sessionID}
}

// verifyErrorResponse はエラーレスポンスのコードを検証します。
func verifyErrorResponse(t *testing.T, logger *slog.Logger, bodyBytes []byte, expectedCode string, tcName string) {
	t.Helper()
	if expectedCode == "" {
		return
	}

	var errResp model.APIErrorResponse
	if err := json.Unmarshal(bodyBytes, &errResp); err != nil {
		logger.Warn("Error response body not valid APIErrorResponse JSON.",
			slog.String("test_case", tcName),
			slog.Any("unmarshal_error", err),
			slog.String("raw_body", string(bodyBytes)),
		)
		assert.Contains(t, string(bodyBytes), expectedCode, "test case '%s'", tcName)
		return
	}
	assert.Equal(t, expectedCode, errResp.Error.Code, "test case '%s': %s", tcName, errResp.Error.Message)
}

// decodeBody はレスポンスボディを任意の型にデコードします
func decodeBody[T any](t *testing.T, bodyBytes []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(bodyBytes, &v), "body: %s", string(bodyBytes))
	return v
}

// clearTable は指定されたモデルのテーブルデータをクリアします。
func clearTable(t *testing.T, db *gorm.DB, modelInstance interface{}) {
	t.Helper()
	err := db.Unscoped().Where("1 = 1").Delete(modelInstance).Error
	require.NoError(t, err, fmt.Sprintf("Failed to clear table for model %T", modelInstance))
}
