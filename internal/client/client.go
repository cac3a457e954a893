// Package client は 5S API の型付き HTTP クライアントです。
// すべてのリクエストに X-Session-ID と X-Client-Date を付け、
// タイムゾーン名が分かる場合は X-Client-Timezone も付けます。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go_5s_keep/internal/clock"
	"go_5s_keep/internal/model"
)

const apiPrefix = "/api/v1"

// SessionSource はセッションIDを提供します (session.Provider が実装)
type SessionSource interface {
	GetSessionID() (string, error)
}

// APIError はサーバーが返したエラーレスポンス
type APIError struct {
	Status int
	model.ErrorDetail
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s (%s): %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap はステータスからアプリケーションのエラーに対応付けます
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return model.ErrNotFound
	case http.StatusBadRequest:
		return model.ErrInvalidInput
	case http.StatusConflict:
		return model.ErrConflict
	case http.StatusUnauthorized:
		return model.ErrSessionMissing
	}
	return model.ErrInternalServer
}

type Client struct {
	baseURL  string
	http     *http.Client
	sessions SessionSource
	location *time.Location
	zone     string
	clock    clock.Clock
	logger   *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLocation(loc *time.Location) Option {
	return func(c *Client) { c.location = loc }
}

func WithClock(c clock.Clock) Option {
	return func(cl *Client) { cl.clock = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(baseURL string, sessions SessionSource, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		http:     &http.Client{Timeout: 10 * time.Second},
		sessions: sessions,
		location: time.Local,
		clock:    clock.SystemClock{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.location == nil {
		c.location = time.Local
	}
	c.zone = zoneName(c.location)
	// 303 はオンボーディングへの誘導なので追わない
	hc := *c.http
	hc.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
	c.http = &hc
	return c
}

// do はリクエストを送り、2xx なら out にデコードします。204 の場合 noContent=true
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) (noContent bool, err error) {
	sessionID, err := c.sessions.GetSessionID()
	if err != nil {
		return false, fmt.Errorf("session id: %w", err)
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return false, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return false, err
	}
	req.Header.Set(model.SessionHeader, sessionID)
	// 「今日」はクライアントのローカル日付。名前が分からない time.Local でも日付は送れる
	req.Header.Set(model.DateHeader, clock.Today(c.clock, c.location))
	if c.zone != "" {
		req.Header.Set(model.TimezoneHeader, c.zone)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.logger.Debug("API call", "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	switch {
	case resp.StatusCode == http.StatusSeeOther:
		return false, fmt.Errorf("%s %s: %w", method, path, model.ErrOnboardingRequired)
	case resp.StatusCode == http.StatusNoContent:
		return true, nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			return false, nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return false, fmt.Errorf("decode %s %s: %w", method, path, err)
		}
		return false, nil
	}

	apiErr := &APIError{Status: resp.StatusCode}
	var payload model.APIErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error.Code != "" {
		apiErr.ErrorDetail = payload.Error
	} else {
		apiErr.Code = http.StatusText(resp.StatusCode)
	}
	return false, apiErr
}

func (c *Client) Areas(ctx context.Context) ([]*model.LifeArea, error) {
	var areas []*model.LifeArea
	_, err := c.do(ctx, http.MethodGet, "/areas", nil, &areas)
	return areas, err
}

func (c *Client) Progress(ctx context.Context) (*model.ProgressView, error) {
	var v model.ProgressView
	if _, err := c.do(ctx, http.MethodGet, "/progress", nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) Onboarding(ctx context.Context) (*model.OnboardingView, error) {
	var v model.OnboardingView
	if _, err := c.do(ctx, http.MethodGet, "/onboarding", nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) CompleteOnboarding(ctx context.Context, areaID string) (*model.DashboardView, error) {
	var v model.DashboardView
	if _, err := c.do(ctx, http.MethodPost, "/onboarding", model.CompleteOnboardingRequest{AreaID: areaID}, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Dashboard はオンボーディング未完了の場合 model.ErrOnboardingRequired を返します
func (c *Client) Dashboard(ctx context.Context) (*model.DashboardView, error) {
	var v model.DashboardView
	if _, err := c.do(ctx, http.MethodGet, "/dashboard", nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) SetActionStatus(ctx context.Context, actionID string, status model.ActionStatus) (*model.DailyAction, error) {
	var a model.DailyAction
	body := model.UpdateActionStatusRequest{Status: string(status)}
	if _, err := c.do(ctx, http.MethodPatch, "/daily/"+url.PathEscape(actionID), body, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) SwitchArea(ctx context.Context, areaID string) (*model.DashboardView, error) {
	var v model.DashboardView
	if _, err := c.do(ctx, http.MethodPut, "/progress/area", model.SwitchAreaRequest{AreaID: areaID}, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) AdvanceStep(ctx context.Context) (*model.ProgressView, error) {
	var v model.ProgressView
	if _, err := c.do(ctx, http.MethodPost, "/progress/step", nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) Review(ctx context.Context) (*model.WeeklyReviewView, error) {
	var v model.WeeklyReviewView
	if _, err := c.do(ctx, http.MethodGet, "/review", nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) SaveReview(ctx context.Context, req model.SaveWeeklyReviewRequest) (*model.WeeklyReviewView, error) {
	var v model.WeeklyReviewView
	if _, err := c.do(ctx, http.MethodPut, "/review", req, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func stagePath(area string, step model.Step) string {
	return "/areas/" + url.PathEscape(area) + "/" + string(step)
}

// ListStage はステップ画面の一覧を返します
func ListStage[T any](ctx context.Context, c *Client, area string, step model.Step) (*model.StageView[T], error) {
	var v model.StageView[T]
	if _, err := c.do(ctx, http.MethodGet, stagePath(area, step), nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// CreateStage は空白のみの入力でサーバーが何もしなかった場合 (nil, nil) を返します
func CreateStage[T any](ctx context.Context, c *Client, area string, step model.Step, body interface{}) (*T, error) {
	var row T
	noContent, err := c.do(ctx, http.MethodPost, stagePath(area, step), body, &row)
	if err != nil || noContent {
		return nil, err
	}
	return &row, nil
}

func PatchStage[T any](ctx context.Context, c *Client, area string, step model.Step, id string, fields map[string]interface{}) (*T, error) {
	var row T
	if _, err := c.do(ctx, http.MethodPatch, stagePath(area, step)+"/"+url.PathEscape(id), fields, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

func (c *Client) DeleteStageItem(ctx context.Context, area string, step model.Step, id string) error {
	_, err := c.do(ctx, http.MethodDelete, stagePath(area, step)+"/"+url.PathEscape(id), nil, nil)
	return err
}

// IsOnboardingRequired はオンボーディングへの誘導かどうか
func IsOnboardingRequired(err error) bool {
	return errors.Is(err, model.ErrOnboardingRequired)
}
