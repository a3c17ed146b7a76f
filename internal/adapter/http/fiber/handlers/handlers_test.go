package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/seu-repo/clinic-advisor/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/clinic-advisor/internal/domain"
	"github.com/seu-repo/clinic-advisor/internal/mocks"
)

type fixture struct {
	app      *fiber.App
	analysis *mocks.MockAnalysisService
	chat     *mocks.MockChatService
	profiles *mocks.MockProfileService
}

func newFixture() *fixture {
	f := &fixture{
		analysis: &mocks.MockAnalysisService{},
		chat:     &mocks.MockChatService{},
		profiles: &mocks.MockProfileService{},
	}
	log := zap.NewNop()
	f.app = fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(log)})

	ah := NewAnalysisHandler(f.analysis, f.profiles, log)
	ch := NewChatHandler(f.chat, f.profiles, log)
	kh := NewClinicHandler(f.profiles, log)
	f.app.Post("/analyze", ah.Analyze)
	f.app.Post("/chat", ch.Chat)
	f.app.Get("/clinic", kh.Get)
	f.app.Post("/clinic", kh.Save)
	f.app.Delete("/clinic", kh.Delete)
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestAnalyze(t *testing.T) {
	f := newFixture()
	var gotKind domain.AnalysisKind
	f.analysis.AnalyzeFunc = func(ctx context.Context, kind domain.AnalysisKind, p domain.ClinicProfile) (*domain.AnalysisEnvelope, error) {
		gotKind = kind
		return &domain.AnalysisEnvelope{Tab: kind, Deterministic: domain.RiskAnalysis{}}, nil
	}

	status, body := f.do(t, http.MethodPost, "/analyze", `{"tab":"risk","profile":{"regionCity":"서울"}}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, domain.KindRisk, gotKind)
	assert.Equal(t, "risk", body["tab"])
}

func TestAnalyze_UnknownTab(t *testing.T) {
	f := newFixture()

	status, body := f.do(t, http.MethodPost, "/analyze", `{"tab":"weather","profile":{}}`)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "알 수 없는 분석 탭입니다", body["error"])
}

func TestAnalyze_MissingProfile(t *testing.T) {
	for _, body := range []string{`{"tab":"risk"}`, `{"tab":"risk","profile":null}`} {
		f := newFixture()

		status, out := f.do(t, http.MethodPost, "/analyze", body)

		assert.Equal(t, http.StatusBadRequest, status, body)
		assert.Equal(t, "프로필이 필요합니다", out["error"], body)
	}
}

func TestAnalyze_InvalidProfile(t *testing.T) {
	f := newFixture()
	f.profiles.DecodeFunc = func(raw []byte) (*domain.ClinicProfile, error) {
		return nil, &domain.ValidationError{Fields: []domain.FieldError{{Field: "dailyHours", Message: "24 이하여야 합니다"}}}
	}

	status, body := f.do(t, http.MethodPost, "/analyze", `{"tab":"risk","profile":{"dailyHours":30}}`)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "프로필 입력값이 올바르지 않습니다", body["error"])
	details := body["details"].([]interface{})
	require.Len(t, details, 1)
	assert.Equal(t, "dailyHours", details[0].(map[string]interface{})["field"])
}

func TestAnalyze_MalformedBody(t *testing.T) {
	f := newFixture()

	status, body := f.do(t, http.MethodPost, "/analyze", `{"tab":`)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "요청 본문을 해석할 수 없습니다", body["error"])
}

func TestChat(t *testing.T) {
	f := newFixture()
	var got domain.ChatRequest
	f.chat.ChatFunc = func(ctx context.Context, req domain.ChatRequest) (string, error) {
		got = req
		return "재진율 관리가 우선입니다", nil
	}

	status, body := f.do(t, http.MethodPost, "/chat",
		`{"message":"무엇부터?","history":[{"role":"user","content":"안녕"}],"profile":{}}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "재진율 관리가 우선입니다", body["reply"])
	assert.Equal(t, "무엇부터?", got.Message)
	require.Len(t, got.History, 1)
	assert.NotNil(t, got.Profile)
}

func TestChat_Errors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "invalid message",
			err:     fmt.Errorf("%w: 메시지를 입력해주십시오", domain.ErrInvalidChatMessage),
			status:  http.StatusBadRequest,
			message: "메시지를 입력해주십시오",
		},
		{
			name:    "generator unavailable",
			err:     fmt.Errorf("%w: timeout", domain.ErrNarrativeUnavailable),
			status:  http.StatusBadGateway,
			message: "LLM 응답을 받지 못했습니다. 잠시 후 다시 시도해주십시오.",
		},
		{
			name:    "unexpected",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			message: "요청 처리 중 오류가 발생했습니다",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.chat.ChatFunc = func(ctx context.Context, req domain.ChatRequest) (string, error) {
				return "", tt.err
			}

			status, body := f.do(t, http.MethodPost, "/chat", `{"message":"질문","profile":{}}`)

			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, body["error"])
		})
	}
}

func TestClinic_GetEmpty(t *testing.T) {
	f := newFixture()

	status, body := f.do(t, http.MethodGet, "/clinic", "")

	assert.Equal(t, http.StatusOK, status)
	v, ok := body["profile"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestClinic_SaveAndDelete(t *testing.T) {
	f := newFixture()
	var saved []byte
	f.profiles.SaveFunc = func(ctx context.Context, raw []byte) (*domain.ClinicProfile, error) {
		saved = raw
		return &domain.ClinicProfile{ID: "abc", RegionCity: "서울 마포구"}, nil
	}
	deleted := false
	f.profiles.DeleteFunc = func(ctx context.Context) error {
		deleted = true
		return nil
	}

	status, body := f.do(t, http.MethodPost, "/clinic", `{"regionCity":"서울 마포구"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "abc", body["profile"].(map[string]interface{})["id"])
	assert.JSONEq(t, `{"regionCity":"서울 마포구"}`, string(saved))

	status, body = f.do(t, http.MethodDelete, "/clinic", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.True(t, deleted)
}

func TestClinic_StoreFailure(t *testing.T) {
	f := newFixture()
	f.profiles.CurrentFunc = func(ctx context.Context) (*domain.ClinicProfile, error) {
		return nil, errors.New("connection refused")
	}

	status, _ := f.do(t, http.MethodGet, "/clinic", "")

	assert.Equal(t, http.StatusInternalServerError, status)
}

func TestChat_MessageCheckedBeforeProfile(t *testing.T) {
	for _, body := range []string{`{}`, `{"message":"   "}`, `{"message":"","profile":{"dailyHours":30}}`} {
		f := newFixture()
		called := false
		f.chat.ChatFunc = func(ctx context.Context, req domain.ChatRequest) (string, error) {
			called = true
			return "", nil
		}

		status, out := f.do(t, http.MethodPost, "/chat", body)

		assert.Equal(t, http.StatusBadRequest, status, body)
		assert.Equal(t, "메시지를 입력해주십시오", out["error"], body)
		assert.False(t, called, body)
	}
}

func TestChat_MissingProfile(t *testing.T) {
	f := newFixture()

	status, out := f.do(t, http.MethodPost, "/chat", `{"message":"질문"}`)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "프로필이 필요합니다", out["error"])
}
