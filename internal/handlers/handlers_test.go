package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"skillup/api/internal/config"
	"skillup/api/internal/kv"
	"skillup/api/internal/llm"
	"skillup/api/internal/llm/mock"
	"skillup/api/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	router    *gin.Engine
	completer *mock.MockCompleter
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	cfg := &config.AppConfig{
		Environment: "test",
		Storage:     config.StorageConfig{Driver: config.DriverMemory},
		Security:    config.SecurityConfig{SessionSecret: "handler-secret"},
		Seed:        config.SeedConfig{AdminEmail: "admin@skillup.com", AdminPassword: "admin123", AdminName: "Admin User"},
	}
	completer := mock.NewMockCompleter(gomock.NewController(t))

	h := NewHandlerSet(zerolog.Nop(), cfg, kv.NewMemoryStore(), completer, nil)
	router := gin.New()
	h.Register(router.Group("/api"))
	return &testAPI{router: router, completer: completer}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.SessionHeader, token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec.Code, out
}

func (a *testAPI) signUp(t *testing.T, name, email string) string {
	t.Helper()
	code, body := a.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{"fullName": name, "email": email, "password": "password1"})
	require.Equal(t, http.StatusOK, code, body)
	return body["session_token"].(string)
}

func (a *testAPI) adminToken(t *testing.T) string {
	t.Helper()
	code, body := a.do(t, http.MethodPost, "/api/seed/admin", "", nil)
	require.Equal(t, http.StatusOK, code, body)
	code, body = a.do(t, http.MethodPost, "/api/auth/admin-login", "", gin.H{"email": "admin@skillup.com", "password": "admin123"})
	require.Equal(t, http.StatusOK, code, body)
	return body["session_token"].(string)
}

func TestSignUpAndProfile(t *testing.T) {
	api := newTestAPI(t)

	code, body := api.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{"fullName": "Ana", "email": "Ana@Example.com", "password": "password1"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "ana@example.com", user["email"])
	assert.NotContains(t, user, "password_hash")
	token := body["session_token"].(string)

	code, body = api.do(t, http.MethodGet, "/api/user/profile", token, nil)
	require.Equal(t, http.StatusOK, code)
	profile := body["profile"].(map[string]any)
	assert.Equal(t, "Ana", profile["full_name"])
	assert.Equal(t, []any{}, profile["badges"])

	code, body = api.do(t, http.MethodGet, "/api/user/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Unauthorized", body["error"])
}

func TestSignUpErrors(t *testing.T) {
	api := newTestAPI(t)
	api.signUp(t, "Ana", "ana@example.com")

	code, body := api.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{"email": "ben@example.com", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Missing required fields", body["error"])

	code, body = api.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{"fullName": "Ana", "email": "ANA@example.com", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Email already registered", body["error"])
}

func TestLoginSessionLogout(t *testing.T) {
	api := newTestAPI(t)
	api.signUp(t, "Ana", "ana@example.com")

	code, body := api.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "ana@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid email or password", body["error"])

	code, body = api.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "ana@example.com", "password": "password1"})
	require.Equal(t, http.StatusOK, code)
	token := body["session_token"].(string)

	code, body = api.do(t, http.MethodGet, "/api/auth/session", token, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "ana@example.com", body["session"].(map[string]any)["email"])

	code, body = api.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])

	code, body = api.do(t, http.MethodGet, "/api/auth/session", token, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["success"])
	assert.Nil(t, body["session"])

	code, body = api.do(t, http.MethodPost, "/api/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
}

func TestProgressEndpoints(t *testing.T) {
	api := newTestAPI(t)
	token := api.signUp(t, "Ana", "ana@example.com")

	code, body := api.do(t, http.MethodPost, "/api/user/progress", token, gin.H{"moduleName": "x"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Missing moduleId", body["error"])

	code, body = api.do(t, http.MethodPost, "/api/user/progress", token, gin.H{"moduleId": "m1", "moduleName": "Budgeting", "completed": true})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(100), body["progress"].(map[string]any)["progress_percentage"])

	code, body = api.do(t, http.MethodGet, "/api/user/modules", token, nil)
	require.Equal(t, http.StatusOK, code)
	progress := body["progress"].(map[string]any)
	require.Contains(t, progress, "m1")
	assert.Equal(t, true, progress["m1"].(map[string]any)["completed"])

	_, body = api.do(t, http.MethodGet, "/api/user/profile", token, nil)
	profile := body["profile"].(map[string]any)
	assert.Equal(t, float64(50), profile["xp"])
	assert.Equal(t, []any{"first-steps"}, profile["badges"])
}

func TestUpdateProfileEndpoint(t *testing.T) {
	api := newTestAPI(t)
	token := api.signUp(t, "Ana", "ana@example.com")

	code, body := api.do(t, http.MethodPut, "/api/user/profile", token, gin.H{"new_password": "next"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Current password required", body["error"])

	code, body = api.do(t, http.MethodPut, "/api/user/profile", token, gin.H{"new_password": "next", "current_password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Current password is incorrect", body["error"])

	code, body = api.do(t, http.MethodPut, "/api/user/profile", token, gin.H{"full_name": "Ana Cruz"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Ana Cruz", body["profile"].(map[string]any)["full_name"])
}

func TestGenerateAssessmentEndpoint(t *testing.T) {
	api := newTestAPI(t)
	token := api.signUp(t, "Ana", "ana@example.com")

	api.completer.EXPECT().Complete(gomock.Any(), gomock.Any()).
		Return(`Sure! [{"id": 1, "question": "Pick", "options": {"A": "a", "B": "b"}}]`, nil)

	code, body := api.do(t, http.MethodPost, "/api/ai/generate-assessment", token, nil)
	require.Equal(t, http.StatusOK, code, body)
	questions := body["questions"].([]any)
	require.Len(t, questions, 1)
	assert.Equal(t, "1", questions[0].(map[string]any)["id"])

	api.completer.EXPECT().Complete(gomock.Any(), gomock.Any()).
		Return("", fmt.Errorf("%w: finish reason MAX_TOKENS", llm.ErrTruncated))

	code, body = api.do(t, http.MethodPost, "/api/ai/generate-assessment", token, nil)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Failed to generate assessment", body["error"])
	assert.Equal(t, "Response truncated - please try again", body["details"])

	code, _ = api.do(t, http.MethodPost, "/api/ai/generate-assessment", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAnalyzeAndResults(t *testing.T) {
	api := newTestAPI(t)
	token := api.signUp(t, "Ana", "ana@example.com")

	code, body := api.do(t, http.MethodGet, "/api/assessment/results", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Nil(t, body["assessment"])

	code, body = api.do(t, http.MethodPost, "/api/ai/analyze-assessment", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid responses", body["error"])

	api.completer.EXPECT().Complete(gomock.Any(), gomock.Any()).
		Return("```json\n{\"career_paths\":[{\"title\":\"Bookkeeper\",\"description\":\"d\",\"match_percentage\":80}],\"strengths\":[\"focus\"]}\n```", nil)

	code, body = api.do(t, http.MethodPost, "/api/ai/analyze-assessment", token, gin.H{
		"responses": []gin.H{{"question_id": 1, "question": "Pick", "answer": "A", "answer_text": "Numbers"}},
	})
	require.Equal(t, http.StatusOK, code, body)

	code, body = api.do(t, http.MethodGet, "/api/assessment/results", token, nil)
	require.Equal(t, http.StatusOK, code)
	assessment := body["assessment"].(map[string]any)
	paths := assessment["analysis"].(map[string]any)["career_paths"].([]any)
	assert.Equal(t, "Bookkeeper", paths[0].(map[string]any)["title"])
}

func TestGenerateLessonRequiresTitle(t *testing.T) {
	api := newTestAPI(t)
	token := api.signUp(t, "Ana", "ana@example.com")

	code, body := api.do(t, http.MethodPost, "/api/ai/generate-lesson", token, gin.H{"moduleDescription": "d"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Module title required", body["error"])
}

func TestAdminSurface(t *testing.T) {
	api := newTestAPI(t)
	learner := api.signUp(t, "Ana", "ana@example.com")
	admin := api.adminToken(t)

	code, body := api.do(t, http.MethodPost, "/api/seed/admin", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Admin already exists", body["error"])

	code, body = api.do(t, http.MethodPost, "/api/auth/admin-login", "", gin.H{"email": "ana@example.com", "password": "password1"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid admin credentials", body["error"])

	for _, token := range []string{"", learner} {
		code, body = api.do(t, http.MethodGet, "/api/admin/stats", token, nil)
		assert.Equal(t, http.StatusForbidden, code)
		assert.Equal(t, "Unauthorized - Admin only", body["error"])
	}

	code, body = api.do(t, http.MethodGet, "/api/admin/stats", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["stats"].(map[string]any)["total_users"])

	code, body = api.do(t, http.MethodGet, "/api/admin/users", admin, nil)
	require.Equal(t, http.StatusOK, code)
	users := body["users"].([]any)
	require.Len(t, users, 1)
	first := users[0].(map[string]any)
	assert.NotContains(t, first, "password_hash")
	userID := first["id"].(string)

	code, _ = api.do(t, http.MethodPut, "/api/admin/users/"+userID, admin, gin.H{"full_name": "Ana Admin-Edited"})
	assert.Equal(t, http.StatusOK, code)

	code, _ = api.do(t, http.MethodGet, "/api/admin/analytics", admin, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = api.do(t, http.MethodDelete, "/api/admin/users/"+userID, admin, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = api.do(t, http.MethodGet, "/api/user/profile", learner, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body = api.do(t, http.MethodDelete, "/api/admin/users/"+userID, admin, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "User not found", body["error"])
}

func TestFeedbackFlow(t *testing.T) {
	api := newTestAPI(t)
	admin := api.adminToken(t)

	code, body := api.do(t, http.MethodPost, "/api/feedback/submit", "", gin.H{"message": "Great app"})
	require.Equal(t, http.StatusOK, code)
	feedback := body["feedback"].(map[string]any)
	assert.Equal(t, "Anonymous", feedback["user_name"])
	id := feedback["id"].(string)

	code, _ = api.do(t, http.MethodGet, "/api/feedback/all", "", nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, body = api.do(t, http.MethodGet, "/api/feedback/all", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["feedback"], 1)

	code, body = api.do(t, http.MethodPut, "/api/feedback/"+id, admin, gin.H{"status": "resolved"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "resolved", body["feedback"].(map[string]any)["status"])

	code, body = api.do(t, http.MethodPut, "/api/feedback/"+id, admin, gin.H{"status": "lost"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid status", body["error"])
}

func TestResourceFlow(t *testing.T) {
	api := newTestAPI(t)
	admin := api.adminToken(t)

	code, _ := api.do(t, http.MethodPost, "/api/resources", "", gin.H{"name": "Fair", "type": "Job Fair"})
	assert.Equal(t, http.StatusForbidden, code)

	code, body := api.do(t, http.MethodPost, "/api/resources", admin, gin.H{"name": "Fair", "type": "Job Fair"})
	require.Equal(t, http.StatusOK, code)
	resource := body["resource"].(map[string]any)
	assert.Equal(t, 14.5995, resource["latitude"])
	id := resource["id"].(string)

	code, body = api.do(t, http.MethodGet, "/api/resources", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["resources"], 1)

	code, body = api.do(t, http.MethodPut, "/api/resources/"+id, admin, gin.H{"address": "Pasig"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Pasig", body["resource"].(map[string]any)["address"])

	code, _ = api.do(t, http.MethodDelete, "/api/resources/"+id, admin, nil)
	assert.Equal(t, http.StatusOK, code)
	code, body = api.do(t, http.MethodDelete, "/api/resources/"+id, admin, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Resource not found", body["error"])
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	code, body := api.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "ok", body["storage"])
}

func TestBadJSON(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid request body"}`, rec.Body.String())
}
