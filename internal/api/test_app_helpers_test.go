package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fortuna/internal/db"
	"github.com/terraincognita07/fortuna/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testSecretKey = "test-secret-key-with-enough-length-0123"

var testNow = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

type countingGenerator struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	reply   string
}

func (generator *countingGenerator) Generate(ctx context.Context, systemInstruction string, prompt string) (string, error) {
	generator.mu.Lock()
	defer generator.mu.Unlock()
	generator.calls++
	generator.prompts = append(generator.prompts, prompt)
	return generator.reply, nil
}

func (generator *countingGenerator) callCount() int {
	generator.mu.Lock()
	defer generator.mu.Unlock()
	return generator.calls
}

type stubHoroscopeProvider struct {
	credential bool
	failing    map[string]bool
}

func (provider *stubHoroscopeProvider) HasCredential() bool {
	return provider.credential
}

func (provider *stubHoroscopeProvider) FetchToday(ctx context.Context, sign string) (string, error) {
	if provider.failing[sign] {
		return "", errors.New("horoscope provider error [status=503]")
	}
	return "Horoscope for " + sign + ".", nil
}

func newTestApp(t *testing.T, options Options) (*fiber.App, *gorm.DB, *Handler) {
	t.Helper()

	_, testFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("resolve current test file path")
	}
	apiDir := filepath.Dir(testFile)
	templatesDir := filepath.Join(filepath.Dir(apiDir), "templates")
	databasePath := filepath.Join(t.TempDir(), "fortuna-api-test.db")

	database, err := db.OpenSQLite(databasePath, zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	options.SecretKey = testSecretKey
	options.TemplateDir = templatesDir
	if options.Now == nil {
		options.Now = func() time.Time { return testNow }
	}

	handler, err := NewHandler(database, options)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app, database, handler
}

func registerTestUser(t *testing.T, app *fiber.App, username string, birthday string, personalityType string) map[string]any {
	t.Helper()

	payload := map[string]string{
		"name":             "Test " + username,
		"username":         username,
		"email":            username + "@example.com",
		"birthday":         birthday,
		"personality_type": personalityType,
		"password":         "testuser123",
		"confirm_password": "testuser123",
	}
	response := jsonRequest(t, app, http.MethodPost, "/api/auth/register", "", payload)
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected register status 201, got %d: %s", response.StatusCode, readBody(t, response))
	}
	return decodeJSON(t, response)
}

func loginAndExtractAuthCookie(t *testing.T, app *fiber.App, username string, password string) string {
	t.Helper()

	form := url.Values{
		"username": {username},
		"password": {password},
	}
	request := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected login status 303, got %d", response.StatusCode)
	}
	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName && cookie.Value != "" {
			return cookie.Name + "=" + cookie.Value
		}
	}

	t.Fatal("auth cookie is missing in login response")
	return ""
}

func jsonRequest(t *testing.T, app *fiber.App, method string, path string, cookie string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}
	request := httptest.NewRequest(method, path, body)
	request.Header.Set("Accept", fiber.MIMEApplicationJSON)
	if payload != nil {
		request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func pageRequest(t *testing.T, app *fiber.App, method string, path string, cookie string, form url.Values) *http.Response {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	request := httptest.NewRequest(method, path, body)
	if form != nil {
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func decodeJSON(t *testing.T, response *http.Response) map[string]any {
	t.Helper()

	payload := map[string]any{}
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		t.Fatalf("decode json response: %v", err)
	}
	return payload
}

func readBody(t *testing.T, response *http.Response) string {
	t.Helper()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return string(body)
}

func responseCookieValue(response *http.Response, name string) string {
	for _, cookie := range response.Cookies() {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

var _ services.TextGenerator = (*countingGenerator)(nil)
