package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/terraincognita07/fortuna/internal/config"
)

func TestCSRFMiddlewareConfigUsesCookieSecureFlag(t *testing.T) {
	secureConfig := csrfMiddlewareConfig(true)
	if !secureConfig.CookieSecure {
		t.Fatal("expected csrf cookie secure flag to be enabled")
	}
	if !secureConfig.CookieHTTPOnly {
		t.Fatal("expected csrf cookie to be httpOnly")
	}
	if secureConfig.CookieName != "fortuna_csrf" {
		t.Fatalf("expected csrf cookie name fortuna_csrf, got %q", secureConfig.CookieName)
	}
	if secureConfig.KeyLookup != "form:csrf_token" {
		t.Fatalf("expected csrf key lookup form:csrf_token, got %q", secureConfig.KeyLookup)
	}

	insecureConfig := csrfMiddlewareConfig(false)
	if insecureConfig.CookieSecure {
		t.Fatal("expected csrf cookie secure flag to be disabled")
	}
}

func TestCSRFMiddlewareSkipsJSONBodies(t *testing.T) {
	app := fiber.New()
	app.Use(csrf.New(csrfMiddlewareConfig(false)))
	app.Post("/submit", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	jsonRequest := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(`{}`))
	jsonRequest.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	response, err := app.Test(jsonRequest, -1)
	if err != nil {
		t.Fatalf("json request failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusNoContent {
		t.Fatalf("expected json request to pass, got %d", response.StatusCode)
	}

	formRequest := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader("name=value"))
	formRequest.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	response, err = app.Test(formRequest, -1)
	if err != nil {
		t.Fatalf("form request failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusForbidden {
		t.Fatalf("expected form request without token to be rejected, got %d", response.StatusCode)
	}
}

func TestMergeAdminPrefersFlags(t *testing.T) {
	base := config.AdminConfig{Name: "Admin User", Username: "env-admin", Email: "env@example.com", Password: "envpassword"}
	merged := mergeAdmin(base, config.AdminConfig{Username: "flag-admin", Password: "flagpassword"})

	if merged.Username != "flag-admin" || merged.Password != "flagpassword" {
		t.Fatalf("expected flags to override, got %+v", merged)
	}
	if merged.Email != "env@example.com" || merged.Name != "Admin User" {
		t.Fatalf("expected unset flags to keep env values, got %+v", merged)
	}
}

func TestLoadCatalogFromFile(t *testing.T) {
	if _, err := loadCatalog(""); err != nil {
		t.Fatalf("expected embedded catalog, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("personality_traits: []\n"), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	if _, err := loadCatalog(path); err == nil {
		t.Fatal("expected incomplete catalog to be rejected")
	}
	if _, err := loadCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected missing catalog file to fail")
	}
}

func TestCommandsShareConfiguredDatabase(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_PATH", filepath.Join(dir, "fortuna.db"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("ADMIN_USERNAME", "")
	t.Setenv("ADMIN_EMAIL", "")
	t.Setenv("ADMIN_PASSWORD", "")
	envFile := filepath.Join(dir, "missing.env")

	output := runRootCommand(t, "--env-file", envFile, "migrate")
	if !strings.Contains(output, "is up to date") {
		t.Fatalf("unexpected migrate output %q", output)
	}

	output = runRootCommand(t, "--env-file", envFile, "seed",
		"--admin-username", "root",
		"--admin-email", "root@example.com",
		"--admin-password", "rootpassword",
	)
	if !strings.Contains(output, "Seeded 16 personality traits and 12 yearly forecasts") || !strings.Contains(output, "Admin account root created") {
		t.Fatalf("unexpected seed output %q", output)
	}

	output = runRootCommand(t, "--env-file", envFile, "reset-password", "root")
	if !strings.Contains(output, "Temporary password: ") {
		t.Fatalf("unexpected reset output %q", output)
	}
}

func TestResetPasswordRequiresUsername(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_PATH", filepath.Join(dir, "fortuna.db"))

	root := newRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--env-file", filepath.Join(dir, "missing.env"), "reset-password"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected missing username argument to fail")
	}
}

func runRootCommand(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("fortuna %s failed: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}
