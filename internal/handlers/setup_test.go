package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kushali13/woc8.0-job-recruitment-kushali/internal/middleware"
	"github.com/kushali13/woc8.0-job-recruitment-kushali/internal/models"
	"github.com/kushali13/woc8.0-job-recruitment-kushali/internal/session"
)

const testSecret = "test-secret"

type testEnv struct {
	app       *fiber.App
	db        *gorm.DB
	uploadDir string
}

// newTestEnv wires the real route table over in-memory sqlite and miniredis.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.User{}, &models.UserProfile{}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessions := session.NewStore(rdb)

	uploadDir := t.TempDir()

	app := fiber.New(fiber.Config{BodyLimit: 12 * 1024 * 1024})

	authH := &AuthHandler{DB: gdb, Sessions: sessions, JWTSecret: testSecret, Expires: 60}
	profileH := NewProfileHandler(gdb, uploadDir)
	adminH := NewAdminHandler(gdb)

	api := app.Group("/api")
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)

	protected := api.Group("/",
		middleware.JWTFromCookie(testSecret, sessions),
		middleware.AttachJWTLocals(),
	)
	protected.Get("/profile/me", profileH.Me)
	protected.Put("/profile/edit", profileH.Edit)
	protected.Get("/admin/users", middleware.RequireStaff(), adminH.ListUsers)

	return &testEnv{app: app, db: gdb, uploadDir: uploadDir}
}

func (e *testEnv) postJSON(t *testing.T, path string, payload any, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	return out
}

func registerPayload(username string) map[string]string {
	return map[string]string{
		"username":         username,
		"email":            username + "@example.com",
		"password":         "supersecret",
		"password_confirm": "supersecret",
		"user_type":        "job_seeker",
	}
}

func (e *testEnv) register(t *testing.T, username string) {
	t.Helper()
	resp := e.postJSON(t, "/api/auth/register", registerPayload(username))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func (e *testEnv) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()
	resp := e.postJSON(t, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, ck := range resp.Cookies() {
		if ck.Name == middleware.CookieName && ck.Value != "" {
			return ck
		}
	}
	t.Fatal("no session cookie in login response")
	return nil
}

// multipartForm builds a profile-edit body; fileName empty means no upload.
func multipartForm(t *testing.T, fields map[string]string, fileName string, fileSize int) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := w.CreateFormFile("resume", fileName)
		require.NoError(t, err)
		_, err = fw.Write(bytes.Repeat([]byte("a"), fileSize))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func (e *testEnv) editProfile(t *testing.T, ck *http.Cookie, fields map[string]string, fileName string, fileSize int) *http.Response {
	t.Helper()
	body, contentType := multipartForm(t, fields, fileName, fileSize)

	req := httptest.NewRequest(http.MethodPut, "/api/profile/edit", body)
	req.Header.Set("Content-Type", contentType)
	if ck != nil {
		req.AddCookie(ck)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func newGetRequest(t *testing.T, path string, cookies ...*http.Cookie) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	return req
}

func (e *testEnv) userCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&models.User{}).Count(&n).Error)
	return n
}

func (e *testEnv) profileCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&models.UserProfile{}).Count(&n).Error)
	return n
}
