package httpapi

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/akulikov/boardd/internal/logging"
	"github.com/akulikov/boardd/internal/server/auth"
	"github.com/akulikov/boardd/internal/server/config"
	"github.com/akulikov/boardd/internal/server/models"
	"github.com/akulikov/boardd/internal/server/repositories/repomanager"
	"github.com/akulikov/boardd/internal/server/services"

	_ "modernc.org/sqlite"
)

const testSchema = `
CREATE TABLE users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT NOT NULL UNIQUE,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'user',
  activated INTEGER NOT NULL DEFAULT 0,
  activation_code TEXT NOT NULL DEFAULT '',
  recover_token TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMP NOT NULL
);
CREATE TABLE communities (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  thumbnail TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMP NOT NULL
);
CREATE TABLE posts (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  community_id INTEGER NOT NULL,
  title TEXT NOT NULL,
  content TEXT NOT NULL,
  creator INTEGER,
  secret_hash TEXT,
  display_name TEXT NOT NULL,
  view_count INTEGER NOT NULL DEFAULT 0,
  rate_plus INTEGER NOT NULL DEFAULT 0,
  rate_minus INTEGER NOT NULL DEFAULT 0,
  comment_count INTEGER NOT NULL DEFAULT 0,
  creation_time TIMESTAMP NOT NULL,
  modification_time TIMESTAMP,
  CHECK ((creator IS NULL) <> (secret_hash IS NULL))
);
CREATE TABLE comments (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  community_id INTEGER NOT NULL,
  post_id INTEGER NOT NULL,
  content TEXT NOT NULL,
  creator INTEGER,
  secret_hash TEXT,
  display_name TEXT NOT NULL,
  creation_time TIMESTAMP NOT NULL,
  modification_time TIMESTAMP,
  CHECK ((creator IS NULL) <> (secret_hash IS NULL))
);
CREATE TABLE post_ratings (
  post_id INTEGER NOT NULL,
  user_id INTEGER NOT NULL,
  plus INTEGER NOT NULL,
  created_at TIMESTAMP NOT NULL,
  PRIMARY KEY (post_id, user_id)
);
`

type capturingMailer struct {
	codes map[string]string
	links map[string]string
}

func (m *capturingMailer) SendActivationCode(_ context.Context, to, code string) error {
	m.codes[to] = code
	return nil
}

func (m *capturingMailer) SendRecoverLink(_ context.Context, to, link string) error {
	m.links[to] = link
	return nil
}

type testServer struct {
	*Server
	db     *sql.DB
	cfg    *config.Config
	mailer *capturingMailer
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	db, err := sql.Open("sqlite", fmt.Sprintf("file:api_%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.BcryptCost = bcrypt.MinCost

	rm := repomanager.NewPostgresRepositoryManager()
	tokens := auth.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	mailer := &capturingMailer{codes: map[string]string{}, links: map[string]string{}}
	logger := logging.NewSlogLogger(slog.Default())

	authSvc := services.NewAuthService(db, rm, cfg, tokens, hasher, mailer, logger)
	userSvc := services.NewUserService(db, rm, cfg, authSvc, hasher, mailer, logger)
	srv := NewServer(cfg, logger, tokens,
		authSvc, userSvc,
		services.NewCommunityService(db, rm),
		services.NewPostService(db, rm, hasher),
		services.NewCommentService(db, rm, hasher))

	return &testServer{Server: srv, db: db, cfg: cfg, mailer: mailer}
}

type request struct {
	method  string
	path    string
	body    any
	bearer  string
	cookies []*http.Cookie
}

func (ts *testServer) do(t *testing.T, req request) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	httpReq := httptest.NewRequest(req.method, req.path, body)
	httpReq.Header.Set("Content-Type", "application/json")
	if req.bearer != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.bearer)
	}
	for _, ck := range req.cookies {
		httpReq.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, httpReq)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// signup registers, activates, and logs in a user over HTTP, returning the
// access token and the refresh cookie.
func (ts *testServer) signup(t *testing.T, username string) (string, *http.Cookie) {
	t.Helper()
	email := username + "@example.org"

	rec := ts.do(t, request{method: http.MethodPost, path: "/auth/register",
		body: jsonBody{"username": username, "email": email, "password": "secret123"}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(t, request{method: http.MethodPost, path: "/auth/email/activate",
		body: jsonBody{"email": email, "code": ts.mailer.codes[email]}})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = ts.do(t, request{method: http.MethodPost, path: "/auth/login",
		body: jsonBody{"username": username, "password": "secret123"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	session := decode[sessionResponse](t, rec)
	return session.AccessToken, refreshCookie(t, ts.cfg, rec)
}

// makeAdmin flips the stored role and returns a fresh session for it.
func (ts *testServer) makeAdmin(t *testing.T, username string) string {
	t.Helper()
	_, _ = ts.signup(t, username)
	_, err := ts.db.Exec(`UPDATE users SET role = $1 WHERE username = $2`, models.RoleAdmin, username)
	require.NoError(t, err)

	rec := ts.do(t, request{method: http.MethodPost, path: "/auth/login",
		body: jsonBody{"username": username, "password": "secret123"}})
	require.Equal(t, http.StatusOK, rec.Code)
	return decode[sessionResponse](t, rec).AccessToken
}

func refreshCookie(t *testing.T, cfg *config.Config, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == cfg.RefreshCookieName {
			return ck
		}
	}
	t.Fatal("refresh cookie not set")
	return nil
}

type jsonBody = map[string]any

func pathOf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
