package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"frutaria/config"
	dbpkg "frutaria/db"
	"frutaria/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Configuration {
	var cfg config.Configuration
	cfg.ApiPort = "8080"
	cfg.PublicURL = "http://localhost:8080"
	cfg.Security.SecretKey = "test-secret"
	cfg.Security.ResetTokenMaxValid = 3600
	cfg.Security.SessionMaxValidHours = 24
	return cfg
}

// newTestApp sobe um gin de teste com sqlite em arquivo temporário e o
// mesmo wiring de contexto do main (db + env). Mailer sem SMTP (no-op
// logado) e índice de busca apontando pra onde o teste mandar.
func newTestApp(t *testing.T, search *tools.SearchIndexClient) (*gin.Engine, *gorm.DB, *Env) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := gorm.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	dbpkg.AutoMigrate(database)

	env := &Env{
		Cfg:    testConfig(),
		Mailer: tools.NewMailer("", 0, "", "", "", "http://localhost:8080", time.Second),
		Search: search,
	}

	r := gin.New()
	r.Use(dbpkg.SetDBtoContext(database))
	r.Use(SetEnvToContext(env))

	r.GET("/", Products)
	r.GET("/products", Products)
	r.GET("/search", Search)
	r.GET("/signup", SignupForm)
	r.POST("/signup", Signup)
	r.GET("/login", LoginForm)
	r.POST("/login", Login)
	r.GET("/forgot", ForgotForm)
	r.POST("/forgot", ForgotPassword)
	r.GET("/reset/:token", ResetForm)
	r.POST("/reset/:token", ResetPassword)

	auth := r.Group("")
	auth.Use(AuthRequired())
	auth.GET("/logout", Logout)
	auth.GET("/me", Me)

	return r, database, env
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signupAlice(t *testing.T, r *gin.Engine) LoginResponse {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/signup", map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "longpassword1",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
