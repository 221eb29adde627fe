package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/flowfam/family-api/internal/database"
	"github.com/flowfam/family-api/internal/mail"
	"github.com/flowfam/family-api/internal/middleware"
	"github.com/flowfam/family-api/internal/models"
	"github.com/flowfam/family-api/internal/repository"
	"github.com/flowfam/family-api/internal/services"
)

// setupFamilyRouter wires the auth and family routes the way the server does,
// with a cookie session store standing in for redis.
func setupFamilyRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Family{},
		&models.FamilyMember{},
	)
	require.NoError(t, err)

	database.SetDB(db)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	mailer, err := mail.NewMailer("", "", "", "")
	require.NoError(t, err)

	authHandler := NewAuthHandler(services.NewAuthService(userRepo, familyRepo))
	familyHandler := NewFamilyHandler(services.NewFamilyService(familyRepo, mailer))

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions("flowfam_session", store))

	r.POST("/api/auth/signup", authHandler.Signup)
	r.POST("/api/auth/login", authHandler.Login)

	families := r.Group("/api/families", middleware.RequireAuth())
	families.POST("", familyHandler.CreateFamily)
	families.POST("/join", familyHandler.JoinFamily)

	family := r.Group("/api/family", middleware.RequireAuth(), middleware.RequireFamilyMember())
	family.GET("", familyHandler.GetFamily)

	return r
}

// loginAs signs up and logs in a fresh account, returning the session cookies.
func loginAs(t *testing.T, r *gin.Engine, email string) []*http.Cookie {
	t.Helper()

	body := jsonBody(t, map[string]string{"email": email, "password": "supersecret"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	body = jsonBody(t, map[string]string{"email": email, "password": "supersecret"})
	req = httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func jsonBody(t *testing.T, payload any) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func doJSON(r *gin.Engine, method, path string, body *bytes.Reader, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateFamilyRequiresAuth(t *testing.T) {
	r := setupFamilyRouter(t)

	body := jsonBody(t, map[string]string{"name": "Miller", "member_name": "Alex"})
	w := doJSON(r, http.MethodPost, "/api/families", body, nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateAndJoinFamilyFlow(t *testing.T) {
	r := setupFamilyRouter(t)

	creator := loginAs(t, r, "alex@example.com")

	// Family routes 404 until the account belongs to a family.
	w := doJSON(r, http.MethodGet, "/api/family", nil, creator)
	require.Equal(t, http.StatusNotFound, w.Code)

	body := jsonBody(t, map[string]string{"name": "Miller", "member_name": "Alex"})
	w = doJSON(r, http.MethodPost, "/api/families", body, creator)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Family struct {
			ID       uint64 `json:"id"`
			Name     string `json:"name"`
			JoinCode string `json:"join_code"`
		} `json:"family"`
		Member struct {
			Role string `json:"role"`
		} `json:"member"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Miller", created.Family.Name)
	assert.Len(t, created.Family.JoinCode, 6)
	assert.Equal(t, string(models.RoleParent), created.Member.Role)

	// A second parent joins with the code typed in lowercase.
	joiner := loginAs(t, r, "kim@example.com")
	body = jsonBody(t, map[string]string{
		"code":        string(bytes.ToLower([]byte(created.Family.JoinCode))),
		"member_name": "Kim",
	})
	w = doJSON(r, http.MethodPost, "/api/families/join", body, joiner)
	require.Equal(t, http.StatusOK, w.Code)

	var joined struct {
		Family struct {
			ID uint64 `json:"id"`
		} `json:"family"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &joined))
	assert.Equal(t, created.Family.ID, joined.Family.ID)

	// Both accounts now resolve to the same roster.
	w = doJSON(r, http.MethodGet, "/api/family", nil, joiner)
	require.Equal(t, http.StatusOK, w.Code)

	var roster struct {
		Members []struct {
			Name string `json:"name"`
		} `json:"members"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &roster))
	require.Len(t, roster.Members, 2)
}

func TestJoinFamilyUnknownCode(t *testing.T) {
	r := setupFamilyRouter(t)

	joiner := loginAs(t, r, "kim@example.com")
	body := jsonBody(t, map[string]string{"code": "NOPE99", "member_name": "Kim"})
	w := doJSON(r, http.MethodPost, "/api/families/join", body, joiner)

	require.Equal(t, http.StatusNotFound, w.Code)
}
