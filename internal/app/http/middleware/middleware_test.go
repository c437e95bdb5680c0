package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chitrakalakar-app/internal/domain"
	"chitrakalakar-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/me", AuthMiddleware("s3cret"), RequireRole("artist", "admin"), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("user_id"))
	})

	do := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, do("").Code)
	assert.Equal(t, http.StatusUnauthorized, do("Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, do("Bearer not-a-jwt").Code)

	tok, err := IssueToken("s3cret", "u-1", "u@example.com", "artist", time.Hour)
	require.NoError(t, err)
	w := do("Bearer " + tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-1", w.Body.String())

	tok, err = IssueToken("s3cret", "u-2", "c@example.com", "customer", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, do("Bearer "+tok).Code)

	forged, err := IssueToken("other", "u-1", "u@example.com", "admin", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do("Bearer "+forged).Code)
}

type accounts map[string]*users.Account

func (a accounts) FindAccount(_ context.Context, id string) (*users.Account, error) {
	if acc, ok := a[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrNotFound
}

func TestRequireApprovedArtist(t *testing.T) {
	store := accounts{
		"ok":      {ID: "ok", Role: users.RoleArtist, IsApproved: true, IsActive: true},
		"pending": {ID: "pending", Role: users.RoleArtist, IsActive: true},
		"off":     {ID: "off", Role: users.RoleArtist, IsApproved: true},
	}
	for id, want := range map[string]int{
		"ok":      http.StatusOK,
		"pending": http.StatusForbidden,
		"off":     http.StatusForbidden,
		"ghost":   http.StatusUnauthorized,
	} {
		r := gin.New()
		r.GET("/x", func(c *gin.Context) { c.Set("user_id", id) }, RequireApprovedArtist(store), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, want, w.Code, id)
	}
}

func TestRequireActiveAccount(t *testing.T) {
	store := accounts{
		"on":  {ID: "on", Role: users.RoleCustomer, IsActive: true},
		"off": {ID: "off", Role: users.RoleCustomer},
	}
	for id, want := range map[string]int{
		"on":    http.StatusOK,
		"off":   http.StatusForbidden,
		"ghost": http.StatusUnauthorized,
	} {
		r := gin.New()
		r.GET("/x", func(c *gin.Context) { c.Set("user_id", id) }, RequireActiveAccount(store), func(c *gin.Context) {
			acc, _ := c.Get("account")
			assert.Same(t, store[id], acc)
			c.Status(http.StatusOK)
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, want, w.Code, id)
	}
}

func TestSanitize(t *testing.T) {
	r := gin.New()
	r.Use(SanitizeAndCleanInputMiddleware())
	r.POST("/echo", func(c *gin.Context) {
		b, _ := io.ReadAll(c.Request.Body)
		c.Data(http.StatusOK, "application/json", b)
	})

	body := `{"title":"<script>x</script>Lotus","password":"<b>p</b>","amount":12345678901,"tags":["<i>a</i>"]}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString(body)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"title":"Lotus","password":"<b>p</b>","amount":12345678901,"tags":["a"]}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("{bad")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
