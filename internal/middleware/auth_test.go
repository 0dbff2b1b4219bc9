package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multiauth-service/internal/auth/token"
)

func protected(t *testing.T) (*AuthMiddleware, *token.Issuer) {
	t.Helper()
	issuer, err := token.NewIssuer("test-secret-key-must-be-32-bytes!", time.Hour)
	require.NoError(t, err)
	return NewAuthMiddleware(issuer), issuer
}

func TestRequireAuthAcceptsValidBearer(t *testing.T) {
	mw, issuer := protected(t)

	tok, err := issuer.Issue("user-1")
	require.NoError(t, err)

	var seenID string
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID, _ = UserIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/username", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", seenID)
}

func TestRequireAuthRejects(t *testing.T) {
	mw, _ := protected(t)

	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	cases := map[string]string{
		"missing header": "",
		"not bearer":     "Basic dXNlcjpwYXNz",
		"garbage token":  "Bearer not-a-jwt",
	}
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/username", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
	}
}

func TestGinRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mw, issuer := protected(t)

	r := gin.New()
	r.GET("/api/me", GinRequireAuth(mw), func(c *gin.Context) {
		id, ok := UserIDFromContext(c.Request.Context())
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"userId": id})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "missing token must abort before the gin handler")

	tok, err := issuer.Issue("user-1")
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}
