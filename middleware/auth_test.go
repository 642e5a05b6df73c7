package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/smartcart-api/auth"
	"github.com/junaidrashid-git/smartcart-api/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func sessionRouter(m *session.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", SessionAuth(testSecret, m), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"session_id": CurrentSession(c).ID})
	})
	return r
}

func get(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSessionAuth_Rejections(t *testing.T) {
	m := session.NewManager(session.Deps{}, time.Hour)
	r := sessionRouter(m)

	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "garbage").Code)

	token, _, err := auth.IssueSessionToken(testSecret, "gone", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, token).Code)
}

func TestSessionAuth_FreshTokenIsNotRenewed(t *testing.T) {
	m := session.NewManager(session.Deps{}, time.Hour)
	s := m.Create()
	token, _, err := auth.IssueSessionToken(testSecret, s.ID, time.Hour)
	require.NoError(t, err)

	w := get(sessionRouter(m), token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get(HeaderSessionToken))
}

func TestSessionAuth_RenewsAgingToken(t *testing.T) {
	m := session.NewManager(session.Deps{}, time.Hour)
	s := m.Create()
	r := sessionRouter(m)
	aging, _, err := auth.IssueSessionToken(testSecret, s.ID, 10*time.Minute)
	require.NoError(t, err)

	w := get(r, aging)
	require.Equal(t, http.StatusOK, w.Code)
	renewed := w.Header().Get(HeaderSessionToken)
	require.NotEmpty(t, renewed)

	expires, err := time.Parse(time.RFC3339, w.Header().Get(HeaderSessionExpires))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	id, err := auth.ParseSessionToken(testSecret, renewed)
	require.NoError(t, err)
	assert.Equal(t, s.ID, id)
	assert.Equal(t, http.StatusOK, get(r, renewed).Code)
}
