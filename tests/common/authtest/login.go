//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"rental-booking/internal/handler/dto/request"
	"rental-booking/tests/common/dbtest"
	"rental-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// LoginUser runs the two-step login and returns the issued access token.
func LoginUser(t *testing.T, router *gin.Engine, mailbox *Mailbox, email, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	code := mailbox.TakeCode(t, email)
	w = httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/verify",
		request.VerifyRequest{Email: email, Code: code, Type: "login"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	accessCookie := httptest.ExtractCookie(w, "access_token")
	require.NotNil(t, accessCookie, "Access token not found in cookies")
	require.NotEmpty(t, accessCookie.Value, "Access token cookie is empty")

	return accessCookie.Value
}

func CreateAndLogin(t *testing.T, db dbtest.DBLike, router *gin.Engine, mailbox *Mailbox, email, role string) (uuid.UUID, string) {
	t.Helper()
	userID := dbtest.CreateTestUser(t, db, email, role)
	return userID, LoginUser(t, router, mailbox, email, dbtest.DefaultPassword)
}

func LogoutUser(t *testing.T, router *gin.Engine, cookies []*http.Cookie) {
	t.Helper()

	w := httptest.PerformRequestWithCookies(t, router, http.MethodPost, "/api/auth/logout", nil, cookies, "")
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
}
