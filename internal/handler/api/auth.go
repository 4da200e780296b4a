package api

import (
	"net/http"

	"rental-booking/internal/domain/verification"
	reqdto "rental-booking/internal/handler/dto/request"
	resdto "rental-booking/internal/handler/dto/response"
	"rental-booking/internal/handler/httperr"
	"rental-booking/internal/handler/middleware"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/pkg/cookie"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/pkg/jwt"
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errNoUserInContext = errs.New("user_id missing from request context")

type AuthHandler struct {
	commands   commands.AuthCommands
	queries    queries.UserQueries
	jwtService *jwt.Service
	cfg        config.Config
}

func NewAuthHandler(cmds commands.AuthCommands, q queries.UserQueries, jwtService *jwt.Service, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		commands:   cmds,
		queries:    q,
		jwtService: jwtService,
		cfg:        cfg,
	}
}

// @Summary Start registration
// @Description Validate the sign-up data and mail a verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterRequest true "Register request"
// @Success 202 {object} resdto.MessageResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req reqdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	in, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request data", nil)
		return
	}

	if err := h.commands.StartRegistration(c.Request.Context(), in); err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resdto.MessageResponse{Message: "Verification code sent"})
}

// @Summary Start login
// @Description Check email and password and mail a verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 202 {object} resdto.MessageResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	if err := h.commands.StartLogin(c.Request.Context(), req.ToInput()); err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resdto.MessageResponse{Message: "Verification code sent"})
}

// @Summary Verify code
// @Description Confirm a pending registration, login or password reset.
// @Description Registration and login return the user and set the access_token cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.VerifyRequest true "Verify request"
// @Success 200 {object} resdto.AuthResponse
// @Success 201 {object} resdto.AuthResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /auth/verify [post]
func (h *AuthHandler) Verify(c *gin.Context) {
	var req reqdto.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	kind, err := verification.NewKind(req.Type)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	ctx := c.Request.Context()
	switch kind {
	case verification.KindRegister:
		result, err := h.commands.VerifyRegistration(ctx, req.Email, req.Code)
		if err != nil {
			abortWithUseCaseError(c, err)
			return
		}
		h.respondAuthenticated(c, http.StatusCreated, result)
	case verification.KindLogin:
		result, err := h.commands.VerifyLogin(ctx, req.Email, req.Code)
		if err != nil {
			abortWithUseCaseError(c, err)
			return
		}
		h.respondAuthenticated(c, http.StatusOK, result)
	case verification.KindPasswordReset:
		if err := h.commands.CheckResetCode(ctx, req.Email, req.Code); err != nil {
			abortWithUseCaseError(c, err)
			return
		}
		c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Code verified"})
	}
}

// @Summary Resend code
// @Description Issue a fresh code for a pending flow; the previous code stops working
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.ResendCodeRequest true "Resend request"
// @Success 202 {object} resdto.MessageResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /auth/resend-code [post]
func (h *AuthHandler) ResendCode(c *gin.Context) {
	var req reqdto.ResendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	kind, err := verification.NewKind(req.Type)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	if err := h.commands.ResendCode(c.Request.Context(), req.Email, kind); err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resdto.MessageResponse{Message: "Verification code sent"})
}

// @Summary Request password reset
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.PasswordResetRequest true "Password reset request"
// @Success 202 {object} resdto.MessageResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /auth/password-reset [post]
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req reqdto.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	if err := h.commands.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resdto.MessageResponse{Message: "Verification code sent"})
}

// @Summary Reset password
// @Description Consume the reset code and store the new password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.ResetPasswordRequest true "Reset password request"
// @Success 200 {object} resdto.MessageResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /auth/password-reset/confirm [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req reqdto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	if err := h.commands.ResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Password updated"})
}

// @Summary User logout
// @Description Clear the access_token cookie
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// tokens are stateless; dropping the cookie is all the server can do
	cookie.ClearAccessTokenCookie(c, h.cfg.Cookie)
	c.Status(http.StatusNoContent)
}

// @Summary Get current user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.ProfileResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errNoUserInContext, "Internal server error", nil)
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), userID)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	resp, err := resdto.FromUserView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) respondAuthenticated(c *gin.Context, status int, result *commands.AuthResult) {
	duration := h.jwtService.TokenDuration()
	resp, err := resdto.FromAuthResult(result, int64(duration.Seconds()))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	cookie.SetAccessTokenCookie(c, h.cfg.Cookie, result.Token, duration)
	c.JSON(status, resp)
}
