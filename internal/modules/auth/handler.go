package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"giglog/internal/middleware"
	"giglog/internal/pkg/cookies"
	"giglog/internal/pkg/response"
	"giglog/internal/pkg/token"
)

type Handler struct {
	svc     *Service
	cookies cookies.Config
	log     *logrus.Logger
}

func NewHandler(svc *Service, cookieCfg cookies.Config, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, cookies: cookieCfg, log: log}
}

// RegisterPublic mounts the unauthenticated auth routes on rg.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.POST("/sign-up", h.SignUp)
	rg.POST("/confirm-email", h.ConfirmEmail)
	rg.POST("/log-in", h.LogIn)
	rg.POST("/log-out", h.LogOut)
	rg.POST("/forgot-password", h.ForgotPassword)
	rg.POST("/verify-forgot-password", h.VerifyForgotPassword)
}

// RegisterProtected mounts the routes that require an access token.
func (h *Handler) RegisterProtected(rg *gin.RouterGroup) {
	rg.POST("/set-password", h.SetPassword)
	rg.GET("/me", h.Me)
}

func (h *Handler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	user, err := h.svc.SignUp(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, user)
}

func (h *Handler) ConfirmEmail(c *gin.Context) {
	var req ConfirmEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.svc.ConfirmEmail(c.Request.Context(), req.Email, req.Code); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "email confirmed"})
}

func (h *Handler) LogIn(c *gin.Context) {
	var req LogInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	session, err := h.svc.LogIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.setSessionCookies(c, session)
	response.Success(c, http.StatusOK, session.User)
}

func (h *Handler) LogOut(c *gin.Context) {
	refreshToken, _ := c.Cookie(cookies.RefreshTokenName)
	if err := h.svc.LogOut(c.Request.Context(), refreshToken); err != nil {
		h.respondError(c, err)
		return
	}
	h.clearSessionCookies(c)
	response.Success(c, http.StatusOK, gin.H{"message": "logged out"})
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "if the email exists, a reset code was sent"})
}

func (h *Handler) VerifyForgotPassword(c *gin.Context) {
	var req VerifyForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	session, err := h.svc.VerifyForgotPassword(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.setSessionCookies(c, session)
	response.Success(c, http.StatusOK, session.User)
}

func (h *Handler) SetPassword(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	var req SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	refreshToken, err := c.Cookie(cookies.RefreshTokenName)
	if err != nil || refreshToken == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "refresh session required")
		return
	}

	session, err := h.svc.SetPassword(c.Request.Context(), userID, refreshToken, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.setSessionCookies(c, session)
	response.Success(c, http.StatusOK, session.User)
}

func (h *Handler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	user, err := h.svc.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

func (h *Handler) setSessionCookies(c *gin.Context, session *Session) {
	http.SetCookie(c.Writer, h.cookies.Access(session.AccessToken, h.svc.AccessTTL()))
	http.SetCookie(c.Writer, h.cookies.Refresh(session.RefreshToken, h.svc.RefreshTTL()))
}

func (h *Handler) clearSessionCookies(c *gin.Context) {
	http.SetCookie(c.Writer, h.cookies.ClearAccess())
	http.SetCookie(c.Writer, h.cookies.ClearRefresh())
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmailAlreadyExists):
		response.Error(c, http.StatusConflict, "EMAIL_ALREADY_EXISTS", "an account with this email already exists")
	case errors.Is(err, ErrEmailNotConfirmed):
		response.Error(c, http.StatusForbidden, "EMAIL_NOT_CONFIRMED", "email address is not confirmed")
	case errors.Is(err, ErrAuthCodeExpired):
		response.Error(c, http.StatusBadRequest, "AUTH_CODE_EXPIRED", "code expired, request a new one")
	case errors.Is(err, ErrInvalidAuthCode):
		response.Error(c, http.StatusBadRequest, "INVALID_AUTH_CODE", "incorrect code")
	case errors.Is(err, ErrPasswordMismatch):
		response.Error(c, http.StatusBadRequest, "PASSWORD_MISMATCH", "passwords do not match")
	case errors.Is(err, ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "incorrect email or password")
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, token.ErrTokenInvalid),
		errors.Is(err, token.ErrTokenExpired):
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
	default:
		h.log.WithError(err).Error("auth request failed")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
