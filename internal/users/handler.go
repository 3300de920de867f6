package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cvtoaster-backend/internal/otp"
	"cvtoaster-backend/internal/shared/auth"
	"cvtoaster-backend/internal/shared/server/middleware"
	"cvtoaster-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches account routes to the router group. The /auth
// prefix is public; /auth/profile and /me run behind the auth middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/signup", h.signup)
	rg.POST("/auth/verify", h.verify)
	rg.POST("/auth/login", h.login)
	rg.POST("/auth/password-reset/request", h.passwordResetRequest)
	rg.POST("/auth/password-reset/confirm", h.passwordResetConfirm)
	rg.PUT("/auth/profile", h.updateProfile)
	rg.GET("/me", h.me)
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	if err := h.Svc.RequestSignup(c.Request.Context(), req.Username, req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "username, valid email and a password of at least 8 characters are required", nil)
		case errors.Is(err, ErrEmailTaken):
			respond.Error(c, http.StatusConflict, "email_taken", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "signup_failed", "failed to start signup", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"message": "verification code sent"})
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (h *Handler) verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	user, err := h.Svc.VerifySignup(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, otp.ErrInvalidCode):
			respond.Error(c, http.StatusBadRequest, "invalid_code", err.Error(), nil)
		case errors.Is(err, ErrEmailTaken):
			respond.Error(c, http.StatusConflict, "email_taken", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "signup_failed", "failed to complete signup", nil)
		}
		return
	}

	h.respondWithToken(c, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	user, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "login_failed", "failed to log in", nil)
		return
	}

	h.respondWithToken(c, user)
}

type passwordResetRequestBody struct {
	Email string `json:"email"`
}

func (h *Handler) passwordResetRequest(c *gin.Context) {
	var req passwordResetRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	// Unknown emails get the same response as known ones.
	if err := h.Svc.RequestPasswordReset(c.Request.Context(), req.Email); err != nil && !errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusInternalServerError, "reset_failed", "failed to request password reset", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"message": "if the email is registered, a reset code has been sent"})
}

type passwordResetConfirmBody struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

func (h *Handler) passwordResetConfirm(c *gin.Context) {
	var req passwordResetConfirmBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	if err := h.Svc.ConfirmPasswordReset(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, otp.ErrInvalidCode):
			respond.Error(c, http.StatusBadRequest, "invalid_code", err.Error(), nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "password must be at least 8 characters", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "reset_failed", "failed to reset password", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"message": "password updated"})
}

type updateProfileRequest struct {
	Username string `json:"username"`
}

func (h *Handler) updateProfile(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	user, err := h.Svc.UpdateProfile(c.Request.Context(), userID, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "username is required", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "update_failed", "failed to update profile", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(user))
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	user, err := h.Svc.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "lookup_failed", "failed to load profile", nil)
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(user))
}

func (h *Handler) respondWithToken(c *gin.Context, user User) {
	token, err := auth.SignJWT(auth.Claims{Sub: user.ID, Email: user.Email, Name: user.Username})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "token_failed", "failed to issue token", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"token": token,
		"user":  toResponse(user),
	})
}
