package handler

import (
	"net/http"
	"time"

	"nexus_backend/internal/auth/service"
	"nexus_backend/internal/auth/transport"
	"nexus_backend/platform/httpkit"
	"nexus_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"

	// The refresh cookie is scoped to the auth endpoints so the browser
	// never sends it with regular API calls.
	refreshCookieName = "nexus_refresh"
	refreshCookiePath = "/api/v1/auth"
)

// Handler handles HTTP requests for sign-in, token refresh and user
// administration.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterAuthRoutes registers the credential endpoints. The caller applies
// the auth rate limiter to the group.
func (h *Handler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	rg.POST("/sign-in", h.SignIn)
	rg.POST("/refresh", h.Refresh)
	rg.POST("/sign-out", h.SignOut)
	rg.POST("/accept-invite", h.AcceptInvite)
}

// RegisterProtectedRoutes registers routes for any signed-in user.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/me", h.Me)
}

// RegisterAdminRoutes registers the user management routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", h.ListUsers)
	rg.POST("/users/invite", h.Invite)
	rg.PUT("/users/:id/roles", h.SetRoles)
}

// SignIn handles POST /api/v1/auth/sign-in
func (h *Handler) SignIn(c *gin.Context) {
	var req transport.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	pair, err := h.svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if httpkit.HandleError(c, err) {
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken, pair.RefreshExpiresAt)
	httpkit.OK(c, transport.AuthResponse{AccessToken: pair.AccessToken})
}

// Refresh handles POST /api/v1/auth/refresh
func (h *Handler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookieName)
	if err != nil || refreshToken == "" {
		httpkit.Error(c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}

	pair, err := h.svc.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		h.clearRefreshCookie(c)
	}
	if httpkit.HandleError(c, err) {
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken, pair.RefreshExpiresAt)
	httpkit.OK(c, transport.AuthResponse{AccessToken: pair.AccessToken})
}

// SignOut handles POST /api/v1/auth/sign-out
func (h *Handler) SignOut(c *gin.Context) {
	refreshToken, _ := c.Cookie(refreshCookieName)

	err := h.svc.SignOut(c.Request.Context(), refreshToken)
	h.clearRefreshCookie(c)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.NoContent(c)
}

// AcceptInvite handles POST /api/v1/auth/accept-invite
func (h *Handler) AcceptInvite(c *gin.Context) {
	var req transport.AcceptInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	pair, err := h.svc.AcceptInvite(c.Request.Context(), req.Token, req.Password)
	if httpkit.HandleError(c, err) {
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken, pair.RefreshExpiresAt)
	httpkit.OK(c, transport.AuthResponse{AccessToken: pair.AccessToken})
}

// Me handles GET /api/v1/users/me
func (h *Handler) Me(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)

	profile, err := h.svc.Profile(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ProfileResponse{
		ID:        profile.ID,
		Email:     profile.Email,
		Roles:     profile.Roles,
		CreatedAt: profile.CreatedAt,
	})
}

// ListUsers handles GET /api/v1/admin/users
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, transport.UserResponse{
			ID:        u.ID,
			Email:     u.Email,
			Roles:     u.Roles,
			CreatedAt: u.CreatedAt,
		})
	}
	httpkit.OK(c, out)
}

// Invite handles POST /api/v1/admin/users/invite
func (h *Handler) Invite(c *gin.Context) {
	var req transport.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	invite, err := h.svc.Invite(c.Request.Context(), req.Email, req.Roles)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, transport.InviteResponse{
		Email:     invite.Email,
		Roles:     invite.Roles,
		ExpiresAt: invite.ExpiresAt,
	})
}

// SetRoles handles PUT /api/v1/admin/users/:id/roles
func (h *Handler) SetRoles(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid user id", nil)
		return
	}

	var req transport.RoleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	if err := h.svc.SetRoles(c.Request.Context(), userID, req.Roles); httpkit.HandleError(c, err) {
		return
	}

	httpkit.NoContent(c)
}

func (h *Handler) setRefreshCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, token, maxAge, refreshCookiePath, "", true, true)
}

func (h *Handler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, "", -1, refreshCookiePath, "", true, true)
}
