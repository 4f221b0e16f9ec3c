package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docmanager-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the auth service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches auth routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/signup", h.signup)
	rg.POST("/auth/login", h.login)
	rg.GET("/auth/check/:username", h.check)
}

type credentialRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) signup(c *gin.Context) {
	var req credentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	creds, err := h.Svc.Signup(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusUnprocessableEntity, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrDuplicateUser):
			respond.Error(c, http.StatusBadRequest, "duplicate_user", "Username already exists", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "persistence_error", err.Error(), nil)
		}
		return
	}

	respond.Created(c, creds)
}

func (h *Handler) login(c *gin.Context) {
	var req credentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	creds, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusUnprocessableEntity, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrUserNotFound):
			respond.Error(c, http.StatusNotFound, "user_not_found", "User not found", nil)
		case errors.Is(err, ErrInvalidCredentials):
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "persistence_error", err.Error(), nil)
		}
		return
	}

	respond.OK(c, creds)
}

func (h *Handler) check(c *gin.Context) {
	result, err := h.Svc.CheckUser(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "persistence_error", err.Error(), nil)
		return
	}
	respond.OK(c, result)
}
