package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/escola-api/internal/dto"
	"github.com/noah-isme/escola-api/internal/middleware"
	"github.com/noah-isme/escola-api/internal/models"
	appErrors "github.com/noah-isme/escola-api/pkg/errors"
	"github.com/noah-isme/escola-api/pkg/response"
)

type authService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*models.LoginResponse, error)
	Register(ctx context.Context, req dto.RegisterStudentRequest) (*models.RegisterResponse, error)
}

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	auth authService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(auth authService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login godoc
// @Summary Authenticate student or teacher
// @Description Accepts form fields or JSON. tipo selects the account table.
// @Tags Authentication
// @Accept x-www-form-urlencoded
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Login payload"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} errors.Error
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	res, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// Register godoc
// @Summary Student self-registration
// @Tags Authentication
// @Accept x-www-form-urlencoded
// @Accept json
// @Produce json
// @Param payload body dto.RegisterStudentRequest true "Registration payload"
// @Success 201 {object} models.RegisterResponse
// @Failure 400 {object} errors.Error
// @Router /register/aluno [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	res, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}

// Me godoc
// @Summary Current account
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.JWTClaims
// @Failure 401 {object} errors.Error
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, claims)
}
