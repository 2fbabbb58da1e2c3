// Package handler exposes the HTTP surface: the public auth endpoints, the
// role-gated greeting endpoints, and health.
package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authd/auth"
	apperrors "github.com/skillsenselab/authd/errors"
	"github.com/skillsenselab/authd/logger"
	"github.com/skillsenselab/authd/server"
	"github.com/skillsenselab/authd/util"
	"github.com/skillsenselab/authd/validation"
)

type signUpRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100,safe"`
	LastName  string `json:"lastName" validate:"required,max=100,safe"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	Token string `json:"token" validate:"required"`
}

// AuthHandler serves the public authentication endpoints.
type AuthHandler struct {
	svc *auth.Service
	log *logger.Logger
}

// NewAuthHandler creates the handler.
func NewAuthHandler(svc *auth.Service, log *logger.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log.WithComponent("handler")}
}

// SignUp handles POST /api/v1/auth/signup.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("request body must be valid JSON").WithCause(err))
		return
	}
	req.Email = util.NormalizeEmail(req.Email)
	req.FirstName = util.SanitizeString(req.FirstName)
	req.LastName = util.SanitizeString(req.LastName)
	if err := validation.Validate(&req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	profile, err := h.svc.SignUp(c.Request.Context(), auth.SignUpInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, profile)
}

// SignIn handles POST /api/v1/auth/signin.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("request body must be valid JSON").WithCause(err))
		return
	}
	req.Email = util.NormalizeEmail(req.Email)
	if err := validation.Validate(&req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	pair, err := h.svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, pair)
}

// Refresh handles POST /api/v1/auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("request body must be valid JSON").WithCause(err))
		return
	}
	if err := validation.Validate(&req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	pair, err := h.svc.Refresh(c.Request.Context(), req.Token)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, pair)
}
