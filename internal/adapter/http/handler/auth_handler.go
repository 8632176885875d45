package handler

import (
	"errors"
	"log/slog"
	"net/http"

	. "tasktracker/internal/adapter/http/helper"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/model/request"
	"tasktracker/internal/core/model/response"
	"tasktracker/internal/core/port"
	"tasktracker/internal/core/util"
	"tasktracker/internal/core/validation"
	"tasktracker/pkg/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc port.AuthService
}

func NewAuthHandler(svc port.AuthService) *AuthHandler {
	return &AuthHandler{
		svc: svc,
	}
}

func (a *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	vals, err := util.ParamsToValues(c)

	if err != nil {
		SendBadRequestError(c, "Invalid request body")
		return
	}

	if errs := validation.Validate(validation.RegistrationRules, vals); len(errs) > 0 {
		SendValidationErrors(c, errs)
		return
	}

	params := request.SignUpFromValues(vals)

	user, err := a.svc.Registration(ctx, &params)

	if errors.Is(err, domain.ErrDuplicateLogin) {
		SendConflictError(c, "Login already registered")
		return
	}

	if err != nil {
		slog.Error("Register", "registration", err)
		SendInternalError(c)
		return
	}

	userResponse := response.UserResponse{
		UUID:      user.UUID.String(),
		Login:     user.Login,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	SendSuccess(c, http.StatusCreated, userResponse)
}

func (a *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	vals, err := util.ParamsToValues(c)

	if err != nil {
		SendBadRequestError(c, "Invalid request body")
		return
	}

	if errs := validation.Validate(validation.CredentialRules, vals); len(errs) > 0 {
		SendValidationErrors(c, errs)
		return
	}

	params := request.LoginFromValues(vals)

	user, err := a.svc.Authenticate(ctx, &params)

	if err != nil {
		slog.Error("Login", "after_authenticate", err)
		SendUnauthorizedError(c, "Invalid login or password")
		return
	}

	refreshToken, err := auth.CreateJwtTokenForUser(user.ID)

	if err != nil {
		SendUnauthorizedError(c, "Failed to generate access token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"refresh_token": refreshToken,
	})
}
