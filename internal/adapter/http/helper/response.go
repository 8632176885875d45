package helper

import (
	"net/http"

	. "tasktracker/internal/adapter/http/validation"
	"tasktracker/internal/core/model/response"
	"tasktracker/internal/core/validation"
	"tasktracker/pkg/apierrors"

	"github.com/gin-gonic/gin"
)

func SendSuccess(c *gin.Context, statusCode int, data any, message ...string) {
	response := response.SuccessResponse{
		Data: data,
	}

	if len(message) > 0 && message[0] != "" {
		response.Message = message[0]
	}

	c.JSON(statusCode, response)
}

func SendEnvelope(c *gin.Context, category apierrors.Category, message string) {
	env := apierrors.New(category, message)
	c.JSON(env.Status, env)
}

// SendValidationErrors sends the 422 envelope carrying the full list.
func SendValidationErrors(c *gin.Context, errs []validation.FieldError) {
	env := apierrors.NewValidation("Validation failed", errs)
	c.JSON(env.Status, env)
}

func SendValidationError(c *gin.Context, err error) {
	SendValidationErrors(c, FormatValidationErrors(err))
}

func SendBadRequestError(c *gin.Context, message string) {
	SendEnvelope(c, apierrors.BadRequest, message)
}

func SendUnauthorizedError(c *gin.Context, message string) {
	SendEnvelope(c, apierrors.Unauthorized, message)
}

func SendForbiddenError(c *gin.Context, message string) {
	SendEnvelope(c, apierrors.Forbidden, message)
}

func SendNotFoundError(c *gin.Context, message string) {
	SendEnvelope(c, apierrors.NotFound, message)
}

func SendConflictError(c *gin.Context, message string) {
	SendEnvelope(c, apierrors.Conflict, message)
}

// SendInternalError hides the fault behind a generic message. Details are
// logged by the caller, never serialized.
func SendInternalError(c *gin.Context, message ...string) {
	msg := "Something went wrong"

	if len(message) > 0 && message[0] != "" {
		msg = message[0]
	}

	c.JSON(http.StatusInternalServerError, apierrors.New(apierrors.Internal, msg))
}
