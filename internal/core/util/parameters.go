package util

import (
	"github.com/gin-gonic/gin"

	"tasktracker/internal/core/validation"
)

func ParamsToMap[T any](c *gin.Context) (T, error) {
	var params T

	if err := c.ShouldBindJSON(&params); err != nil {
		return params, err
	}

	return params, nil
}

// ParamsToValues snapshots the request body as a raw map so the rule
// interpreter can distinguish absent fields from empty or mistyped ones.
func ParamsToValues(c *gin.Context) (validation.MapValues, error) {
	var raw map[string]any

	if err := c.ShouldBindJSON(&raw); err != nil {
		return nil, err
	}

	return validation.MapValues(raw), nil
}
