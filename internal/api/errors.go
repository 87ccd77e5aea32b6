package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"StockPredict/internal/model"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrMalformed),
		errors.Is(err, model.ErrInsufficientData),
		errors.Is(err, model.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrDirectoryConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(StatusFor(err), ErrorResponse{
		Error: err.Error(),
		Kind:  string(model.KindOf(err)),
	})
}

func badParam(name, raw string) error {
	return &model.Error{Kind: model.ErrInvalidRequest, Message: fmt.Sprintf("invalid %s %q", name, raw)}
}
