package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"store_rating_v1/internal/api/dto"
	"store_rating_v1/internal/middleware"
	"store_rating_v1/internal/service"
)

// ==================== error responses ====================

// errorStatus maps service error kinds to HTTP status codes
var errorStatus = []struct {
	kind   error
	status int
}{
	{service.ErrValidation, http.StatusBadRequest},
	{service.ErrUnauthenticated, http.StatusUnauthorized},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrConflict, http.StatusConflict},
}

// respondError writes the error body for err. Unknown errors are logged and hidden.
func respondError(ctx *gin.Context, err error) {
	for _, m := range errorStatus {
		if errors.Is(err, m.kind) {
			ctx.JSON(m.status, dto.ErrorResponse{Code: m.status, Message: err.Error()})
			return
		}
	}

	middleware.Logger(ctx).WithError(err).Error("request failed")
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: "Internal server error",
	})
}

// respondValidation writes a 400 with per-field details.
func respondValidation(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: "Validation error",
		Errors:  fieldErrors(err),
	})
}

// ==================== binding ====================

func bindJSON(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		respondValidation(ctx, err)
		return false
	}
	return true
}

func bindQuery(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindQuery(req); err != nil {
		respondValidation(ctx, err)
		return false
	}
	return true
}

// pathID parses a positive integer path parameter.
func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Validation error",
			Errors:  []dto.FieldError{{Field: name, Message: "must be a positive integer"}},
		})
		return 0, false
	}
	return id, true
}

func fieldErrors(err error) []dto.FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]dto.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, dto.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []dto.FieldError{{Field: typeErr.Field, Message: "must be a " + typeErr.Type.String()}}
	}

	if errors.Is(err, io.EOF) {
		return []dto.FieldError{{Field: "body", Message: "request body is required"}}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return []dto.FieldError{{Field: "body", Message: "malformed JSON"}}
	}

	return []dto.FieldError{{Field: "body", Message: err.Error()}}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "password":
		return fmt.Sprintf("must be %d-%d characters with at least one uppercase letter and one of %s",
			dto.PasswordMinLen, dto.PasswordMaxLen, dto.PasswordSymbols)
	case "role":
		return "must be one of admin, user, store"
	case "oneof":
		return "must be one of " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	default:
		return "is invalid"
	}
}
