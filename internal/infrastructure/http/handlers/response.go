// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/alchemorsel/composer/pkg/errors"
)

const maxBodyBytes = 1 << 20

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// responder holds what every handler group needs to read requests and
// write the response envelope
type responder struct {
	validate *validator.Validate
	logger   *zap.Logger
}

func newResponder(logger *zap.Logger) responder {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return responder{validate: validate, logger: logger}
}

// decode reads a JSON body into dst and validates it
func (h responder) decode(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if stderrors.Is(err, io.EOF) {
			return errors.NewBadRequestError("Request body is required")
		}
		return errors.NewBadRequestError("Invalid JSON body").WithDetails(err.Error())
	}

	if err := h.validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if stderrors.As(err, &fieldErrs) {
			out := make([]errors.ValidationError, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				out = append(out, errors.ValidationError{
					Field:   fe.Field(),
					Value:   fe.Value(),
					Tag:     fe.Tag(),
					Message: fmt.Sprintf("%s failed on the '%s' rule", fe.Field(), fe.Tag()),
				})
			}
			return errors.NewValidationErrors(out)
		}
		return errors.NewValidationError(err.Error())
	}
	return nil
}

func (h responder) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

func (h responder) ok(w http.ResponseWriter, status int, data interface{}, message string) {
	h.writeJSON(w, status, APIResponse{Success: true, Data: data, Message: message})
}

// writeError renders err as the error envelope. Errors that are not
// AppErrors become internal errors and are logged.
func (h responder) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		h.logger.Error("Unhandled error", zap.Error(err), zap.String("path", r.URL.Path))
		appErr = errors.NewInternalError("An unexpected error occurred")
	} else if appErr.StatusCode() >= http.StatusInternalServerError {
		h.logger.Warn("Request failed", zap.Error(err), zap.String("path", r.URL.Path))
	}

	if appErr.Retryable() {
		w.Header().Set("Retry-After", "5")
	}
	h.writeJSON(w, appErr.StatusCode(), errors.ToErrorResponse(appErr, chimiddleware.GetReqID(r.Context())))
}
