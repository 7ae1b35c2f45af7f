package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	apperrors "github.com/Akshan03/Personal-Finance-Agent/internal/shared/errors"
	"github.com/Akshan03/Personal-Finance-Agent/internal/transport/httpapi/middleware"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, ErrorResponse{Error: message}, statusCode)
}

// respondAppError maps err onto an AppError and writes it. Internal details never reach the client.
func respondAppError(w http.ResponseWriter, err error) {
	appErr := toAppError(err)
	message := appErr.Message
	if appErr.Code == apperrors.ErrCodeInternal && message == "" {
		message = "internal server error"
	}
	respondJSON(w, ErrorResponse{Error: message, Code: appErr.Code}, appErr.HTTPStatus())
}

// decodeJSON reads a size-limited JSON body into dst, rejecting unknown fields
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.Validation("request body is required")
		}
		return apperrors.Validation("invalid request body")
	}
	return nil
}

// decodeOptionalJSON is decodeJSON that treats an empty body as the zero value
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return apperrors.Validation("invalid request body")
	}
	return nil
}

// requireUser returns the authenticated user or writes a 401
func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok || userID == uuid.Nil {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses a UUID path segment or writes a 400
func pathID(w http.ResponseWriter, raw, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(w, "invalid "+what+" ID", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}
