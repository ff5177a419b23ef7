// Package response writes the API's JSON bodies.
//
// Success responses are the bare resource payloads; error responses carry a
// single "detail" field, either a human-readable message or a field→message
// map for validation failures.
package response

import (
	"encoding/json"
	"net/http"
)

type errBody struct {
	Detail interface{} `json:"detail"`
}

func write(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// JSON sends an arbitrary payload with the given status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	write(w, status, data)
}

// Success sends a 200 with the payload.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, data)
}

// Created sends a 201 with the payload.
func Created(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusCreated, data)
}

// Error sends {"detail": message} with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, errBody{Detail: message})
}

// ValidationError sends a 422 with a field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	write(w, http.StatusUnprocessableEntity, errBody{Detail: errs})
}

// NotFound sends a 404 with the given message.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// Unauthorized sends a 401 with the given message.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

// ServerError sends a 500 with a generic message.
func ServerError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Internal Server Error")
}
