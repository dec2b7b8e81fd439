package response

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Detail string `json:"detail"`
	Errors any    `json:"errors,omitempty"`
}

// OK is the body of mutations that return nothing else
type OK struct {
	OK bool `json:"ok"`
}

// Created is the body returned after inserting a document
type Created struct {
	ID string `json:"id"`
}

// JSON sends data as the JSON body with the given status code
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// Error sends an error JSON response
func Error(w http.ResponseWriter, status int, detail string) {
	JSON(w, status, ErrorResponse{Detail: detail})
}

// Invalid sends a 400 listing the failed field rules
func Invalid(w http.ResponseWriter, detail string, errs any) {
	JSON(w, http.StatusBadRequest, ErrorResponse{Detail: detail, Errors: errs})
}

// Common error responses
func BadRequest(w http.ResponseWriter, detail string) {
	Error(w, http.StatusBadRequest, detail)
}

func NotFound(w http.ResponseWriter, detail string) {
	Error(w, http.StatusNotFound, detail)
}

func InternalError(w http.ResponseWriter, detail string) {
	Error(w, http.StatusInternalServerError, detail)
}

// Conflict reports a duplicate unique field. Clients of this API expect 400.
func Conflict(w http.ResponseWriter, detail string) {
	Error(w, http.StatusBadRequest, detail)
}
