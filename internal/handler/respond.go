package handler

import (
	"encoding/json"
	"net/http"

	"github.com/healthtrack/healthtrack-go/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func validationResponse(ve *model.ValidationError) map[string]any {
	return map[string]any{
		"error":  "validation failed",
		"errors": ve.Errors,
	}
}
