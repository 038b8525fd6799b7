package middleware

import (
	"encoding/json"
	"net/http"

	apperror "estoqueti/internal/errors"
)

// writeError responde com o mesmo corpo {code, category, message} usado pelos handlers.
func writeError(w http.ResponseWriter, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"code":     status,
		"category": category,
		"message":  message,
	})
}
