package helper

import (
	"encoding/json"
	"net/http"

	database "github.com/MateAKD/Carta_Menu_Backend/config"
)

// RespondJSON writes any payload with the given status.
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// RespondSuccess writes the standard success envelope.
func RespondSuccess(w http.ResponseWriter, status int, message string, data any) {
	body := map[string]any{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	RespondJSON(w, status, body)
}

// RespondError writes the standard failure envelope. Internal detail is
// attached outside production only.
func RespondError(w http.ResponseWriter, status int, message string, err error) {
	body := map[string]any{
		"success": false,
		"message": message,
	}
	if err != nil && !database.Production() {
		body["detail"] = err.Error()
	}
	RespondJSON(w, status, body)
}
