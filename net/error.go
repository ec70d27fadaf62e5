package net

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// Errorf replies to an HTTP request with the specified error, also logging it to stderr.
func Errorf(w http.ResponseWriter, code int, msgfmt string, args ...interface{}) {
	http.Error(w, fmt.Sprintf(msgfmt, args...), code)
	log.Printf(msgfmt, args...)
}

// ProgramErrorf replies with a structured program-error body so callers can
// branch on the stable numeric code rather than parse message text.
func ProgramErrorf(w http.ResponseWriter, httpCode, code int, name, msg string) {
	log.Printf("program error %d (%s): %s", code, name, msg)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    code,
		"name":    name,
		"message": msg,
	})
}
