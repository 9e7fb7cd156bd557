// internal/status/encode.go
package status

import (
	"encoding/json"
	"net/http"
)

// Encode converts a Snapshot into the /status JSON document.
// No IO. No side effects.
func Encode(s Snapshot) ([]byte, error) {
	s.HealthName = s.Health.String()
	s.HealthCode = uint16(s.Health)
	return json.MarshalIndent(s, "", "  ")
}

// Handler serves the tracker's current snapshot.
func Handler(t *Tracker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		body, err := Encode(t.Snapshot())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	})
}
