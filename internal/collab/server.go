// internal/collab/server.go
package collab

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/tamzrod/ledbridge/internal/frame"
)

// Default routes, matching the map server.
const (
	VisibilityPath = "/api/visible_markers"
	TriggerPath    = "/api/memory_trigger"
)

// Server is a stand-in for the map server's bridge-facing endpoints.
// It keeps the visible marker names and a one-shot memory trigger.
type Server struct {
	mu      sync.RWMutex
	visible []string
	trigger Mailbox[frame.Frame]
	logger  *slog.Logger
}

// NewServer creates an empty simulator.
func NewServer(logger *slog.Logger) *Server {
	return &Server{logger: logger}
}

// SetVisible replaces the visible marker names.
func (s *Server) SetVisible(names []string) {
	s.mu.Lock()
	s.visible = append([]string(nil), names...)
	s.mu.Unlock()
}

// ArmTrigger queues a memory frame for the bridge's next poll.
func (s *Server) ArmTrigger(f frame.Frame) {
	if s.trigger.Put(f) {
		s.logger.Warn("untaken memory trigger replaced")
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+VisibilityPath, s.handleVisible)
	mux.HandleFunc("GET "+TriggerPath, s.handleTrigger)
	mux.HandleFunc("POST /visible", s.handleSetVisible)
	mux.HandleFunc("POST /trigger", s.handleArm)
	return mux
}

func (s *Server) handleVisible(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	names := append([]string{}, s.visible...)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"marker_names": names,
		"count":        len(names),
	})
}

func (s *Server) handleTrigger(w http.ResponseWriter, _ *http.Request) {
	f, ok := s.trigger.Take()
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{
			"has_trigger":  false,
			"trigger_data": nil,
		})
		return
	}

	data := make([]int, len(f))
	for i, b := range f {
		data[i] = int(b)
	}
	index, c := f.MemoryTarget()

	writeJSON(w, http.StatusOK, map[string]any{
		"has_trigger":   true,
		"trigger_data":  data,
		"marker_number": index,
		"color_rgb":     []int{int(c.R), int(c.G), int(c.B)},
	})
}

type setVisibleRequest struct {
	MarkerNames []string `json:"marker_names"`
}

func (s *Server) handleSetVisible(w http.ResponseWriter, r *http.Request) {
	var req setVisibleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.SetVisible(req.MarkerNames)
	s.logger.Info("visible markers set", "count", len(req.MarkerNames))
	writeJSON(w, http.StatusOK, map[string]any{"visible_count": len(req.MarkerNames)})
}

type armRequest struct {
	Marker int    `json:"marker"`
	Color  string `json:"color"`
}

func (s *Server) handleArm(w http.ResponseWriter, r *http.Request) {
	var req armRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	c, err := frame.DecodeHex(req.Color)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	f, err := frame.BuildMemory(req.Marker, c)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	s.ArmTrigger(f)
	s.logger.Info("memory trigger armed", "marker", req.Marker, "color", c.String())
	writeJSON(w, http.StatusOK, map[string]string{"status": "armed"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
