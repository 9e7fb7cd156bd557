// internal/collab/server_test.go
package collab

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tamzrod/ledbridge/internal/logging"
)

func getJSON(t *testing.T, h http.Handler, path string, dst any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s: status %d", path, rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
}

func post(t *testing.T, h http.Handler, path, body string) int {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
	return rec.Code
}

func TestServer_TriggerIsOneShot(t *testing.T) {
	s := NewServer(logging.Discard())
	h := s.Handler()

	if code := post(t, h, "/trigger", `{"marker": 5, "color": "#102030"}`); code != http.StatusOK {
		t.Fatalf("arm status %d", code)
	}

	var first struct {
		HasTrigger   bool  `json:"has_trigger"`
		TriggerData  []int `json:"trigger_data"`
		MarkerNumber int   `json:"marker_number"`
		ColorRGB     []int `json:"color_rgb"`
	}
	getJSON(t, h, TriggerPath, &first)

	if !first.HasTrigger || len(first.TriggerData) != 50 {
		t.Fatalf("first read: %+v", first)
	}
	if first.MarkerNumber != 5 || first.TriggerData[4] != 5 {
		t.Fatalf("marker number %d / byte %d", first.MarkerNumber, first.TriggerData[4])
	}
	if first.ColorRGB[0] != 0x10 || first.ColorRGB[2] != 0x30 {
		t.Fatalf("color %v", first.ColorRGB)
	}

	var second struct {
		HasTrigger bool `json:"has_trigger"`
	}
	getJSON(t, h, TriggerPath, &second)
	if second.HasTrigger {
		t.Fatalf("trigger delivered twice")
	}
}

func TestServer_ArmRejectsBadInput(t *testing.T) {
	h := NewServer(logging.Discard()).Handler()

	if code := post(t, h, "/trigger", `{"marker": 0, "color": "#FFFFFF"}`); code != http.StatusBadRequest {
		t.Fatalf("marker 0: status %d", code)
	}
	if code := post(t, h, "/trigger", `{"marker": 2, "color": "blue"}`); code != http.StatusBadRequest {
		t.Fatalf("bad color: status %d", code)
	}
	if code := post(t, h, "/trigger", `{`); code != http.StatusBadRequest {
		t.Fatalf("bad json: status %d", code)
	}
}

func TestServer_Visible(t *testing.T) {
	s := NewServer(logging.Discard())
	h := s.Handler()

	if code := post(t, h, "/visible", `{"marker_names": ["Harbor (1)", "Tower (4)"]}`); code != http.StatusOK {
		t.Fatalf("set visible status %d", code)
	}

	var got struct {
		MarkerNames []string `json:"marker_names"`
	}
	getJSON(t, h, VisibilityPath, &got)
	if len(got.MarkerNames) != 2 || got.MarkerNames[1] != "Tower (4)" {
		t.Fatalf("names=%v", got.MarkerNames)
	}
}
