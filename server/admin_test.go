package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestAdminConfigGetAndPost(t *testing.T) {
	m, r := newTestManager(t)

	rec := httptest.NewRecorder()
	m.HandleAdminConfig(rec, httptest.NewRequest(http.MethodGet, "/admin/config?room=test", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d", rec.Code)
	}
	var cur tuningConfig
	if err := json.NewDecoder(rec.Body).Decode(&cur); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if *cur.MoveSpeed != 180 || *cur.RespawnDelayMs != 5000 {
		t.Errorf("defaults = moveSpeed %v respawn %v", *cur.MoveSpeed, *cur.RespawnDelayMs)
	}

	rec = httptest.NewRecorder()
	body := strings.NewReader(`{"moveSpeed":220,"invulnerabilityMs":900}`)
	m.HandleAdminConfig(rec, httptest.NewRequest(http.MethodPost, "/admin/config?room=test", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("POST status = %d", rec.Code)
	}

	r.Advance(tickDT)
	tun := r.Tuning()
	if tun.MoveSpeed != 220 || tun.Invulnerability != 900*time.Millisecond {
		t.Errorf("tuning = %+v", tun)
	}
	if tun.MonsterSpeed != 160 {
		t.Errorf("unset field changed: monsterSpeed = %v", tun.MonsterSpeed)
	}
}

func TestAdminConfigErrors(t *testing.T) {
	m, _ := newTestManager(t)
	tests := []struct {
		method, url, body string
		want              int
	}{
		{http.MethodGet, "/admin/config?room=missing", "", http.StatusNotFound},
		{http.MethodPost, "/admin/config?room=test", "{", http.StatusBadRequest},
		{http.MethodDelete, "/admin/config?room=test", "", http.StatusMethodNotAllowed},
		{http.MethodPost, "/admin/config?room=test", `{"monsterMaxSteps":9223372036854775807}`, http.StatusBadRequest},
		{http.MethodPost, "/admin/config?room=test", `{"monsterMinSteps":-1}`, http.StatusBadRequest},
		{http.MethodPost, "/admin/config?room=test", `{"playerAttack":-2}`, http.StatusBadRequest},
		{http.MethodPost, "/admin/config?room=test", `{"respawnDelayMs":9223372036854775807}`, http.StatusBadRequest},
		{http.MethodPost, "/admin/config?room=test", `{"moveSpeed":1e300}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		m.HandleAdminConfig(rec, httptest.NewRequest(tt.method, tt.url, strings.NewReader(tt.body)))
		if rec.Code != tt.want {
			t.Errorf("%s %s = %d, want %d", tt.method, tt.url, rec.Code, tt.want)
		}
	}
}

func TestMetricsHandler(t *testing.T) {
	m, r := newTestManager(t)
	r.RequestJoin("a", "alice", newFakeConn(JSONCodec))
	r.Advance(tickDT)

	rec := httptest.NewRecorder()
	m.HandleMetrics(rec, httptest.NewRequest(http.MethodGet, "/metrics?room=test", nil))
	var out struct {
		Tick     uint64         `json:"tick"`
		Players  int            `json:"players"`
		Monsters int            `json:"monsters"`
		Metrics  map[string]any `json:"metrics"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Tick != 1 || out.Players != 1 || out.Monsters != 7 {
		t.Errorf("metrics = %+v", out)
	}
	if out.Metrics["joins"].(float64) != 1 {
		t.Errorf("joins = %v", out.Metrics["joins"])
	}

	rec = httptest.NewRecorder()
	m.HandleMetrics(rec, httptest.NewRequest(http.MethodGet, "/metrics?room=nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown room status = %d", rec.Code)
	}
}

func TestSchemaHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleSchema(rec, httptest.NewRequest(http.MethodGet, "/protocol/schema", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"PlayerRecord", "MonsterRecord", "PotionRecord", "isAttacking"} {
		if !strings.Contains(body, want) {
			t.Errorf("schema missing %q", want)
		}
	}
}

func TestAdminRejectedUpdateLeavesTuning(t *testing.T) {
	m, r := newTestManager(t)
	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"moveSpeed":200,"monsterMaxSteps":100000}`)
	m.HandleAdminConfig(rec, httptest.NewRequest(http.MethodPost, "/admin/config?room=test", body))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	r.Advance(tickDT)
	if tun := r.Tuning(); tun.MoveSpeed != 180 || tun.MonsterMaxSteps != 64 {
		t.Errorf("rejected update applied: %+v", tun)
	}
}
