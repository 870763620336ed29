package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"opsdeck/internal/models"
)

func TestPlannerFlow_DayViewTracksCompletion(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "planner@test.com", "password123")

	today := time.Now().Format(models.DateLayout)

	rec := app.request("POST", "/api/v1/planner/events",
		fmt.Sprintf(`{"title":"Deep work","type":"task","date":%q,"start_time":"09:00","end_time":"11:00"}`, today), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	eventID := parseJSON(t, rec)["event"].(map[string]interface{})["id"].(float64)

	rec = app.request("POST", "/api/v1/planner/events",
		fmt.Sprintf(`{"title":"Review PRs","type":"task","date":%q,"start_time":"14:00","end_time":"15:00"}`, today), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// Day view shows both, none completed
	rec = app.request("GET", "/api/v1/planner/events?date="+today, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["total"].(float64) != 2 || result["completed"].(float64) != 0 {
		t.Fatalf("expected 0/2 completed, got %v/%v", result["completed"], result["total"])
	}
	events := result["events"].([]interface{})
	first := events[0].(map[string]interface{})
	if first["title"].(string) != "Deep work" {
		t.Errorf("expected events ordered by start time, first was %q", first["title"])
	}

	// Toggle the first event
	rec = app.request("PATCH", fmt.Sprintf("/api/v1/planner/events/%d/toggle", int(eventID)), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle failed: %d %s", rec.Code, rec.Body.String())
	}

	// The cached day view must reflect the change
	rec = app.request("GET", "/api/v1/planner/events?date="+today, "", token)
	result = parseJSON(t, rec)
	if result["completed"].(float64) != 1 {
		t.Errorf("expected 1 completed after toggle, got %v", result["completed"])
	}

	// Toggle back
	rec = app.request("PATCH", fmt.Sprintf("/api/v1/planner/events/%d/toggle", int(eventID)), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", "/api/v1/planner/events?date="+today, "", token)
	result = parseJSON(t, rec)
	if result["completed"].(float64) != 0 {
		t.Errorf("expected 0 completed after second toggle, got %v", result["completed"])
	}
}

func TestPlannerFlow_WeekViewSpansMondayToSunday(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "week@test.com", "password123")

	// Week of 2026-08-24 (a Monday) through 2026-08-30.
	for _, date := range []string{"2026-08-24", "2026-08-27", "2026-08-30"} {
		rec := app.request("POST", "/api/v1/planner/events",
			fmt.Sprintf(`{"title":"Event %s","type":"task","date":%q}`, date, date), token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	}
	// Just outside the week on both sides
	for _, date := range []string{"2026-08-23", "2026-08-31"} {
		rec := app.request("POST", "/api/v1/planner/events",
			fmt.Sprintf(`{"title":"Outside %s","type":"task","date":%q}`, date, date), token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	// Asking from mid-week resolves to the same Monday-start window
	rec := app.request("GET", "/api/v1/planner/week?day=2026-08-26", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	events := result["events"].([]interface{})
	if len(events) != 3 {
		t.Fatalf("expected 3 events in week, got %d", len(events))
	}
	if result["week_start"].(string) != "2026-08-24" {
		t.Errorf("expected week_start 2026-08-24, got %v", result["week_start"])
	}
	if result["week_end"].(string) != "2026-08-30" {
		t.Errorf("expected week_end 2026-08-30, got %v", result["week_end"])
	}
}

func TestPlannerFlow_RejectsInvalidEvents(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "invalid@test.com", "password123")

	// Unknown type
	rec := app.request("POST", "/api/v1/planner/events",
		`{"title":"Party","type":"party","date":"2026-08-24"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown type, got %d", rec.Code)
	}

	// End before start
	rec = app.request("POST", "/api/v1/planner/events",
		`{"title":"Backwards","type":"task","date":"2026-08-24","start_time":"14:00","end_time":"13:00"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for end before start, got %d", rec.Code)
	}

	// Toggling someone else's event
	rec = app.request("POST", "/api/v1/planner/events",
		`{"title":"Mine","type":"task","date":"2026-08-24"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	eventID := parseJSON(t, rec)["event"].(map[string]interface{})["id"].(float64)

	otherToken, _, _ := app.registerUser(t, "other@test.com", "password123")
	rec = app.request("PATCH", fmt.Sprintf("/api/v1/planner/events/%d/toggle", int(eventID)), "", otherToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 toggling another user's event, got %d", rec.Code)
	}
}
