package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/okian/scoutroute/internal/adapters/repository"
	"github.com/okian/scoutroute/internal/app"
	"github.com/okian/scoutroute/internal/domain/model"
	"github.com/okian/scoutroute/internal/domain/schedule"
	"github.com/okian/scoutroute/internal/domain/season"
)

// PlansHandler serves plan computation and retrieval.
type PlansHandler struct {
	deps Dependencies
}

// NewPlansHandler creates a new plans handler.
func NewPlansHandler(deps Dependencies) *PlansHandler {
	return &PlansHandler{deps: deps}
}

// planRequest mirrors the JSON schema for POST /plans.
type planRequest struct {
	Start           string         `json:"start"` // YYYY-MM-DD
	End             string         `json:"end"`   // YYYY-MM-DD
	MaxDriveMinutes int            `json:"max_drive_minutes,omitempty"`
	PriorityPlayers []string       `json:"priority_players,omitempty"`
	Roster          []rosterEntry  `json:"roster"`
	ConfirmedEvents []confirmedRow `json:"confirmed_events,omitempty"`
}

type rosterEntry struct {
	Name            string `json:"name"`
	Level           string `json:"level"`
	Org             string `json:"org,omitempty"`
	Tier            int    `json:"tier"`
	VisitTarget     int    `json:"visit_target"`
	VisitsCompleted int    `json:"visits_completed"`
}

type confirmedRow struct {
	Date       string   `json:"date"` // YYYY-MM-DD
	Venue      string   `json:"venue"`
	Lat        float64  `json:"lat"`
	Lng        float64  `json:"lng"`
	IsHome     bool     `json:"is_home"`
	Source     string   `json:"source"`
	Players    []string `json:"players"`
	Confidence string   `json:"confidence,omitempty"`
	Note       string   `json:"note,omitempty"`
	URL        string   `json:"url,omitempty"`
}

func (p planRequest) validate() error {
	switch {
	case strings.TrimSpace(p.Start) == "":
		return errors.New("missing start")
	case strings.TrimSpace(p.End) == "":
		return errors.New("missing end")
	}
	for _, b := range []string{p.Start, p.End} {
		if _, err := time.Parse(time.DateOnly, b); err != nil {
			return fmt.Errorf("invalid date %q; must be YYYY-MM-DD", b)
		}
	}
	for i, r := range p.Roster {
		switch {
		case strings.TrimSpace(r.Name) == "":
			return fmt.Errorf("roster[%d]: missing name", i)
		case !model.Level(r.Level).Valid():
			return fmt.Errorf("roster[%d]: unknown level %q", i, r.Level)
		case r.Tier < 1 || r.Tier > 4:
			return fmt.Errorf("roster[%d]: tier must be 1..4", i)
		}
	}
	for i, e := range p.ConfirmedEvents {
		if _, err := time.Parse(time.DateOnly, e.Date); err != nil {
			return fmt.Errorf("confirmed_events[%d]: invalid date %q", i, e.Date)
		}
		if len(e.Players) == 0 {
			return fmt.Errorf("confirmed_events[%d]: no players", i)
		}
	}
	return nil
}

// toPlanRequest converts the wire shape into the service request.
// Dates were validated beforehand.
func (p planRequest) toPlanRequest() app.PlanRequest {
	start, _ := time.Parse(time.DateOnly, p.Start)
	end, _ := time.Parse(time.DateOnly, p.End)

	roster := make([]model.RosterPlayer, 0, len(p.Roster))
	for _, r := range p.Roster {
		roster = append(roster, model.RosterPlayer{
			Name:            r.Name,
			NormalizedName:  model.NormalizeName(r.Name),
			Level:           model.Level(r.Level),
			Org:             r.Org,
			Tier:            r.Tier,
			VisitTarget:     r.VisitTarget,
			VisitsCompleted: r.VisitsCompleted,
		})
	}

	events := make([]model.GameEvent, 0, len(p.ConfirmedEvents))
	for _, e := range p.ConfirmedEvents {
		d, _ := time.Parse(time.DateOnly, e.Date)
		venue := model.Venue{Name: e.Venue, Coords: model.Coordinates{Lat: e.Lat, Lng: e.Lng}}
		events = append(events, model.GameEvent{
			ID:             schedule.EventID(model.EventSource(e.Source), season.Day(d), venue, e.Players[0]),
			Date:           season.Day(d),
			Venue:          venue,
			IsHome:         e.IsHome,
			Source:         model.EventSource(e.Source),
			PlayerNames:    e.Players,
			Confidence:     model.Confidence(e.Confidence),
			ConfidenceNote: e.Note,
			VerifyURL:      e.URL,
		})
	}

	return app.PlanRequest{
		Roster:          roster,
		ConfirmedEvents: events,
		Start:           season.Day(start),
		End:             season.Day(end),
		MaxDriveMinutes: p.MaxDriveMinutes,
		PriorityPlayers: p.PriorityPlayers,
	}
}

// HandlePostPlan handles POST /plans: run the pipeline synchronously
// and return the computed plan.
func (h *PlansHandler) HandlePostPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	plan, err := h.deps.Plan(r.Context(), req.toPlanRequest())
	if err != nil {
		if errors.Is(err, app.ErrInvalidRequest) {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "plan_failed", err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// HandleGetPlan handles GET /plans/{id}.
func (h *PlansHandler) HandleGetPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/plans/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing plan id"))
		return
	}

	plan, err := h.deps.GetPlan(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPlanNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "lookup_failed", err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}
