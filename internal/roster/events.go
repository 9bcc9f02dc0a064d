package roster

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/okian/scoutroute/internal/domain/model"
	"github.com/okian/scoutroute/internal/domain/schedule"
	"github.com/okian/scoutroute/internal/domain/season"
)

// eventEntry is the YAML shape of one confirmed schedule event.
type eventEntry struct {
	Date       string   `yaml:"date"` // YYYY-MM-DD
	VenueName  string   `yaml:"venue"`
	Lat        float64  `yaml:"lat"`
	Lng        float64  `yaml:"lng"`
	IsHome     bool     `yaml:"is_home"`
	Source     string   `yaml:"source"`
	Players    []string `yaml:"players"`
	Confidence string   `yaml:"confidence"`
	Note       string   `yaml:"note"`
	URL        string   `yaml:"url"`
}

// eventsFile is the top-level confirmed-events document.
type eventsFile struct {
	Events []eventEntry `yaml:"events"`
}

// LoadEvents reads confirmed schedule events from a YAML file. These
// arrive already resolved to coordinates; rows with sentinel 0,0 are
// accepted here and filtered by eligibility later.
func LoadEvents(path string) ([]model.GameEvent, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadEvents, err)
	}
	var f eventsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadEvents, err)
	}

	events := make([]model.GameEvent, 0, len(f.Events))
	for i, e := range f.Events {
		ev, err := toEvent(e)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

func toEvent(e eventEntry) (model.GameEvent, error) {
	d, err := time.Parse(time.DateOnly, e.Date)
	if err != nil {
		return model.GameEvent{}, fmt.Errorf("%w: bad date %q", ErrLoadEvents, e.Date)
	}
	src := model.EventSource(e.Source)
	if !src.Confirmed() {
		return model.GameEvent{}, fmt.Errorf("%w: source %q is not a confirmed source", ErrLoadEvents, e.Source)
	}
	if len(e.Players) == 0 {
		return model.GameEvent{}, fmt.Errorf("%w: no players on %s", ErrLoadEvents, e.Date)
	}

	venue := model.Venue{Name: e.VenueName, Coords: model.Coordinates{Lat: e.Lat, Lng: e.Lng}}
	return model.GameEvent{
		ID:             schedule.EventID(src, season.Day(d), venue, e.Players[0]),
		Date:           season.Day(d),
		Venue:          venue,
		IsHome:         e.IsHome,
		Source:         src,
		PlayerNames:    e.Players,
		Confidence:     model.Confidence(e.Confidence),
		ConfidenceNote: e.Note,
		VerifyURL:      e.URL,
	}, nil
}
