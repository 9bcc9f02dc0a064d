// Package roster loads the traveling party's inputs from YAML files:
// the athlete roster with visit quotas, operator overrides, the
// organization-to-venue alias table, and confirmed schedule events.
package roster

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/okian/scoutroute/internal/domain/model"
)

const maxTier = 4

// playerEntry is the YAML shape of one roster athlete.
type playerEntry struct {
	Name            string `yaml:"name"`
	Level           string `yaml:"level"`
	Org             string `yaml:"org"`
	Tier            int    `yaml:"tier"`
	VisitTarget     int    `yaml:"visit_target"`
	VisitsCompleted int    `yaml:"visits_completed"`
	LastVisit       string `yaml:"last_visit"`
}

// overrideEntry is an operator correction applied after the roster rows
// are read; matching is by normalized name.
type overrideEntry struct {
	Name            string `yaml:"name"`
	VisitsCompleted *int   `yaml:"visits_completed"`
	LastVisit       string `yaml:"last_visit"`
}

// rosterFile is the top-level YAML document.
type rosterFile struct {
	Players   []playerEntry   `yaml:"players"`
	Overrides []overrideEntry `yaml:"overrides"`
}

// Load reads and validates a roster file. Operator overrides are
// applied before validation so derived visitsRemaining reflects them.
func Load(path string) ([]model.RosterPlayer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadRoster, err)
	}
	var f rosterFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadRoster, err)
	}
	return build(f.Players, f.Overrides)
}

// build converts parsed entries to domain athletes, applying overrides
// and rejecting invalid or duplicate rows.
func build(players []playerEntry, overrides []overrideEntry) ([]model.RosterPlayer, error) {
	byName := make(map[string]overrideEntry, len(overrides))
	for _, o := range overrides {
		byName[model.NormalizeName(o.Name)] = o
	}

	seen := make(map[string]struct{}, len(players))
	out := make([]model.RosterPlayer, 0, len(players))
	for i, e := range players {
		p, err := toPlayer(e)
		if err != nil {
			return nil, fmt.Errorf("player %d (%q): %w", i, e.Name, err)
		}
		if _, dup := seen[p.NormalizedName]; dup {
			return nil, fmt.Errorf("%w: duplicate athlete %q", ErrInvalidRoster, e.Name)
		}
		seen[p.NormalizedName] = struct{}{}

		if o, ok := byName[p.NormalizedName]; ok {
			if o.VisitsCompleted != nil {
				p.VisitsCompleted = *o.VisitsCompleted
			}
			if o.LastVisit != "" {
				p.LastVisitDate = o.LastVisit
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func toPlayer(e playerEntry) (model.RosterPlayer, error) {
	level := model.Level(e.Level)
	switch {
	case e.Name == "":
		return model.RosterPlayer{}, fmt.Errorf("%w: missing name", ErrInvalidRoster)
	case !level.Valid():
		return model.RosterPlayer{}, fmt.Errorf("%w: unknown level %q", ErrInvalidRoster, e.Level)
	case e.Tier < 1 || e.Tier > maxTier:
		return model.RosterPlayer{}, fmt.Errorf("%w: tier must be 1..%d", ErrInvalidRoster, maxTier)
	case e.VisitTarget < 0 || e.VisitsCompleted < 0:
		return model.RosterPlayer{}, fmt.Errorf("%w: negative visit counts", ErrInvalidRoster)
	}
	if e.LastVisit != "" {
		if _, err := time.Parse(time.DateOnly, e.LastVisit); err != nil {
			return model.RosterPlayer{}, fmt.Errorf("%w: bad last_visit %q", ErrInvalidRoster, e.LastVisit)
		}
	}
	return model.RosterPlayer{
		Name:            e.Name,
		NormalizedName:  model.NormalizeName(e.Name),
		Level:           level,
		Org:             e.Org,
		Tier:            e.Tier,
		VisitTarget:     e.VisitTarget,
		VisitsCompleted: e.VisitsCompleted,
		LastVisitDate:   e.LastVisit,
	}, nil
}
