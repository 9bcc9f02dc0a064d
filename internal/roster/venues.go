package roster

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okian/scoutroute/internal/domain/model"
)

// venueEntry is the YAML shape of one alias-table row.
type venueEntry struct {
	Org  string  `yaml:"org"`
	Name string  `yaml:"name"`
	Lat  float64 `yaml:"lat"`
	Lng  float64 `yaml:"lng"`
}

// venueFile is the top-level alias document. Overrides are
// operator-supplied corrections consulted before the static table.
type venueFile struct {
	Venues    []venueEntry `yaml:"venues"`
	Overrides []venueEntry `yaml:"overrides"`
}

// TableResolver resolves free-text organization names against a static
// alias table, with operator overrides taking precedence. It implements
// schedule.Resolver.
type TableResolver struct {
	static    map[string]model.Venue
	overrides map[string]model.Venue
}

// LoadVenues reads an alias file into a TableResolver.
func LoadVenues(path string) (*TableResolver, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadVenues, err)
	}
	var f venueFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadVenues, err)
	}

	static, err := toTable(f.Venues)
	if err != nil {
		return nil, fmt.Errorf("venues: %w", err)
	}
	overrides, err := toTable(f.Overrides)
	if err != nil {
		return nil, fmt.Errorf("overrides: %w", err)
	}
	return &TableResolver{static: static, overrides: overrides}, nil
}

// NewTableResolver builds a resolver from in-memory tables keyed by raw
// organization name.
func NewTableResolver(static, overrides map[string]model.Venue) *TableResolver {
	r := &TableResolver{
		static:    make(map[string]model.Venue, len(static)),
		overrides: make(map[string]model.Venue, len(overrides)),
	}
	for org, v := range static {
		r.static[model.NormalizeName(org)] = v
	}
	for org, v := range overrides {
		r.overrides[model.NormalizeName(org)] = v
	}
	return r
}

// Resolve maps rawOrg to its canonical venue, overrides first. A miss
// is not an error; the caller treats it as sparse data.
func (r *TableResolver) Resolve(rawOrg string) (model.Venue, bool) {
	key := model.NormalizeName(rawOrg)
	if v, ok := r.overrides[key]; ok {
		return v, true
	}
	v, ok := r.static[key]
	return v, ok
}

func toTable(entries []venueEntry) (map[string]model.Venue, error) {
	table := make(map[string]model.Venue, len(entries))
	for i, e := range entries {
		if e.Org == "" || e.Name == "" {
			return nil, fmt.Errorf("%w: entry %d missing org or name", ErrLoadVenues, i)
		}
		v := model.Venue{Name: e.Name, Coords: model.Coordinates{Lat: e.Lat, Lng: e.Lng}}
		if v.Coords.IsZero() {
			return nil, fmt.Errorf("%w: entry %d (%q) has sentinel coordinates", ErrLoadVenues, i, e.Org)
		}
		table[model.NormalizeName(e.Org)] = v
	}
	return table, nil
}
