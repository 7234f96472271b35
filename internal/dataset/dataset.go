// Package dataset loads the raw input feed: every player's authored
// series history plus the dated overall snapshots. The feed is read once
// at startup and treated as immutable for the process lifetime.
package dataset

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/cartolamix/mixserver/internal/aggregate"
	"github.com/cartolamix/mixserver/internal/domain"
	"github.com/cartolamix/mixserver/internal/roster"
)

type playerEntry struct {
	Name     string                `toml:"name"`
	PhotoURL string                `toml:"photo_url"`
	Team     string                `toml:"team"`
	Overall  int                   `toml:"overall"`
	Status   string                `toml:"status"`
	Series   []aggregate.RawSeries `toml:"series"`
}

type snapshotEntry struct {
	Label    string         `toml:"label"`
	Overalls map[string]int `toml:"overalls"`
}

type file struct {
	MapPool   []string        `toml:"map_pool"`
	Players   []playerEntry   `toml:"players"`
	Snapshots []snapshotEntry `toml:"snapshots"`
}

// Dataset is the decoded feed. It implements roster.Source.
type Dataset struct {
	mapPool    []string
	identities []aggregate.Identity
	series     map[string][]aggregate.RawSeries
	snapshots  []aggregate.Snapshot
}

var _ roster.Source = (*Dataset)(nil)

// Load decodes the TOML feed at path.
func Load(path string) (*Dataset, error) {
	var f file
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	ds := &Dataset{
		mapPool: f.MapPool,
		series:  make(map[string][]aggregate.RawSeries, len(f.Players)),
	}
	for _, p := range f.Players {
		ds.identities = append(ds.identities, aggregate.Identity{
			Name:     p.Name,
			PhotoURL: p.PhotoURL,
			Team:     p.Team,
			Overall:  p.Overall,
			Status:   domain.Status(p.Status),
		})
		ds.series[p.Name] = p.Series
	}
	for _, s := range f.Snapshots {
		ds.snapshots = append(ds.snapshots, aggregate.Snapshot{Label: s.Label, Overalls: s.Overalls})
	}
	return ds, nil
}

func (d *Dataset) Identities() []aggregate.Identity { return d.identities }

func (d *Dataset) SeriesFor(name string) []aggregate.RawSeries { return d.series[name] }

func (d *Dataset) Snapshots() []aggregate.Snapshot { return d.snapshots }

// MapPool returns the feed's map pool, or nil when the file omits it and
// the default pool applies.
func (d *Dataset) MapPool() []string { return d.mapPool }
