// Package reference holds the static sector presets and the district to
// neighborhood map used to build search queries. Built-in data can be replaced
// or extended from a YAML file in the data directory.
package reference

import (
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"leadscraper/internal/logger"
)

// Sector is a one-click search preset: a named business category with a
// curated keyword list.
type Sector struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Keywords  []string `json:"keywords" yaml:"keywords"`
	Potential string   `json:"potential" yaml:"potential"`
}

type Data struct {
	sectors       []Sector
	neighborhoods map[string][]string
	districts     []string
}

type overrideFile struct {
	Sectors       []Sector            `yaml:"sectors"`
	Neighborhoods map[string][]string `yaml:"neighborhoods"`
}

// Load returns the built-in reference data, merged with the override file at
// path when one exists. A malformed override is logged and ignored.
func Load(path string, log *logger.Logger) *Data {
	d := &Data{
		sectors:       defaultSectors,
		neighborhoods: make(map[string][]string, len(defaultNeighborhoods)),
	}
	for k, v := range defaultNeighborhoods {
		d.neighborhoods[k] = v
	}

	if raw, err := os.ReadFile(path); err == nil {
		var ov overrideFile
		if err := yaml.Unmarshal(raw, &ov); err != nil {
			log.LogWarnf("reference override %s is malformed, using built-in data: %v", path, err)
		} else {
			if len(ov.Sectors) > 0 {
				d.sectors = ov.Sectors
			}
			for district, hoods := range ov.Neighborhoods {
				d.neighborhoods[district] = hoods
			}
			log.LogInfof("reference override loaded: %d sectors, %d districts", len(d.sectors), len(d.neighborhoods))
		}
	}

	d.districts = make([]string, 0, len(d.neighborhoods))
	for district := range d.neighborhoods {
		d.districts = append(d.districts, district)
	}
	sort.Strings(d.districts)
	return d
}

// Sectors returns all sector presets in definition order.
func (d *Data) Sectors() []Sector { return d.sectors }

// SectorByID returns the preset with the given id.
func (d *Data) SectorByID(id string) (Sector, bool) {
	for _, s := range d.sectors {
		if s.ID == id {
			return s, true
		}
	}
	return Sector{}, false
}

// Districts returns all known district names, sorted.
func (d *Data) Districts() []string { return d.districts }

// NeighborhoodsFor returns the ordered neighborhood list of a district, or an
// empty slice for unknown districts.
func (d *Data) NeighborhoodsFor(district string) []string {
	hoods, ok := d.neighborhoods[district]
	if !ok {
		return []string{}
	}
	return hoods
}
