package reference_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadscraper/internal/logger"
	"leadscraper/internal/reference"
)

func TestLoadBuiltins(t *testing.T) {
	d := reference.Load(filepath.Join(t.TempDir(), "missing.yaml"), logger.New("test"))

	sectors := d.Sectors()
	require.NotEmpty(t, sectors)
	assert.Equal(t, "dis-klinigi", sectors[0].ID)

	sector, ok := d.SectorByID("veteriner")
	require.True(t, ok)
	assert.Equal(t, "Veteriner", sector.Name)
	assert.Contains(t, sector.Keywords, "veteriner kliniği")

	_, ok = d.SectorByID("bogus")
	assert.False(t, ok)

	districts := d.Districts()
	assert.Contains(t, districts, "Beyoğlu")
	assert.IsIncreasing(t, districts)

	assert.NotEmpty(t, d.NeighborhoodsFor("Küçükçekmece"))
	assert.Empty(t, d.NeighborhoodsFor("Atlantis"))
	assert.NotNil(t, d.NeighborhoodsFor("Atlantis"))
}

func TestLoadOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reference.yaml")
	override := `
sectors:
  - id: kuafor
    name: Kuaförler
    keywords: [kuaför, berber]
    potential: Orta
neighborhoods:
  Şişli: [Nişantaşı, Mecidiyeköy]
`
	require.NoError(t, os.WriteFile(path, []byte(override), 0o644))

	d := reference.Load(path, logger.New("test"))

	// Override sectors replace the built-ins entirely.
	sectors := d.Sectors()
	require.Len(t, sectors, 1)
	assert.Equal(t, "kuafor", sectors[0].ID)

	// Override neighborhoods merge with the built-in district map.
	assert.Equal(t, []string{"Nişantaşı", "Mecidiyeköy"}, d.NeighborhoodsFor("Şişli"))
	assert.NotEmpty(t, d.NeighborhoodsFor("Beyoğlu"))
	assert.Contains(t, d.Districts(), "Şişli")
}

func TestLoadMalformedOverrideFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reference.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sectors: {not: a list"), 0o644))

	d := reference.Load(path, logger.New("test"))
	require.NotEmpty(t, d.Sectors())
	assert.Equal(t, "dis-klinigi", d.Sectors()[0].ID)
}
