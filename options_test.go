package kagen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kagen"
	"github.com/katalvlaran/kagen/generator"
)

func TestParseOptionString_FullGrammar(t *testing.T) {
	cfg, err := kagen.ParseOptionString(
		"type=rmat;N=14;M=17;rmat_a=0.57;rmat_b=0.19;rmat_c=0.19;seed=42",
		generator.Defaults())
	require.NoError(t, err)
	assert.Equal(t, generator.TypeRMAT, cfg.Generator)
	assert.EqualValues(t, 1<<14, cfg.N)
	assert.EqualValues(t, 1<<17, cfg.M)
	assert.Equal(t, 0.57, cfg.RMatA)
	assert.Equal(t, 0.19, cfg.RMatB)
	assert.Equal(t, 0.19, cfg.RMatC)
	assert.EqualValues(t, 42, cfg.Seed)

	cfg, err = kagen.ParseOptionString(
		"type=rgg_2d;n=1000;radius=0.05;coordinates;periodic",
		generator.Defaults())
	require.NoError(t, err)
	assert.Equal(t, generator.TypeRGG2D, cfg.Generator)
	assert.EqualValues(t, 1000, cfg.N)
	assert.Equal(t, 0.05, cfg.R)
	assert.True(t, cfg.Coordinates)
	assert.True(t, cfg.Periodic)

	cfg, err = kagen.ParseOptionString(
		"type=rhg;gamma=2.5;avg_degree=10;min_degree=3;grid_x=4;grid_y=5;grid_z=6;prob=0.5",
		generator.Defaults())
	require.NoError(t, err)
	assert.Equal(t, 2.5, cfg.PLExp)
	assert.Equal(t, 10.0, cfg.AvgDegree)
	assert.EqualValues(t, 3, cfg.MinDegree)
	assert.EqualValues(t, 4, cfg.GridX)
	assert.EqualValues(t, 5, cfg.GridY)
	assert.EqualValues(t, 6, cfg.GridZ)
	assert.Equal(t, 0.5, cfg.P)
}

func TestParseOptionString_FlagsTakeValues(t *testing.T) {
	base := generator.Defaults()
	base.Periodic = true
	cfg, err := kagen.ParseOptionString("periodic=false;directed=true", base)
	require.NoError(t, err)
	assert.False(t, cfg.Periodic)
	assert.True(t, cfg.Directed)
}

func TestParseOptionString_KeepsBaseDefaults(t *testing.T) {
	base := generator.Defaults()
	base.Seed = 7
	cfg, err := kagen.ParseOptionString("type=ba;n=100", base)
	require.NoError(t, err)
	assert.EqualValues(t, 7, cfg.Seed)
	assert.EqualValues(t, base.MinDegree, cfg.MinDegree)
}

func TestParseOptionString_Errors(t *testing.T) {
	_, err := kagen.ParseOptionString("type=nope", generator.Defaults())
	assert.ErrorIs(t, err, kagen.ErrUnknownType)

	_, err = kagen.ParseOptionString("shape=round", generator.Defaults())
	assert.ErrorIs(t, err, generator.ErrConfiguration)

	_, err = kagen.ParseOptionString("n", generator.Defaults())
	assert.ErrorIs(t, err, generator.ErrConfiguration)

	_, err = kagen.ParseOptionString("n=ten", generator.Defaults())
	assert.ErrorIs(t, err, generator.ErrConfiguration)

	_, err = kagen.ParseOptionString("periodic=maybe", generator.Defaults())
	assert.ErrorIs(t, err, generator.ErrConfiguration)
}
