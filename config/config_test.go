package config

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetNetwork(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		t.Setenv("NETWORK", "")
		assert.Equal(t, "testnet", GetNetwork())
	})

	t.Run("from environment, lowercased", func(t *testing.T) {
		t.Setenv("NETWORK", "Mainnet")
		assert.Equal(t, "mainnet", GetNetwork())
	})
}

func TestGetMirrorURL(t *testing.T) {
	t.Run("explicit override wins", func(t *testing.T) {
		t.Setenv("NETWORK", "mainnet")
		t.Setenv("MIRROR_URL", "http://localhost:5551")
		assert.Equal(t, "http://localhost:5551", GetMirrorURL())
	})

	t.Run("network preset", func(t *testing.T) {
		t.Setenv("NETWORK", "previewnet")
		t.Setenv("MIRROR_URL", "")
		assert.Equal(t, NetworkPresets["previewnet"].MirrorURL, GetMirrorURL())
	})
}

func TestEnvNumbers(t *testing.T) {
	t.Setenv("DEFAULT_GAS", "500000")
	t.Setenv("FEE_CEILING", "not-a-number")

	assert.Equal(t, uint64(500000), GetDefaultGas())
	assert.Equal(t, uint64(0), GetFeeCeiling(), "unparseable values fall back to zero")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("NETWORK", "testnet")
	t.Setenv("MIRROR_URL", "")
	t.Setenv("DEFAULT_GAS", "777000")
	t.Setenv("FEE_CEILING", "55000000")

	cfg := FromEnv()
	assert.Equal(t, "testnet", cfg.Network)
	assert.Equal(t, NetworkPresets["testnet"].MirrorURL, cfg.MirrorURL)
	assert.Equal(t, uint64(777000), cfg.DefaultGas)
	assert.Equal(t, uint64(55000000), cfg.FeeCeiling)
}

func TestApplyPreset(t *testing.T) {
	cfg, err := ApplyPreset("TESTNET")
	require.NoError(t, err)
	assert.Equal(t, "testnet", cfg.Network)
	assert.Equal(t, NetworkPresets["testnet"].MirrorURL, cfg.MirrorURL)

	_, err = ApplyPreset("devnet")
	assert.ErrorContains(t, err, "unknown network preset")
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "mainnet")
	assert.Contains(t, names, "testnet")
	assert.Contains(t, names, "previewnet")
	assert.Contains(t, names, "local")
}
