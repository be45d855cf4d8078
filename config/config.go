// Package config provides configuration management for the contract
// executor with support for environment variables and network presets.
package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration values.
type Config struct {
	Network    string
	MirrorURL  string
	DefaultGas uint64
	FeeCeiling uint64
}

// NetworkPreset represents a predefined network configuration.
type NetworkPreset struct {
	Name      string
	MirrorURL string
}

// NetworkPresets contains predefined configurations for the public
// networks and a local node.
var NetworkPresets = map[string]NetworkPreset{
	"mainnet": {
		Name:      "mainnet",
		MirrorURL: "https://mainnet-public.mirrornode.hedera.com",
	},
	"testnet": {
		Name:      "testnet",
		MirrorURL: "https://testnet.mirrornode.hedera.com",
	},
	"previewnet": {
		Name:      "previewnet",
		MirrorURL: "https://previewnet.mirrornode.hedera.com",
	},
	"local": {
		Name:      "local",
		MirrorURL: "http://localhost:5551",
	},
}

// LoadConfig loads configuration from a .env file.
// It silently ignores if the file doesn't exist.
func LoadConfig(envPath string) error {
	if envPath != "" {
		return godotenv.Load(envPath)
	}
	// Try to load from current directory, ignore if not exists
	_ = godotenv.Load()
	return nil
}

// GetNetwork returns the network name from environment variable or default.
func GetNetwork() string {
	if val := os.Getenv("NETWORK"); val != "" {
		return strings.ToLower(val)
	}
	return "testnet"
}

// GetMirrorURL returns the mirror node URL from environment variable or
// the preset of the configured network.
func GetMirrorURL() string {
	if val := os.Getenv("MIRROR_URL"); val != "" {
		return val
	}
	if p, ok := GetNetworkPreset(GetNetwork()); ok {
		return p.MirrorURL
	}
	return NetworkPresets["testnet"].MirrorURL
}

// GetDefaultGas returns the default gas budget from environment variable.
// Returns 0 if unset or unparseable, leaving the choice to the executor.
func GetDefaultGas() uint64 {
	return envUint("DEFAULT_GAS")
}

// GetFeeCeiling returns the fee ceiling in tinybar from environment
// variable. Returns 0 if unset or unparseable.
func GetFeeCeiling() uint64 {
	return envUint("FEE_CEILING")
}

func envUint(key string) uint64 {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	n, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// FromEnv assembles the effective configuration from the environment,
// falling back to the active network's preset for the mirror URL.
func FromEnv() *Config {
	return &Config{
		Network:    GetNetwork(),
		MirrorURL:  GetMirrorURL(),
		DefaultGas: GetDefaultGas(),
		FeeCeiling: GetFeeCeiling(),
	}
}

// GetNetworkPreset returns a preset by name (case-insensitive).
func GetNetworkPreset(name string) (NetworkPreset, bool) {
	preset, ok := NetworkPresets[strings.ToLower(name)]
	return preset, ok
}

// ApplyPreset returns configuration from a named preset.
func ApplyPreset(name string) (*Config, error) {
	preset, ok := GetNetworkPreset(name)
	if !ok {
		return nil, fmt.Errorf("unknown network preset: %s (available: %s)", name, strings.Join(ListPresets(), ", "))
	}
	return &Config{
		Network:   preset.Name,
		MirrorURL: preset.MirrorURL,
	}, nil
}

// ListPresets returns all available preset names sorted alphabetically.
func ListPresets() []string {
	names := make([]string, 0, len(NetworkPresets))
	for name := range NetworkPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PrintPresets prints all available presets to stdout.
func PrintPresets() {
	fmt.Println("Available network presets:")
	names := ListPresets()
	for _, name := range names {
		p := NetworkPresets[name]
		fmt.Printf("  %-12s mirror: %s\n", name, p.MirrorURL)
	}
}
