package contract

// Suggested gas budgets per function, tuned against testnet executions.
// Creation pays for token setup; mint cost grows with metadata size, so
// its suggestion leaves headroom.
var suggestedGas = map[string]uint64{
	FuncCreateAsset:        1_000_000,
	FuncMintAsset:          600_000,
	FuncUpdateAvailability: 200_000,
	FuncTransferAsset:      DefaultGasBudget,
}

// SuggestedGas returns the default gas budget for a function, falling back
// to DefaultGasBudget for anything unrecognized.
func SuggestedGas(function string) uint64 {
	if g, ok := suggestedGas[function]; ok {
		return g
	}
	return DefaultGasBudget
}
