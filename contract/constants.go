package contract

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Fee and gas defaults, in tinybar and gas units.
const (
	// DefaultGasBudget is used when a request carries no gas budget.
	DefaultGasBudget uint64 = 300_000

	// DefaultFeeCeilingTinybar caps the execution fee when a request
	// carries no ceiling (1 hbar).
	DefaultFeeCeilingTinybar uint64 = 100_000_000

	// CreateAssetPayableTinybar is the fixed payable amount attached to
	// createAsset calls. Asset creation carries a network-level creation
	// fee distinct from the execution fee ceiling (20 hbar).
	CreateAssetPayableTinybar uint64 = 2_000_000_000

	// DirectFeeCeilingTinybar is the fixed ceiling used by the direct
	// execution path, which does not honor per-request ceilings (2 hbar).
	DirectFeeCeilingTinybar uint64 = 200_000_000
)

// Diagnostic mint fixtures. The two diagnostic encoding modes substitute
// these fixed, known-valid values so an encoding-layer fault can be told
// apart from a network-layer fault. The two outputs are observably
// distinct and the modes are never selected implicitly.
var (
	// DiagnosticTokenAddress is the fixed token address used by the
	// minimal diagnostic mode.
	DiagnosticTokenAddress = common.HexToAddress("0x0000000000000000000000000000000000000042")

	// DiagnosticDates is the fixed 3-element availability array used by
	// the minimal diagnostic mode.
	DiagnosticDates = []*uint256.Int{
		uint256.NewInt(20250101),
		uint256.NewInt(20250102),
		uint256.NewInt(20250103),
	}

	// DiagnosticMetadata is the single metadata blob used by the minimal
	// diagnostic mode.
	DiagnosticMetadata = "diagnostic-mint"

	// MockTokenAddress is the fixed address used by the mock-token
	// diagnostic mode.
	MockTokenAddress = common.HexToAddress("0x00000000000000000000000000000000000000ff")

	// MockTokenMetadata is the single informational blob used by the
	// mock-token diagnostic mode.
	MockTokenMetadata = "mock-token: encoder bypass payload, not a real mint"

	// MockTokenDates is the single-element date array used by the
	// mock-token diagnostic mode.
	MockTokenDates = []*uint256.Int{uint256.NewInt(20250101)}
)

// Parameter bag keys for the mintAsset diagnostic modes.
const (
	// ParamMinimal selects the minimal diagnostic encoding mode.
	ParamMinimal = "minimal"
	// ParamMockToken selects the mock-token diagnostic encoding mode.
	ParamMockToken = "mockToken"
)
