package contract

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// CreateAssetParams are the validated parameters of createAsset.
type CreateAssetParams struct {
	Name            string
	Symbol          string
	Memo            string
	MaxSupply       int64
	AutoRenewPeriod uint32
}

// Block returns the ordered parameter block for createAsset.
func (p CreateAssetParams) Block() *ParameterBlock {
	return &ParameterBlock{
		function: FuncCreateAsset,
		fields: []Field{
			{Type: TypeString, Str: p.Name},
			{Type: TypeString, Str: p.Symbol},
			{Type: TypeString, Str: p.Memo},
			{Type: TypeInt64, I64: p.MaxSupply},
			{Type: TypeUint32, U32: p.AutoRenewPeriod},
		},
	}
}

// MintAssetParams are the validated parameters of mintAsset. Minimal and
// MockToken select the diagnostic encoding modes; when either is set the
// fixed diagnostic values replace the derived ones.
type MintAssetParams struct {
	TokenAddress   common.Address
	Metadata       [][]byte
	AvailableDates []*uint256.Int
	Minimal        bool
	MockToken      bool
}

// Block returns the ordered parameter block for mintAsset.
func (p MintAssetParams) Block() *ParameterBlock {
	addr, meta, dates := p.TokenAddress, p.Metadata, p.AvailableDates
	switch {
	case p.Minimal:
		addr = DiagnosticTokenAddress
		meta = [][]byte{[]byte(DiagnosticMetadata)}
		dates = DiagnosticDates
	case p.MockToken:
		addr = MockTokenAddress
		meta = [][]byte{[]byte(MockTokenMetadata)}
		dates = MockTokenDates
	}
	return &ParameterBlock{
		function: FuncMintAsset,
		fields: []Field{
			{Type: TypeAddress, Addr: addr},
			{Type: TypeBytesArray, Bytes: meta},
			{Type: TypeUint256Array, U256s: dates},
		},
	}
}

// UpdateAvailabilityParams are the validated parameters of
// updateAvailability.
type UpdateAvailabilityParams struct {
	TokenAddress common.Address
	SerialNumber int64
	Date         *uint256.Int
	IsBooked     bool
}

// Block returns the ordered parameter block for updateAvailability.
func (p UpdateAvailabilityParams) Block() *ParameterBlock {
	return &ParameterBlock{
		function: FuncUpdateAvailability,
		fields: []Field{
			{Type: TypeAddress, Addr: p.TokenAddress},
			{Type: TypeInt64, I64: p.SerialNumber},
			{Type: TypeUint256, U256: p.Date},
			{Type: TypeBool, Bool: p.IsBooked},
		},
	}
}

// TransferAssetParams are the validated parameters of transferAsset.
type TransferAssetParams struct {
	TokenAddress    common.Address
	NewOwnerAddress common.Address
	SerialNumber    int64
}

// Block returns the ordered parameter block for transferAsset.
func (p TransferAssetParams) Block() *ParameterBlock {
	return &ParameterBlock{
		function: FuncTransferAsset,
		fields: []Field{
			{Type: TypeAddress, Addr: p.TokenAddress},
			{Type: TypeAddress, Addr: p.NewOwnerAddress},
			{Type: TypeInt64, I64: p.SerialNumber},
		},
	}
}

// ParseCreateAsset validates a loose bag into CreateAssetParams.
func ParseCreateAsset(bag map[string]any) (CreateAssetParams, error) {
	var p CreateAssetParams
	var err error
	if p.Name, err = stringField(FuncCreateAsset, bag, "name"); err != nil {
		return p, err
	}
	if p.Symbol, err = stringField(FuncCreateAsset, bag, "symbol"); err != nil {
		return p, err
	}
	if p.Memo, err = stringField(FuncCreateAsset, bag, "memo"); err != nil {
		return p, err
	}
	if p.MaxSupply, err = int64Field(FuncCreateAsset, bag, "maxSupply"); err != nil {
		return p, err
	}
	if p.AutoRenewPeriod, err = uint32Field(FuncCreateAsset, bag, "autoRenewPeriod"); err != nil {
		return p, err
	}
	return p, nil
}

// ParseMintAsset validates a loose bag into MintAssetParams. The minimal
// and mockToken flags bypass normal field derivation entirely; they must
// be explicit booleans and are mutually exclusive.
func ParseMintAsset(bag map[string]any) (MintAssetParams, error) {
	var p MintAssetParams
	var err error
	if p.Minimal, err = flagField(FuncMintAsset, bag, ParamMinimal); err != nil {
		return p, err
	}
	if p.MockToken, err = flagField(FuncMintAsset, bag, ParamMockToken); err != nil {
		return p, err
	}
	if p.Minimal && p.MockToken {
		return p, &ValidationError{
			Code: InvalidParameterType, Function: FuncMintAsset, Field: ParamMockToken,
			Detail: "minimal and mockToken are mutually exclusive",
		}
	}
	if p.Minimal || p.MockToken {
		return p, nil
	}
	if p.TokenAddress, err = addressField(FuncMintAsset, bag, "tokenAddress"); err != nil {
		return p, err
	}
	if p.Metadata, err = metadataField(FuncMintAsset, bag, "metadata"); err != nil {
		return p, err
	}
	if p.AvailableDates, err = datesField(FuncMintAsset, bag, "availableDates"); err != nil {
		return p, err
	}
	return p, nil
}

// ParseUpdateAvailability validates a loose bag into
// UpdateAvailabilityParams.
func ParseUpdateAvailability(bag map[string]any) (UpdateAvailabilityParams, error) {
	var p UpdateAvailabilityParams
	var err error
	if p.TokenAddress, err = addressField(FuncUpdateAvailability, bag, "tokenAddress"); err != nil {
		return p, err
	}
	if p.SerialNumber, err = int64Field(FuncUpdateAvailability, bag, "serialNumber"); err != nil {
		return p, err
	}
	if p.Date, err = uint256Field(FuncUpdateAvailability, bag, "date"); err != nil {
		return p, err
	}
	v, ok := bag["isBooked"]
	if !ok {
		return p, &ValidationError{Code: MissingParameter, Function: FuncUpdateAvailability, Field: "isBooked"}
	}
	b, ok := v.(bool)
	if !ok {
		return p, &ValidationError{
			Code: InvalidParameterType, Function: FuncUpdateAvailability, Field: "isBooked",
			Detail: fmt.Sprintf("expected bool, got %T", v),
		}
	}
	p.IsBooked = b
	return p, nil
}

// ParseTransferAsset validates a loose bag into TransferAssetParams.
func ParseTransferAsset(bag map[string]any) (TransferAssetParams, error) {
	var p TransferAssetParams
	var err error
	if p.TokenAddress, err = addressField(FuncTransferAsset, bag, "tokenAddress"); err != nil {
		return p, err
	}
	if p.NewOwnerAddress, err = addressField(FuncTransferAsset, bag, "newOwnerAddress"); err != nil {
		return p, err
	}
	if p.SerialNumber, err = int64Field(FuncTransferAsset, bag, "serialNumber"); err != nil {
		return p, err
	}
	return p, nil
}

// stringField extracts a required string.
func stringField(fn string, bag map[string]any, field string) (string, error) {
	v, ok := bag[field]
	if !ok {
		return "", &ValidationError{Code: MissingParameter, Function: fn, Field: field}
	}
	s, ok := v.(string)
	if !ok {
		return "", &ValidationError{
			Code: InvalidParameterType, Function: fn, Field: field,
			Detail: fmt.Sprintf("expected string, got %T", v),
		}
	}
	return s, nil
}

// flagField extracts an optional boolean diagnostic flag. Absent means
// false; any present non-bool value is rejected so a mode is never
// selected by accident.
func flagField(fn string, bag map[string]any, field string) (bool, error) {
	v, ok := bag[field]
	if !ok {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, &ValidationError{
			Code: InvalidParameterType, Function: fn, Field: field,
			Detail: fmt.Sprintf("expected bool, got %T", v),
		}
	}
	return b, nil
}

// int64Field extracts a required signed integer. JSON-decoded bags carry
// numbers as float64, so whole floats are accepted alongside the integer
// types and decimal strings.
func int64Field(fn string, bag map[string]any, field string) (int64, error) {
	v, ok := bag[field]
	if !ok {
		return 0, &ValidationError{Code: MissingParameter, Function: fn, Field: field}
	}
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, invalidNumber(fn, field, "value overflows int64")
		}
		return int64(n), nil
	case float64:
		if n != math.Trunc(n) || n < math.MinInt64 || n > math.MaxInt64 {
			return 0, invalidNumber(fn, field, "not a whole int64")
		}
		return int64(n), nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, invalidNumber(fn, field, "not a decimal integer")
		}
		return i, nil
	default:
		return 0, &ValidationError{
			Code: InvalidParameterType, Function: fn, Field: field,
			Detail: fmt.Sprintf("expected integer, got %T", v),
		}
	}
}

// uint32Field extracts a required unsigned 32-bit integer.
func uint32Field(fn string, bag map[string]any, field string) (uint32, error) {
	i, err := int64Field(fn, bag, field)
	if err != nil {
		return 0, err
	}
	if i < 0 || i > math.MaxUint32 {
		return 0, invalidNumber(fn, field, "out of uint32 range")
	}
	return uint32(i), nil
}

// uint256Field extracts a required unsigned 256-bit integer.
func uint256Field(fn string, bag map[string]any, field string) (*uint256.Int, error) {
	v, ok := bag[field]
	if !ok {
		return nil, &ValidationError{Code: MissingParameter, Function: fn, Field: field}
	}
	u, err := toUint256(v)
	if err != nil {
		return nil, &ValidationError{
			Code: InvalidParameterType, Function: fn, Field: field, Detail: err.Error(),
		}
	}
	return u, nil
}

// toUint256 converts one loose scalar to a uint256 word.
func toUint256(v any) (*uint256.Int, error) {
	switch n := v.(type) {
	case *uint256.Int:
		return n.Clone(), nil
	case uint256.Int:
		return n.Clone(), nil
	case *big.Int:
		u, overflow := uint256.FromBig(n)
		if overflow || n.Sign() < 0 {
			return nil, fmt.Errorf("out of uint256 range")
		}
		return u, nil
	case int:
		if n < 0 {
			return nil, fmt.Errorf("negative value")
		}
		return uint256.NewInt(uint64(n)), nil
	case int64:
		if n < 0 {
			return nil, fmt.Errorf("negative value")
		}
		return uint256.NewInt(uint64(n)), nil
	case uint64:
		return uint256.NewInt(n), nil
	case float64:
		if n != math.Trunc(n) || n < 0 || n > math.MaxUint64 {
			return nil, fmt.Errorf("not a whole unsigned integer")
		}
		return uint256.NewInt(uint64(n)), nil
	case string:
		b, ok := new(big.Int).SetString(n, 10)
		if !ok || b.Sign() < 0 {
			return nil, fmt.Errorf("not a decimal unsigned integer")
		}
		u, overflow := uint256.FromBig(b)
		if overflow {
			return nil, fmt.Errorf("out of uint256 range")
		}
		return u, nil
	default:
		return nil, fmt.Errorf("expected unsigned integer, got %T", v)
	}
}

// addressField extracts a required address. Both 20-byte hex (with or
// without 0x) and shard.realm.num ledger ids are accepted; the latter are
// mapped to their long-zero EVM form.
func addressField(fn string, bag map[string]any, field string) (common.Address, error) {
	v, ok := bag[field]
	if !ok {
		return common.Address{}, &ValidationError{Code: MissingParameter, Function: fn, Field: field}
	}
	switch a := v.(type) {
	case common.Address:
		return a, nil
	case string:
		addr, err := parseAddress(a)
		if err != nil {
			return common.Address{}, &ValidationError{
				Code: InvalidParameterType, Function: fn, Field: field, Detail: err.Error(),
			}
		}
		return addr, nil
	default:
		return common.Address{}, &ValidationError{
			Code: InvalidParameterType, Function: fn, Field: field,
			Detail: fmt.Sprintf("expected address string, got %T", v),
		}
	}
}

// parseAddress parses a 20-byte hex address or a shard.realm.num id.
func parseAddress(s string) (common.Address, error) {
	if s == "" {
		return common.Address{}, fmt.Errorf("empty address")
	}
	if common.IsHexAddress(s) {
		return common.HexToAddress(s), nil
	}
	parts := strings.Split(s, ".")
	if len(parts) == 3 {
		shard, err1 := strconv.ParseUint(parts[0], 10, 32)
		realm, err2 := strconv.ParseUint(parts[1], 10, 64)
		num, err3 := strconv.ParseUint(parts[2], 10, 64)
		if err1 == nil && err2 == nil && err3 == nil {
			var addr common.Address
			binary.BigEndian.PutUint32(addr[0:4], uint32(shard))
			binary.BigEndian.PutUint64(addr[4:12], realm)
			binary.BigEndian.PutUint64(addr[12:20], num)
			return addr, nil
		}
	}
	return common.Address{}, fmt.Errorf("not a hex address or shard.realm.num id: %q", s)
}

// metadataField extracts the mint metadata. A single string and a string
// sequence are equivalent inputs; an empty string or empty sequence is
// rejected. Each entry is converted to its UTF-8 bytes.
func metadataField(fn string, bag map[string]any, field string) ([][]byte, error) {
	v, ok := bag[field]
	if !ok {
		return nil, &ValidationError{Code: MissingParameter, Function: fn, Field: field}
	}
	invalid := func(detail string) error {
		return &ValidationError{Code: InvalidParameterType, Function: fn, Field: field, Detail: detail}
	}
	var entries []string
	switch m := v.(type) {
	case string:
		entries = []string{m}
	case []string:
		entries = m
	case []any:
		for _, e := range m {
			s, ok := e.(string)
			if !ok {
				return nil, invalid(fmt.Sprintf("metadata entry must be a string, got %T", e))
			}
			entries = append(entries, s)
		}
	default:
		return nil, invalid(fmt.Sprintf("expected string or string sequence, got %T", v))
	}
	if len(entries) == 0 {
		return nil, invalid("empty metadata sequence")
	}
	out := make([][]byte, 0, len(entries))
	for _, e := range entries {
		if e == "" {
			return nil, invalid("empty metadata string")
		}
		out = append(out, []byte(e))
	}
	return out, nil
}

// datesField extracts the availability date array.
func datesField(fn string, bag map[string]any, field string) ([]*uint256.Int, error) {
	v, ok := bag[field]
	if !ok {
		return nil, &ValidationError{Code: MissingParameter, Function: fn, Field: field}
	}
	var raw []any
	switch d := v.(type) {
	case []any:
		raw = d
	case []uint64:
		for _, e := range d {
			raw = append(raw, e)
		}
	case []int:
		for _, e := range d {
			raw = append(raw, e)
		}
	case []*uint256.Int:
		for _, e := range d {
			raw = append(raw, e)
		}
	default:
		return nil, &ValidationError{
			Code: InvalidParameterType, Function: fn, Field: field,
			Detail: fmt.Sprintf("expected unsigned integer sequence, got %T", v),
		}
	}
	out := make([]*uint256.Int, 0, len(raw))
	for i, e := range raw {
		u, err := toUint256(e)
		if err != nil {
			return nil, &ValidationError{
				Code: InvalidParameterType, Function: fn, Field: field,
				Detail: fmt.Sprintf("entry %d: %v", i, err),
			}
		}
		out = append(out, u)
	}
	return out, nil
}

// invalidNumber builds the InvalidParameterType error for numeric fields.
func invalidNumber(fn, field, detail string) *ValidationError {
	return &ValidationError{Code: InvalidParameterType, Function: fn, Field: field, Detail: detail}
}
