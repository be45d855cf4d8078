package contract

import (
	"encoding/binary"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"
)

// ABIType identifies the wire type of one encoded field. The string value
// is the canonical type name used in function signatures.
type ABIType string

const (
	TypeString       ABIType = "string"
	TypeAddress      ABIType = "address"
	TypeBytesArray   ABIType = "bytes[]"
	TypeUint256Array ABIType = "uint256[]"
	TypeInt64        ABIType = "int64"
	TypeUint32       ABIType = "uint32"
	TypeUint256      ABIType = "uint256"
	TypeBool         ABIType = "bool"
)

// Dynamic reports whether the type is head/tail encoded.
func (t ABIType) Dynamic() bool {
	switch t {
	case TypeString, TypeBytesArray, TypeUint256Array:
		return true
	default:
		return false
	}
}

// Field is one typed entry of a ParameterBlock. Exactly one value member
// is meaningful, selected by Type.
type Field struct {
	Type ABIType

	Str   string
	Addr  common.Address
	Bytes [][]byte
	U256s []*uint256.Int
	I64   int64
	U32   uint32
	U256  *uint256.Int
	Bool  bool
}

// ParameterBlock is the ordered, strictly typed binary parameter sequence
// for one contract function call. The field count and per-field types are
// fully determined by the function name, in declaration order.
type ParameterBlock struct {
	function string
	fields   []Field
}

// Function returns the contract function the block was encoded for.
func (b *ParameterBlock) Function() string { return b.function }

// Fields returns the typed fields in declaration order.
func (b *ParameterBlock) Fields() []Field {
	return append([]Field(nil), b.fields...)
}

// Signature returns the canonical function signature, for example
// "transferAsset(address,address,int64)".
func (b *ParameterBlock) Signature() string {
	types := make([]string, len(b.fields))
	for i, f := range b.fields {
		types[i] = string(f.Type)
	}
	return b.function + "(" + strings.Join(types, ",") + ")"
}

// Selector returns the 4-byte Keccak-256 selector of the signature.
func (b *ParameterBlock) Selector() [4]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(b.Signature()))
	var sel [4]byte
	copy(sel[:], h.Sum(nil)[:4])
	return sel
}

// CallData returns the complete call payload: selector followed by the
// canonical ABI encoding of the fields.
func (b *ParameterBlock) CallData() []byte {
	sel := b.Selector()
	return append(sel[:], b.encodeArgs()...)
}

// encodeArgs produces the head/tail argument encoding.
func (b *ParameterBlock) encodeArgs() []byte {
	headLen := 32 * len(b.fields)
	head := make([]byte, 0, headLen)
	var tail []byte
	for _, f := range b.fields {
		if f.Type.Dynamic() {
			head = append(head, uintWord(uint64(headLen+len(tail)))...)
			tail = append(tail, f.encodeTail()...)
		} else {
			head = append(head, f.encodeStatic()...)
		}
	}
	return append(head, tail...)
}

// encodeStatic encodes a static field into its single 32-byte word.
func (f Field) encodeStatic() []byte {
	var w [32]byte
	switch f.Type {
	case TypeAddress:
		copy(w[12:], f.Addr.Bytes())
	case TypeInt64:
		binary.BigEndian.PutUint64(w[24:], uint64(f.I64))
		if f.I64 < 0 {
			for i := 0; i < 24; i++ {
				w[i] = 0xff
			}
		}
	case TypeUint32:
		binary.BigEndian.PutUint32(w[28:], f.U32)
	case TypeUint256:
		u := f.U256
		if u == nil {
			u = uint256.NewInt(0)
		}
		w = u.Bytes32()
	case TypeBool:
		if f.Bool {
			w[31] = 1
		}
	}
	return w[:]
}

// encodeTail encodes a dynamic field's tail section.
func (f Field) encodeTail() []byte {
	switch f.Type {
	case TypeString:
		return lengthPrefixed([]byte(f.Str))
	case TypeUint256Array:
		out := uintWord(uint64(len(f.U256s)))
		for _, u := range f.U256s {
			if u == nil {
				u = uint256.NewInt(0)
			}
			w := u.Bytes32()
			out = append(out, w[:]...)
		}
		return out
	case TypeBytesArray:
		// Dynamic array of dynamic elements: length, element offsets
		// relative to the end of the length word, then the elements.
		out := uintWord(uint64(len(f.Bytes)))
		offsets := make([]byte, 0, 32*len(f.Bytes))
		var elems []byte
		base := 32 * len(f.Bytes)
		for _, b := range f.Bytes {
			offsets = append(offsets, uintWord(uint64(base+len(elems)))...)
			elems = append(elems, lengthPrefixed(b)...)
		}
		out = append(out, offsets...)
		return append(out, elems...)
	default:
		return nil
	}
}

// lengthPrefixed encodes a length word followed by the data padded to a
// 32-byte boundary.
func lengthPrefixed(data []byte) []byte {
	out := uintWord(uint64(len(data)))
	out = append(out, data...)
	if rem := len(data) % 32; rem != 0 {
		out = append(out, make([]byte, 32-rem)...)
	}
	return out
}

// uintWord encodes v as a 32-byte big-endian word.
func uintWord(v uint64) []byte {
	var w [32]byte
	binary.BigEndian.PutUint64(w[24:], v)
	return w[:]
}

// Encode validates the parameter bag against functionName's schema and
// produces its ordered parameter block. The whole bag is validated before
// any field assembly: a bad bag never yields a partial block.
func Encode(functionName string, bag map[string]any) (*ParameterBlock, error) {
	switch functionName {
	case FuncCreateAsset:
		p, err := ParseCreateAsset(bag)
		if err != nil {
			return nil, err
		}
		return p.Block(), nil
	case FuncMintAsset:
		p, err := ParseMintAsset(bag)
		if err != nil {
			return nil, err
		}
		return p.Block(), nil
	case FuncUpdateAvailability:
		p, err := ParseUpdateAvailability(bag)
		if err != nil {
			return nil, err
		}
		return p.Block(), nil
	case FuncTransferAsset:
		p, err := ParseTransferAsset(bag)
		if err != nil {
			return nil, err
		}
		return p.Block(), nil
	default:
		return nil, &ValidationError{Code: UnknownFunction, Function: functionName}
	}
}
