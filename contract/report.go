package contract

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// FormatBlock renders a parameter block for display. Verbose output
// includes the full call data hex.
func FormatBlock(b *ParameterBlock, verbose bool) string {
	var sb strings.Builder

	sel := b.Selector()
	sb.WriteString(fmt.Sprintf("Function:  %s\n", b.Signature()))
	sb.WriteString(fmt.Sprintf("Selector:  0x%s\n", hex.EncodeToString(sel[:])))
	sb.WriteString(fmt.Sprintf("Fields:    %d\n", len(b.Fields())))

	for i, f := range b.Fields() {
		sb.WriteString(fmt.Sprintf("  [%d] %-10s %s\n", i, f.Type, describeField(f)))
	}

	if verbose {
		sb.WriteString(fmt.Sprintf("CallData:  0x%s\n", hex.EncodeToString(b.CallData())))
	}
	return sb.String()
}

// describeField renders one field's value compactly.
func describeField(f Field) string {
	switch f.Type {
	case TypeString:
		return fmt.Sprintf("%q", f.Str)
	case TypeAddress:
		return f.Addr.Hex()
	case TypeBytesArray:
		parts := make([]string, len(f.Bytes))
		for i, b := range f.Bytes {
			parts[i] = fmt.Sprintf("%d bytes", len(b))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case TypeUint256Array:
		parts := make([]string, len(f.U256s))
		for i, u := range f.U256s {
			parts[i] = u.Dec()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case TypeInt64:
		return fmt.Sprintf("%d", f.I64)
	case TypeUint32:
		return fmt.Sprintf("%d", f.U32)
	case TypeUint256:
		if f.U256 == nil {
			return "0"
		}
		return f.U256.Dec()
	case TypeBool:
		return fmt.Sprintf("%v", f.Bool)
	default:
		return "?"
	}
}

// FormatExecutionResult renders an execution result for display.
func FormatExecutionResult(res *ExecutionResult) string {
	var sb strings.Builder

	sb.WriteString("\n--- Execution Result ---\n\n")
	sb.WriteString(fmt.Sprintf("Success:       %v\n", res.Success))
	sb.WriteString(fmt.Sprintf("TransactionID: %s\n", res.TransactionID))
	if res.FailureClass != FailureNone {
		sb.WriteString(fmt.Sprintf("FailureClass:  %s\n", res.FailureClass))
	}
	if res.Receipt == nil {
		sb.WriteString("Receipt:       (none)\n")
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("Receipt:       %s\n", res.Receipt.Status))
	if cr := res.Receipt.ContractResult; cr != nil {
		sb.WriteString(fmt.Sprintf("  ContractResult: %d bytes (verified: %v)\n", len(cr.Raw), cr.Verified))
	}
	return sb.String()
}
