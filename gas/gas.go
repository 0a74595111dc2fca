// Package gas holds the default fee table for the transaction kinds this
// SDK builds, and the field-wise merge that lets a caller override part of
// a default without having to restate the rest.
package gas

import "github.com/scrt-labs/secret-sdk-go/wiretypes"

// Denom is the coin denomination the default fee table is quoted in.
const Denom = "ucosm"

// Op names a transaction kind the default fee table has an entry for.
type Op string

const (
	OpUpload  Op = "upload"
	OpInit    Op = "init"
	OpExec    Op = "exec"
	OpSend    Op = "send"
)

// DefaultFees maps each Op to the StdFee charged when the caller supplies
// no override.
var DefaultFees = map[Op]wiretypes.StdFee{
	OpUpload: {Amount: []wiretypes.Coin{wiretypes.NewCoin(Denom, 25000)}, Gas: 1000000},
	OpInit:   {Amount: []wiretypes.Coin{wiretypes.NewCoin(Denom, 12500)}, Gas: 500000},
	OpExec:   {Amount: []wiretypes.Coin{wiretypes.NewCoin(Denom, 5000)}, Gas: 200000},
	OpSend:   {Amount: []wiretypes.Coin{wiretypes.NewCoin(Denom, 2000)}, Gas: 80000},
}

// Merge overlays override atop DefaultFees[op], field by field: a nil
// Amount or a zero Gas in override falls back to the default rather than
// zeroing out the result.
func Merge(op Op, override *wiretypes.StdFee) wiretypes.StdFee {
	def := DefaultFees[op]
	if override == nil {
		return def
	}

	merged := def
	if override.Amount != nil {
		merged.Amount = override.Amount
	}
	if override.Gas != 0 {
		merged.Gas = override.Gas
	}
	return merged
}
