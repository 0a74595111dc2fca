// Package wiretypes holds the JSON-shaped wire types the client builds and
// parses: coins, fees, and a tagged Msg union. Amino sign-bytes
// construction and Bech32 address encoding remain external collaborators;
// this package only shapes what travels over REST.
package wiretypes

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Coin is a single denomination amount, e.g. {"denom":"ucosm","amount":"5000"}.
type Coin struct {
	Denom  string          `json:"denom"`
	Amount decimal.Decimal `json:"amount"`
}

// NewCoin constructs a Coin from an integer amount of the smallest unit.
func NewCoin(denom string, amount int64) Coin {
	return Coin{Denom: denom, Amount: decimal.NewFromInt(amount)}
}

// StdFee is the fee section of a StdTx.
type StdFee struct {
	Amount []Coin `json:"amount"`
	Gas    uint64 `json:"gas,string"`
}

// MarshalJSON encodes the amount using Cosmos SDK's string-quoted decimal
// convention.
func (c Coin) MarshalJSON() ([]byte, error) {
	type alias struct {
		Denom  string `json:"denom"`
		Amount string `json:"amount"`
	}
	return json.Marshal(alias{Denom: c.Denom, Amount: c.Amount.String()})
}

// UnmarshalJSON decodes a string-quoted decimal amount.
func (c *Coin) UnmarshalJSON(data []byte) error {
	var alias struct {
		Denom  string `json:"denom"`
		Amount string `json:"amount"`
	}
	if err := json.Unmarshal(data, &alias); err != nil {
		return fmt.Errorf("wiretypes: malformed coin: %w", err)
	}
	amt, err := decimal.NewFromString(alias.Amount)
	if err != nil {
		return fmt.Errorf("wiretypes: malformed coin amount %q: %w", alias.Amount, err)
	}
	c.Denom = alias.Denom
	c.Amount = amt
	return nil
}
