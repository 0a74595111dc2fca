package wiretypes

import (
	"encoding/json"
	"fmt"
)

// Msg type discriminator strings, matching the amino type tags the chain
// expects on the wire.
const (
	MsgTypeSend                = "cosmos-sdk/MsgSend"
	MsgTypeStoreCode           = "wasm/MsgStoreCode"
	MsgTypeInstantiateContract = "wasm/MsgInstantiateContract"
	MsgTypeExecuteContract     = "wasm/MsgExecuteContract"
)

// Msg is a tagged variant over the transaction message shapes this SDK
// needs to build or inspect. On the wire these are duck-typed
// {type, value} objects; Go models that as an explicit sum type with a
// catch-all Other case for message kinds the SDK does not construct but
// must still round-trip through historical-tx decryption.
type Msg struct {
	Type string

	Send                *MsgSend
	StoreCode           *MsgStoreCode
	InstantiateContract *MsgInstantiateContract
	ExecuteContract     *MsgExecuteContract
	Other               json.RawMessage
}

// MsgSend is a plain bank transfer; never encrypted.
type MsgSend struct {
	FromAddress string `json:"from_address"`
	ToAddress   string `json:"to_address"`
	Amount      []Coin `json:"amount"`
}

// MsgStoreCode uploads WASM bytecode.
type MsgStoreCode struct {
	Sender       string `json:"sender"`
	WASMByteCode string `json:"wasm_byte_code"` // base64
	Source       string `json:"source,omitempty"`
	Builder      string `json:"builder,omitempty"`
}

// MsgInstantiateContract instantiates an uploaded code id. InitMsg carries
// the base64-encoded encryption envelope once sealed.
type MsgInstantiateContract struct {
	Sender            string `json:"sender"`
	CodeID            uint64 `json:"code_id,string"`
	Label             string `json:"label"`
	InitMsg           string `json:"init_msg"`
	InitFunds         []Coin `json:"init_funds,omitempty"`
	CallbackCodeHash  string `json:"callback_code_hash"`
	CallbackSig       []byte `json:"callback_sig"`
}

// MsgExecuteContract calls an instantiated contract. Msg carries the
// base64-encoded encryption envelope once sealed.
type MsgExecuteContract struct {
	Sender           string `json:"sender"`
	Contract         string `json:"contract"`
	Msg              string `json:"msg"`
	SentFunds        []Coin `json:"sent_funds,omitempty"`
	CallbackCodeHash string `json:"callback_code_hash"`
	CallbackSig      []byte `json:"callback_sig"`
}

// MarshalJSON serializes the message using the {"type":..., "value":...}
// envelope the chain expects.
func (m Msg) MarshalJSON() ([]byte, error) {
	type envelope struct {
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value"`
	}

	var value interface{}
	switch m.Type {
	case MsgTypeSend:
		value = m.Send
	case MsgTypeStoreCode:
		value = m.StoreCode
	case MsgTypeInstantiateContract:
		value = m.InstantiateContract
	case MsgTypeExecuteContract:
		value = m.ExecuteContract
	default:
		return json.Marshal(envelope{Type: m.Type, Value: m.Other})
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("wiretypes: failed to encode msg value: %w", err)
	}
	return json.Marshal(envelope{Type: m.Type, Value: raw})
}

// UnmarshalJSON parses the {"type":..., "value":...} envelope, decoding into
// the matching known case or falling back to Other for unrecognized types.
func (m *Msg) UnmarshalJSON(data []byte) error {
	var envelope struct {
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("wiretypes: malformed msg envelope: %w", err)
	}
	m.Type = envelope.Type

	switch envelope.Type {
	case MsgTypeSend:
		m.Send = &MsgSend{}
		return json.Unmarshal(envelope.Value, m.Send)
	case MsgTypeStoreCode:
		m.StoreCode = &MsgStoreCode{}
		return json.Unmarshal(envelope.Value, m.StoreCode)
	case MsgTypeInstantiateContract:
		m.InstantiateContract = &MsgInstantiateContract{}
		return json.Unmarshal(envelope.Value, m.InstantiateContract)
	case MsgTypeExecuteContract:
		m.ExecuteContract = &MsgExecuteContract{}
		return json.Unmarshal(envelope.Value, m.ExecuteContract)
	default:
		m.Other = envelope.Value
		return nil
	}
}
