package wiretypes

// Attribute is a single {key, value} pair inside a StringEvent. Both fields
// travel base64-encoded on the wire when they originate from a wasm
// contract, since CosmWasm attributes are opaque bytes.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// StringEvent groups Attributes under an event type, e.g. "wasm" or
// "message".
type StringEvent struct {
	Type       string      `json:"type"`
	Attributes []Attribute `json:"attributes"`
}

// ABCIMessageLog is one message's execution log within a tx.
type ABCIMessageLog struct {
	MsgIndex int           `json:"msg_index"`
	Log      string        `json:"log"`
	Events   []StringEvent `json:"events"`
}

// TxValue is the signed-transaction body embedded in a TxResponse, used by
// the historical-tx decryption path to inspect the original message.
type TxValue struct {
	Msg  []Msg  `json:"msg"`
	Fee  StdFee `json:"fee"`
	Memo string `json:"memo"`
}

// TxResponse is the LCD's tx-query response shape: broadcast result and
// historical tx-search share this structure, differing only in whether Tx
// is populated.
type TxResponse struct {
	Height string           `json:"height"`
	TxHash string           `json:"txhash"`
	Data   string           `json:"data"`
	RawLog string           `json:"raw_log"`
	Logs   []ABCIMessageLog `json:"logs,omitempty"`
	Tx     *TxValue         `json:"tx,omitempty"`
}
