// Package client is the facade that wires transport, the two crypto
// caches, and the encryptor/decryptor together into the handful of
// operations a caller actually needs: encrypt-and-broadcast, browse a
// historical tx, and run a smart query. A package-level Connect builds a
// bound client against a target network's REST/LCD endpoint.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/scrt-labs/secret-sdk-go/apierrors"
	"github.com/scrt-labs/secret-sdk-go/codehash"
	"github.com/scrt-labs/secret-sdk-go/config"
	"github.com/scrt-labs/secret-sdk-go/decryptor"
	"github.com/scrt-labs/secret-sdk-go/encryptor"
	"github.com/scrt-labs/secret-sdk-go/gas"
	"github.com/scrt-labs/secret-sdk-go/iopubkey"
	"github.com/scrt-labs/secret-sdk-go/seed"
	"github.com/scrt-labs/secret-sdk-go/signing"
	"github.com/scrt-labs/secret-sdk-go/transport"
	"github.com/scrt-labs/secret-sdk-go/wiretypes"
)

// Client bundles a transport with the caller's encryption identity and the
// caches every seal/open call needs.
type Client struct {
	Network *config.Network

	Transport  transport.Client
	CodeHashes *codehash.Cache
	IOPubKey   *iopubkey.Cache
	Encryptor  *encryptor.Encryptor
	Decryptor  *decryptor.Decryptor
}

// Connect builds a Client bound to net, sealing and opening messages under
// identity. There is no chain-context handshake to verify up front: REST
// endpoints are stateless and the first real request (a code-hash lookup,
// the consensus IO pubkey fetch, or a tx fetch, depending on the call) will
// surface a TransportError if the network is unreachable.
func Connect(net *config.Network, identity seed.KeyPair, opts ...transport.Option) *Client {
	t := transport.New(net.LCD, opts...)
	ioCache := iopubkey.New(t)
	chCache := codehash.New(t)

	return &Client{
		Network:    net,
		Transport:  t,
		CodeHashes: chCache,
		IOPubKey:   ioCache,
		Encryptor:  encryptor.New(identity.Priv, identity.Pub, chCache, ioCache),
		Decryptor:  decryptor.New(identity.Priv, identity.Pub, ioCache),
	}
}

// ExecuteContractRequest is the caller-supplied half of a contract
// execution: everything except the fee, memo, and signature, which the
// caller assembles into the surrounding StdTx itself (amino sign-bytes
// construction is an external collaborator).
type ExecuteContractRequest struct {
	Sender    string
	Contract  string
	Payload   json.RawMessage
	SentFunds []wiretypes.Coin
}

// BuildExecuteMsg seals payload for contract and returns the wire Msg ready
// to place in a StdTx, plus the nonce the caller must retain to later
// decrypt the response.
func (c *Client) BuildExecuteMsg(ctx context.Context, req ExecuteContractRequest) (wiretypes.Msg, [32]byte, error) {
	sealed, err := c.Encryptor.EncryptExecute(ctx, req.Contract, req.Payload)
	if err != nil {
		return wiretypes.Msg{}, [32]byte{}, err
	}

	msg := wiretypes.Msg{
		Type: wiretypes.MsgTypeExecuteContract,
		ExecuteContract: &wiretypes.MsgExecuteContract{
			Sender:    req.Sender,
			Contract:  req.Contract,
			Msg:       sealed.EnvelopeBase64,
			SentFunds: req.SentFunds,
			// callback_code_hash/callback_sig are always empty/nil when the
			// message originates from a user.
			CallbackCodeHash: "",
			CallbackSig:      nil,
		},
	}
	return msg, sealed.Nonce, nil
}

// InstantiateContractRequest mirrors ExecuteContractRequest for
// instantiation.
type InstantiateContractRequest struct {
	Sender    string
	CodeID    uint64
	Label     string
	Payload   json.RawMessage
	InitFunds []wiretypes.Coin
}

// BuildInstantiateMsg seals payload for the given code id.
func (c *Client) BuildInstantiateMsg(ctx context.Context, req InstantiateContractRequest) (wiretypes.Msg, [32]byte, error) {
	sealed, err := c.Encryptor.EncryptInstantiate(ctx, req.CodeID, req.Payload)
	if err != nil {
		return wiretypes.Msg{}, [32]byte{}, err
	}

	msg := wiretypes.Msg{
		Type: wiretypes.MsgTypeInstantiateContract,
		InstantiateContract: &wiretypes.MsgInstantiateContract{
			Sender:           req.Sender,
			CodeID:           req.CodeID,
			Label:            req.Label,
			InitMsg:          sealed.EnvelopeBase64,
			InitFunds:        req.InitFunds,
			CallbackCodeHash: "",
			CallbackSig:      nil,
		},
	}
	return msg, sealed.Nonce, nil
}

// Broadcast signs nothing itself: it posts an already-signed StdTx and, on
// success, decrypts the response's data/logs/raw_log fields using nonce.
func (c *Client) Broadcast(ctx context.Context, tx transport.StdTx, mode transport.BroadcastMode, nonce [32]byte) (*wiretypes.TxResponse, error) {
	rsp, err := c.Transport.PostTx(ctx, tx, mode)
	if err != nil {
		return nil, err
	}

	txResp := &wiretypes.TxResponse{
		Height: rsp.Height,
		TxHash: rsp.TxHash,
		Data:   rsp.Data,
		RawLog: rsp.RawLog,
	}
	if len(rsp.Logs) > 0 {
		if err := json.Unmarshal(rsp.Logs, &txResp.Logs); err != nil {
			return nil, apierrors.SchemaError{Reason: fmt.Sprintf("malformed tx logs: %v", err)}
		}
	}

	if err := c.Decryptor.DecryptTxResponse(ctx, nonce, txResp); err != nil {
		return txResp, err
	}
	return txResp, nil
}

// GetTx fetches a historical transaction by hash and, if it was ours,
// restores its plaintext payload and decrypted response fields.
func (c *Client) GetTx(ctx context.Context, txHash string) (*wiretypes.TxResponse, error) {
	raw, err := c.Transport.Get(ctx, "/txs/"+txHash)
	if err != nil {
		return nil, err
	}

	var tx wiretypes.TxResponse
	if err := json.Unmarshal(raw, &tx); err != nil {
		return nil, apierrors.SchemaError{Reason: fmt.Sprintf("malformed tx response: %v", err)}
	}

	if _, err := c.Decryptor.DecryptHistoricalTx(ctx, &tx); err != nil {
		return &tx, err
	}
	return &tx, nil
}

// QuerySmart seals payload, GETs the contract's smart-query endpoint, and
// decrypts either the successful result or the encrypted HTTP 500 error
// body.
func (c *Client) QuerySmart(ctx context.Context, contract string, payload json.RawMessage) (json.RawMessage, error) {
	sealed, pathHex, err := c.Encryptor.EncryptQuery(ctx, contract, payload)
	if err != nil {
		return nil, err
	}

	raw, err := c.Transport.Get(ctx, fmt.Sprintf("/wasm/contract/%s/query/%s", contract, pathHex))
	if err != nil {
		var serverErr apierrors.ServerError
		if errors.As(err, &serverErr) {
			return nil, c.Decryptor.DecryptQueryError(ctx, sealed.Nonce, serverErr)
		}
		return nil, err
	}

	var result struct {
		Result struct {
			Smart string `json:"smart"`
		} `json:"result"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, apierrors.SchemaError{Reason: fmt.Sprintf("malformed smart query response: %v", err)}
	}

	plain, err := c.Decryptor.DecryptQueryResult(ctx, sealed.Nonce, result.Result.Smart)
	if err != nil {
		return nil, err
	}
	return plain, nil
}

// GasFor returns the default fee for op, ready to attach to a StdTx, unless
// override supplies caller-chosen values.
func GasFor(op gas.Op, override *wiretypes.StdFee) wiretypes.StdFee {
	return gas.Merge(op, override)
}

// LocalSigner re-exports signing.LocalSigner's constructor so callers don't
// need a second import for the common case of signing with a raw
// secp256k1 key held in memory.
func LocalSigner(priv []byte) (*signing.LocalSigner, error) {
	return signing.NewLocalSigner(priv)
}
