package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// TxEvent is a single push notification about a transaction reaching the
// chain, delivered over the Tendermint RPC websocket.
type TxEvent struct {
	TxHash string
	Height string
	Raw    json.RawMessage
}

type subscribeRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Method  string          `json:"method"`
	Params  subscribeParams `json:"params"`
}

type subscribeParams struct {
	Query string `json:"query"`
}

// WatchTx subscribes to the Tendermint `/websocket` RPC endpoint and streams
// TxEvent notifications for the given transaction hash until the context is
// cancelled or the connection drops.
//
// The original client polls GET /txs/{hash} in a loop until it stops
// 404ing; this supplements that with a push-based alternative for callers
// who would rather not busy-poll, following the same watch/subscribe shape
// the Cosmos SDK's own Tendermint RPC client exposes.
func WatchTx(ctx context.Context, wsURL, txHash string, logger *zap.Logger) (<-chan TxEvent, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("transport: failed to dial tendermint websocket: %w", err)
	}

	query := fmt.Sprintf("tm.event='Tx' AND tx.hash='%s'", strings.ToUpper(txHash))
	sub := subscribeRequest{
		JSONRPC: "2.0",
		ID:      "secret-sdk-watch-tx",
		Method:  "subscribe",
		Params:  subscribeParams{Query: query},
	}
	if err := conn.WriteJSON(sub); err != nil {
		conn.Close()
		return nil, fmt.Errorf("transport: failed to subscribe: %w", err)
	}

	out := make(chan TxEvent)
	go func() {
		defer close(out)
		defer conn.Close()

		go func() {
			<-ctx.Done()
			conn.Close()
		}()

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				logger.Debug("tendermint websocket closed", zap.Error(err))
				return
			}
			select {
			case out <- TxEvent{TxHash: txHash, Raw: raw}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
