package minting

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// WSConfirmer waits for a transaction signature to be confirmed by
// subscribing to the RPC node's signature notifications over WebSocket.
// One connection is opened per confirmation; mints are rare enough that
// connection reuse is not worth the reconnect machinery.
type WSConfirmer struct {
	endpoint     string
	writeTimeout time.Duration
	requestID    atomic.Uint64
}

// NewWSConfirmer creates a signature confirmer for a WebSocket RPC
// endpoint.
func NewWSConfirmer(endpoint string) *WSConfirmer {
	return &WSConfirmer{
		endpoint:     endpoint,
		writeTimeout: 10 * time.Second,
	}
}

// wsRequest is a JSON-RPC 2.0 request frame.
type wsRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params,omitempty"`
}

// wsMessage covers both subscription replies and notifications.
type wsMessage struct {
	ID     uint64          `json:"id,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Method string          `json:"method,omitempty"`
	Params *struct {
		Result struct {
			Value struct {
				Err interface{} `json:"err"`
			} `json:"value"`
		} `json:"result"`
	} `json:"params,omitempty"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ConfirmingMinter wraps a Minter and blocks until the creation
// signature reaches confirmed commitment before reporting success.
type ConfirmingMinter struct {
	minter    Minter
	confirmer *WSConfirmer
}

// NewConfirmingMinter creates a minter that waits for on-chain
// confirmation of each mint.
func NewConfirmingMinter(m Minter, c *WSConfirmer) *ConfirmingMinter {
	return &ConfirmingMinter{minter: m, confirmer: c}
}

// Compile-time interface check.
var _ Minter = (*ConfirmingMinter)(nil)

// Mint delegates to the wrapped minter, then waits for the returned
// signature to confirm. A mint that was submitted but fails to confirm
// is reported as a minting error; the transaction may still land, so
// the reason names the signature.
func (m *ConfirmingMinter) Mint(ctx context.Context, req MintRequest) (*MintResult, error) {
	result, err := m.minter.Mint(ctx, req)
	if err != nil {
		return nil, err
	}

	if result.Signature != "" {
		if err := m.confirmer.WaitForConfirmation(ctx, result.Signature); err != nil {
			return nil, &Error{
				Reason: fmt.Sprintf("confirmation of %s", result.Signature),
				Err:    err,
			}
		}
	}
	return result, nil
}

// WaitForConfirmation blocks until the signature is confirmed, the node
// reports a transaction error, or ctx expires. Returns nil on
// confirmation.
func (c *WSConfirmer) WaitForConfirmation(ctx context.Context, signature string) error {
	dialer := websocket.Dialer{HandshakeTimeout: 15 * time.Second}
	conn, _, err := dialer.DialContext(ctx, c.endpoint, nil)
	if err != nil {
		return fmt.Errorf("dial confirmation endpoint: %w", err)
	}
	defer conn.Close()

	// Unblock reads when the context expires.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.SetReadDeadline(time.Now())
		case <-done:
		}
	}()

	reqID := c.requestID.Add(1)
	sub := wsRequest{
		JSONRPC: "2.0",
		ID:      reqID,
		Method:  "signatureSubscribe",
		Params: []interface{}{
			signature,
			map[string]interface{}{"commitment": "confirmed"},
		},
	}

	conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	if err := conn.WriteJSON(sub); err != nil {
		return fmt.Errorf("subscribe to signature: %w", err)
	}

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("confirmation wait: %w", ctx.Err())
			}
			return fmt.Errorf("read confirmation message: %w", err)
		}

		if msg.Error != nil {
			return fmt.Errorf("RPC error %d: %s", msg.Error.Code, msg.Error.Message)
		}

		// Subscription acknowledgement for our request; keep reading.
		if msg.ID == reqID {
			continue
		}

		if msg.Method == "signatureNotification" && msg.Params != nil {
			if txErr := msg.Params.Result.Value.Err; txErr != nil {
				return fmt.Errorf("transaction failed on chain: %v", txErr)
			}
			return nil
		}
	}
}
