package paymaster

import (
	"encoding/json"
	"fmt"
)

// JSON-RPC 2.0 method names exposed by Kora-style paymaster nodes.
const (
	methodGetConfig           = "getConfig"
	methodGetBlockhash        = "getBlockhash"
	methodGetSupportedTokens  = "getSupportedTokens"
	methodEstimateFee         = "estimateTransactionFee"
	methodSignTransaction     = "signTransaction"
	methodSignAndSend         = "signAndSendTransaction"
	methodTransferTransaction = "transferTransaction"
)

// rpcRequest is a JSON-RPC 2.0 call envelope.
type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// rpcResponse is a JSON-RPC 2.0 reply envelope. Result stays raw until the
// caller knows the concrete shape.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError is a JSON-RPC error object as returned by the paymaster. It
// implements error so rejections flow through normal error handling.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("paymaster rpc %d: %s", e.Code, e.Message)
}

// Param shapes for the methods that take arguments.

type estimateFeeParams struct {
	Transaction string `json:"transaction"`
	FeeToken    string `json:"fee_token,omitempty"`
}

type signTransactionParams struct {
	Transaction string `json:"transaction"`
}

type signAndSendParams struct {
	Transaction string `json:"transaction"`
	FeeToken    string `json:"fee_token,omitempty"`
}

type transferTransactionParams struct {
	Amount      uint64 `json:"amount"`
	Token       string `json:"token"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// getSupportedTokensResult wraps the token list the node returns.
type getSupportedTokensResult struct {
	Tokens []tokenEntry `json:"tokens"`
}

type tokenEntry struct {
	Mint     string `json:"mint"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}
