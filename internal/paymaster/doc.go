// Package paymaster provides a JSON-RPC client for Kora-style fee-sponsor
// nodes, implementing the domain.PaymasterClient interface.
//
// A paymaster accepts user-signed transactions, validates them against its
// sponsorship policy, places its own account in the fee-payer slot, and
// forwards them to the cluster. The client covers the node's public surface:
//   - getConfig, getBlockhash, getSupportedTokens
//   - estimateTransactionFee
//   - signTransaction, signAndSendTransaction
//   - transferTransaction (server-side transaction assembly)
//
// Requests carry UUID ids and, when configured, an x-api-key header.
// RPC-level rejections are returned as *RPCError values so callers can
// distinguish policy refusals from transport failures.
package paymaster
