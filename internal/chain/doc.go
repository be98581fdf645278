// Package chain provides the read-only cluster view the demo needs,
// implementing the domain.ChainClient interface over Solana JSON-RPC.
//
// Balances and signature statuses are the only things read directly from the
// cluster; everything that writes goes through the paymaster.
package chain
