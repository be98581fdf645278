// Package wallet manages the passkey wallet connection lifecycle.
//
// Connecting generates a device signing key, registers it with the portal
// (which runs the actual passkey ceremony and binds a smart wallet to it),
// and seals the resulting session on disk. Resuming re-resolves the stored
// credential instead of minting a new wallet. The device key never leaves
// the machine.
package wallet
