// Package sponsor implements the fee-sponsorship side of the demo
// paymaster: the policy that decides which transactions get their fees
// covered, and the engine that enforces it.
//
// A Policy is loaded from YAML and constrains sponsorship by program
// allowlist, blocked destinations, a per-transfer lamport cap, and a total
// budget. The Engine evaluates candidate transactions against the active
// policy, signs the fee-payer slot for those that pass, and keeps a ledger
// of everything it has sponsored. PolicyWatcher hot-reloads the policy file
// so caps can be tightened without restarting the server.
package sponsor
