// Package commands defines the wallet CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - connect     Bind a passkey smart wallet via the portal, or resume
//   - disconnect  Forget the stored session
//   - status      Show connection state and balance
//   - transfer    Send SOL through the paymaster
//   - confirm     Look up a transfer's confirmation status
//   - fees        Show sponsorship rules, fee tokens, and estimates
//   - history     List recent transfers
//
// # Implementation
//
// The root command loads configuration (flags over env over config file)
// and builds the dependency graph (stores, endpoint clients, services)
// before any subcommand runs, so handlers share one app context. The
// history database handle is closed after the command returns.
package commands
