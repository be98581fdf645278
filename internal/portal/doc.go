// Package portal provides an HTTP implementation of the domain.PortalClient
// interface.
//
// The portal owns the passkey ceremony: it verifies the WebAuthn exchange in
// the user's browser and binds a smart wallet to the resulting credential.
// This package only speaks the portal's REST surface; no WebAuthn logic
// lives on this side.
//
// Supported operations include:
//   - Registering a device key and receiving the bound wallet account.
//   - Resolving the wallet behind an existing credential.
//   - Checking portal reachability.
//
// All requests are JSON over HTTP and accept a context for cancellation and
// deadlines. Non-2xx statuses are returned as errors carrying the portal's
// JSON error message when one is present.
package portal
