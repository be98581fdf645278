// Package crypto exposes the minimal at-rest primitives the demo needs.
//
// Contents
//
//   - Passphrase envelope for the session keystore: scrypt key derivation
//     plus ChaCha20-Poly1305 sealing (Seal, Open)
//   - Short public-key fingerprints for display (Fingerprint)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//
// # Notes
//
// Nothing here touches transaction or passkey cryptography: signing is the
// wallet SDK's job and the passkey ceremony is the portal's. Callers should
// treat decrypted session material as sensitive and rely on Wipe when
// practical to reduce its lifetime in memory.
package crypto
