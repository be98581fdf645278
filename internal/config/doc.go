// Package config resolves the demo's endpoints and knobs.
//
// Contents:
//   - Config: effective settings for one run.
//   - Load: defaults, then config.yaml, then LAZORKIT_* env vars.
//
// Notes:
//   - The fallback literals point at the hosted devnet services, so a
//     fresh checkout works with no configuration at all.
//   - A .env file in the working directory is loaded when present.
package config
