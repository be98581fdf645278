// Package domain defines the data models and interfaces shared across the
// demo. It contains plain types (wire/state) and contracts (interfaces)
// only; behaviour lives in the services and clients that implement them.
package domain
