// Package domain contains the core model for pwstasks.
//
// The domain does not touch the filesystem, the network or any config format.
// Infra adapters map into/from these types.
package domain
