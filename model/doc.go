// Package model assembles ledger data into W3C DID Core JSON structures.
//
// These structs are the only types intended for direct JSON serialization by
// consumers; ledger wire types stay in cheqdpb.
package model
