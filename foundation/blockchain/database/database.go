// Package database provides the block and transaction types that make up the
// blockchain, the hashing contract that binds them together and the proof of
// work required before a block can be admitted to the chain.
//
// Everything here is held in memory. A Block is a plain value, the chain
// owning it decides who may change it.
package database
