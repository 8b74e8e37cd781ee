// Package cryptde defines the asymmetric-crypto facade that the onion-routing
// core treats as a black box. Hopper owns exactly one CryptDE for the
// lifetime of the process; it never aliases another node's implementation.
package cryptde

import "github.com/substratum-net/hopper/primitives"

// CryptDE is the asymmetric encode/decode contract a Hopper instance is
// constructed with. An implementation has a single, fixed local key pair.
type CryptDE interface {
	// PublicKey returns this node's public key.
	PublicKey() primitives.Key

	// PrivateKey returns this node's private key.
	PrivateKey() primitives.Key

	// Encode encrypts plaintext under recipientPublicKey.
	Encode(recipientPublicKey primitives.Key, plaintext primitives.PlainData) (primitives.CryptData, error)

	// Decode decrypts cryptData using privateKey. Decode only ever
	// succeeds when privateKey is the private half of the key pair that
	// encrypted cryptData.
	Decode(privateKey primitives.Key, cryptData primitives.CryptData) (primitives.PlainData, error)
}
