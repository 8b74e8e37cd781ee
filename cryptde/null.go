package cryptde

import (
	"fmt"

	"github.com/substratum-net/hopper/primitives"
)

// NullCryptDE is a deterministic, non-secret stand-in for a real CryptDE. It
// exists so that tests can construct exact expected ciphertext bytes, the
// same role Substratum's CryptDENull played for the original hopper_lib test
// suite: Encode is just key-prefixing, Decode just checks and strips the
// prefix.
type NullCryptDE struct {
	publicKey  primitives.Key
	privateKey primitives.Key
}

// NewNullCryptDE returns a NullCryptDE whose public and private key are the
// same opaque byte string, matching the single self-addressed key pair used
// throughout the original test suite.
func NewNullCryptDE(key primitives.Key) *NullCryptDE {
	return &NullCryptDE{
		publicKey:  key,
		privateKey: key,
	}
}

// A compile-time check that NullCryptDE implements CryptDE.
var _ CryptDE = (*NullCryptDE)(nil)

// PublicKey returns the node's public key.
func (n *NullCryptDE) PublicKey() primitives.Key {
	return n.publicKey
}

// PrivateKey returns the node's private key.
func (n *NullCryptDE) PrivateKey() primitives.Key {
	return n.privateKey
}

// Encode prepends recipientPublicKey to plaintext. It never fails.
func (n *NullCryptDE) Encode(recipientPublicKey primitives.Key,
	plaintext primitives.PlainData) (primitives.CryptData, error) {

	out := make([]byte, 0, len(recipientPublicKey)+len(plaintext))
	out = append(out, recipientPublicKey.Bytes()...)
	out = append(out, plaintext.Bytes()...)

	return primitives.NewCryptData(out), nil
}

// Decode strips the recipientPublicKey prefix that Encode added, failing if
// privateKey does not match that prefix.
func (n *NullCryptDE) Decode(privateKey primitives.Key,
	cryptData primitives.CryptData) (primitives.PlainData, error) {

	raw := cryptData.Bytes()
	if len(raw) < len(privateKey) {
		return nil, fmt.Errorf("cryptde: cipher data too short for key")
	}

	prefix := primitives.NewKey(raw[:len(privateKey)])
	if !prefix.Equal(privateKey) {
		return nil, fmt.Errorf("cryptde: private key does not match recipient")
	}

	return primitives.NewPlainData(raw[len(privateKey):]), nil
}
