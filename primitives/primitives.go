// Package primitives defines the opaque byte-string types that the rest of
// the onion-routing core passes around: public keys, ciphertext, and
// cleartext. None of these types know anything about what they contain; the
// cryptde and hop packages are the only code that interprets their bytes.
package primitives

import "bytes"

// Key identifies a node's public key. Two keys are equal iff their
// underlying bytes are equal.
type Key []byte

// NewKey copies b into a new Key.
func NewKey(b []byte) Key {
	return append(Key(nil), b...)
}

// Equal reports whether k and other hold the same bytes.
func (k Key) Equal(other Key) bool {
	return bytes.Equal(k, other)
}

// Bytes returns the raw bytes backing the key.
func (k Key) Bytes() []byte {
	return []byte(k)
}

// CryptData holds ciphertext. Its internal structure is opaque to every
// package except whichever CryptDE implementation produced it.
type CryptData []byte

// NewCryptData copies b into a new CryptData.
func NewCryptData(b []byte) CryptData {
	return append(CryptData(nil), b...)
}

// Equal reports whether c and other hold the same bytes.
func (c CryptData) Equal(other CryptData) bool {
	return bytes.Equal(c, other)
}

// Bytes returns the raw ciphertext bytes.
func (c CryptData) Bytes() []byte {
	return []byte(c)
}

// PlainData holds cleartext payload bytes.
type PlainData []byte

// NewPlainData copies b into a new PlainData.
func NewPlainData(b []byte) PlainData {
	return append(PlainData(nil), b...)
}

// Equal reports whether p and other hold the same bytes.
func (p PlainData) Equal(other PlainData) bool {
	return bytes.Equal(p, other)
}

// Bytes returns the raw cleartext bytes.
func (p PlainData) Bytes() []byte {
	return []byte(p)
}
