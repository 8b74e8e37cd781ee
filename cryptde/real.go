package cryptde

import (
	"crypto/rand"
	"fmt"
	"os"

	"golang.org/x/crypto/nacl/box"

	"github.com/substratum-net/hopper/primitives"
)

// RealCryptDE is a genuine asymmetric-encryption CryptDE, using anonymous
// NaCl sealed boxes (golang.org/x/crypto/nacl/box) the way lnd's broader
// dependency stack leans on golang.org/x/crypto for its own Noise-based
// transport encryption. Each RealCryptDE owns exactly one key pair for the
// life of the process.
type RealCryptDE struct {
	publicKey  *[32]byte
	privateKey *[32]byte
}

// A compile-time check that RealCryptDE implements CryptDE.
var _ CryptDE = (*RealCryptDE)(nil)

// NewRealCryptDE generates a fresh Curve25519 key pair and returns a
// RealCryptDE wrapping it.
func NewRealCryptDE() (*RealCryptDE, error) {
	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("cryptde: generate key pair: %w", err)
	}

	return &RealCryptDE{publicKey: pub, privateKey: priv}, nil
}

// keyFileSize is the on-disk layout of a persisted RealCryptDE key pair:
// the 32-byte private key followed by the 32-byte public key. This core
// treats persistence as someone else's problem (spec Non-goal); this helper
// exists purely so hopperd doesn't generate a fresh, unreachable identity
// every restart.
const keyFileSize = 64

// NewRealCryptDEFromFile loads a key pair from path, or generates one and
// writes it to path (mode 0600) if the file does not exist yet.
func NewRealCryptDEFromFile(path string) (*RealCryptDE, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		de, genErr := NewRealCryptDE()
		if genErr != nil {
			return nil, genErr
		}

		out := make([]byte, 0, keyFileSize)
		out = append(out, de.privateKey[:]...)
		out = append(out, de.publicKey[:]...)

		if err := os.WriteFile(path, out, 0o600); err != nil {
			return nil, fmt.Errorf("cryptde: persist key pair: %w", err)
		}

		return de, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cryptde: read key file: %w", err)
	}

	if len(raw) != keyFileSize {
		return nil, fmt.Errorf(
			"cryptde: key file %s has %d bytes, want %d", path, len(raw), keyFileSize)
	}

	de := &RealCryptDE{privateKey: new([32]byte), publicKey: new([32]byte)}
	copy(de.privateKey[:], raw[:32])
	copy(de.publicKey[:], raw[32:])

	return de, nil
}

// PublicKey returns this node's public key.
func (r *RealCryptDE) PublicKey() primitives.Key {
	return primitives.NewKey(r.publicKey[:])
}

// PrivateKey returns this node's private key.
func (r *RealCryptDE) PrivateKey() primitives.Key {
	return primitives.NewKey(r.privateKey[:])
}

// Encode seals plaintext to recipientPublicKey using an anonymous NaCl box:
// a fresh ephemeral key pair is generated internally for every call, so the
// caller never has to manage one.
func (r *RealCryptDE) Encode(recipientPublicKey primitives.Key,
	plaintext primitives.PlainData) (primitives.CryptData, error) {

	var recipient [32]byte
	if len(recipientPublicKey) != len(recipient) {
		return nil, fmt.Errorf(
			"cryptde: recipient key must be %d bytes, got %d",
			len(recipient), len(recipientPublicKey))
	}
	copy(recipient[:], recipientPublicKey.Bytes())

	sealed, err := box.SealAnonymous(nil, plaintext.Bytes(), &recipient, rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("cryptde: seal: %w", err)
	}

	return primitives.NewCryptData(sealed), nil
}

// Decode opens a box sealed by Encode. privateKey must equal this CryptDE's
// own private key; Decode never holds or accepts another node's key.
func (r *RealCryptDE) Decode(privateKey primitives.Key,
	cryptData primitives.CryptData) (primitives.PlainData, error) {

	if !primitives.NewKey(r.privateKey[:]).Equal(privateKey) {
		return nil, fmt.Errorf("cryptde: private key does not belong to this CryptDE")
	}

	opened, ok := box.OpenAnonymous(nil, cryptData.Bytes(), r.publicKey, r.privateKey)
	if !ok {
		return nil, fmt.Errorf("cryptde: open: authentication failed")
	}

	return primitives.NewPlainData(opened), nil
}
