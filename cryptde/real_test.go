package cryptde

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/substratum-net/hopper/primitives"
)

func TestRealCryptDEEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	de, err := NewRealCryptDE()
	require.NoError(t, err)

	plaintext := primitives.NewPlainData([]byte("onward to the next hop"))

	crypt, err := de.Encode(de.PublicKey(), plaintext)
	require.NoError(t, err)
	require.NotEqual(t, plaintext.Bytes(), crypt.Bytes())

	decoded, err := de.Decode(de.PrivateKey(), crypt)
	require.NoError(t, err)
	require.True(t, decoded.Equal(plaintext))
}

func TestRealCryptDEDecodeFailsWithWrongKey(t *testing.T) {
	t.Parallel()

	recipient, err := NewRealCryptDE()
	require.NoError(t, err)

	other, err := NewRealCryptDE()
	require.NoError(t, err)

	crypt, err := recipient.Encode(recipient.PublicKey(), primitives.NewPlainData([]byte{1, 2, 3}))
	require.NoError(t, err)

	_, err = other.Decode(other.PrivateKey(), crypt)
	require.Error(t, err)
}

func TestNewRealCryptDEFromFileGeneratesAndPersists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "identity.key")

	first, err := NewRealCryptDEFromFile(path)
	require.NoError(t, err)

	second, err := NewRealCryptDEFromFile(path)
	require.NoError(t, err)

	require.True(t, first.PublicKey().Equal(second.PublicKey()))
	require.True(t, first.PrivateKey().Equal(second.PrivateKey()))
}

func TestNewRealCryptDEFromFileRejectsTruncatedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "identity.key")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0o600))

	_, err := NewRealCryptDEFromFile(path)
	require.Error(t, err)
}
