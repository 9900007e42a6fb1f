package vectorcrypt_test

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/facegate/facegate/internal/entity"
	"github.com/facegate/facegate/pkg/vectorcrypt"
)

func testKey(t *testing.T) []byte {
	t.Helper()

	key := make([]byte, vectorcrypt.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)

	return key
}

func testVector() entity.FaceVector {
	vec := make(entity.FaceVector, entity.FaceVectorDim)
	for i := range vec {
		vec[i] = 0.01 * float64(i)
	}

	return vec
}

func TestNewRejectsBadKeySize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		size int
	}{
		{"empty", 0},
		{"aes-128 key", 16},
		{"one byte short", 31},
		{"one byte long", 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := vectorcrypt.New(make([]byte, tt.size))
			require.ErrorIs(t, err, vectorcrypt.ErrKeySize)
		})
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	t.Parallel()

	c, err := vectorcrypt.New(testKey(t))
	require.NoError(t, err)

	vec := testVector()

	cipherText, nonce, err := c.Encrypt(vec)
	require.NoError(t, err)
	require.Len(t, nonce, vectorcrypt.NonceSize)

	got, err := c.Decrypt(cipherText, nonce)
	require.NoError(t, err)
	require.Equal(t, vec, got)
}

func TestEncryptRejectsWrongDimension(t *testing.T) {
	t.Parallel()

	c, err := vectorcrypt.New(testKey(t))
	require.NoError(t, err)

	_, _, err = c.Encrypt(make(entity.FaceVector, 64))
	require.ErrorIs(t, err, entity.ErrBadVectorDim)
}

func TestEncryptNeverReusesNonce(t *testing.T) {
	t.Parallel()

	c, err := vectorcrypt.New(testKey(t))
	require.NoError(t, err)

	vec := testVector()

	ct1, nonce1, err := c.Encrypt(vec)
	require.NoError(t, err)

	ct2, nonce2, err := c.Encrypt(vec)
	require.NoError(t, err)

	require.False(t, bytes.Equal(nonce1, nonce2), "same plaintext must get a fresh nonce")
	require.False(t, bytes.Equal(ct1, ct2), "same plaintext must not produce identical ciphertext")
}

func TestDecryptDetectsTampering(t *testing.T) {
	t.Parallel()

	c, err := vectorcrypt.New(testKey(t))
	require.NoError(t, err)

	cipherText, nonce, err := c.Encrypt(testVector())
	require.NoError(t, err)

	for i := range cipherText {
		flipped := bytes.Clone(cipherText)
		flipped[i] ^= 0x01

		_, err := c.Decrypt(flipped, nonce)
		require.ErrorIs(t, err, vectorcrypt.ErrIntegrity, "flipped ciphertext byte %d", i)
	}

	for i := range nonce {
		flipped := bytes.Clone(nonce)
		flipped[i] ^= 0x01

		_, err := c.Decrypt(cipherText, flipped)
		require.ErrorIs(t, err, vectorcrypt.ErrIntegrity, "flipped nonce byte %d", i)
	}
}

func TestDecryptRejectsMalformedLayout(t *testing.T) {
	t.Parallel()

	c, err := vectorcrypt.New(testKey(t))
	require.NoError(t, err)

	cipherText, nonce, err := c.Encrypt(testVector())
	require.NoError(t, err)

	tests := []struct {
		name       string
		cipherText []byte
		nonce      []byte
	}{
		{"empty ciphertext", nil, nonce},
		{"truncated below tag size", cipherText[:8], nonce},
		{"ciphertext not word aligned", cipherText[:len(cipherText)-3], nonce},
		{"empty nonce", cipherText, nil},
		{"short nonce", cipherText, nonce[:8]},
		{"long nonce", cipherText, append(bytes.Clone(nonce), 0x00)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := c.Decrypt(tt.cipherText, tt.nonce)
			require.ErrorIs(t, err, vectorcrypt.ErrFormat)
		})
	}
}

func TestDecryptWithWrongKeyFailsIntegrity(t *testing.T) {
	t.Parallel()

	c1, err := vectorcrypt.New(testKey(t))
	require.NoError(t, err)

	c2, err := vectorcrypt.New(testKey(t))
	require.NoError(t, err)

	cipherText, nonce, err := c1.Encrypt(testVector())
	require.NoError(t, err)

	_, err = c2.Decrypt(cipherText, nonce)
	require.ErrorIs(t, err, vectorcrypt.ErrIntegrity)
}

func TestNewFromBase64(t *testing.T) {
	t.Parallel()

	encoded, err := vectorcrypt.GenerateKey()
	require.NoError(t, err)

	c, err := vectorcrypt.NewFromBase64(encoded)
	require.NoError(t, err)

	vec := testVector()

	cipherText, nonce, err := c.Encrypt(vec)
	require.NoError(t, err)

	got, err := c.Decrypt(cipherText, nonce)
	require.NoError(t, err)
	require.Equal(t, vec, got)

	_, err = vectorcrypt.NewFromBase64("not base64!!")
	require.Error(t, err)
}
