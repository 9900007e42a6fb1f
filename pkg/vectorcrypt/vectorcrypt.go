// Package vectorcrypt protects face embeddings at rest with AES-256-GCM.
// Vectors are serialized as big-endian IEEE 754 float64 words, sealed with
// a fresh random nonce per call, and only ever handed back after the GCM
// tag verifies. A template that fails the tag check yields ErrIntegrity;
// one whose byte layout cannot be a vector at all yields ErrFormat.
package vectorcrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/facegate/facegate/internal/entity"
)

const (
	KeySize   = 32
	NonceSize = 12

	floatWordSize = 8
)

var (
	ErrIntegrity = errors.New("template failed integrity check")
	ErrFormat    = errors.New("template byte layout is malformed")
	ErrKeySize   = errors.New("encryption key must be 32 bytes")
)

// Cipher seals and opens face vectors under a single process-wide key.
// The key is loaded once at startup and never rotated in place.
type Cipher struct {
	aead cipher.AEAD
}

// New builds a Cipher from a raw 256-bit key.
func New(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, ErrKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init aes: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init gcm: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

// NewFromBase64 decodes a base64 key, as delivered through configuration.
func NewFromBase64(encoded string) (*Cipher, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode key: %w", err)
	}

	return New(key)
}

// Encrypt seals vec and returns the ciphertext (GCM tag appended) together
// with the nonce used. The nonce is drawn from crypto/rand on every call;
// it is never derived from the plaintext or reused.
func (c *Cipher) Encrypt(vec entity.FaceVector) (cipherText, nonce []byte, err error) {
	if !vec.ValidDim() {
		return nil, nil, entity.ErrBadVectorDim
	}

	nonce = make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("generate nonce: %w", err)
	}

	plain := encodeVector(vec)
	cipherText = c.aead.Seal(nil, nonce, plain, nil)

	return cipherText, nonce, nil
}

// Decrypt opens a sealed vector. Any bit flip in cipherText or nonce fails
// with ErrIntegrity rather than returning a silently corrupted vector.
func (c *Cipher) Decrypt(cipherText, nonce []byte) (entity.FaceVector, error) {
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: nonce is %d bytes", ErrFormat, len(nonce))
	}

	if len(cipherText) < c.aead.Overhead() ||
		(len(cipherText)-c.aead.Overhead())%floatWordSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext is %d bytes", ErrFormat, len(cipherText))
	}

	plain, err := c.aead.Open(nil, nonce, cipherText, nil)
	if err != nil {
		return nil, ErrIntegrity
	}

	return decodeVector(plain)
}

func encodeVector(vec entity.FaceVector) []byte {
	buf := make([]byte, len(vec)*floatWordSize)
	for i, f := range vec {
		binary.BigEndian.PutUint64(buf[i*floatWordSize:], math.Float64bits(f))
	}

	return buf
}

func decodeVector(buf []byte) (entity.FaceVector, error) {
	if len(buf)%floatWordSize != 0 {
		return nil, fmt.Errorf("%w: plaintext is %d bytes", ErrFormat, len(buf))
	}

	vec := make(entity.FaceVector, len(buf)/floatWordSize)
	for i := range vec {
		vec[i] = math.Float64frombits(binary.BigEndian.Uint64(buf[i*floatWordSize:]))
	}

	return vec, nil
}

// GenerateKey returns a fresh base64-encoded 256-bit key. Used by the
// keygen command when provisioning a deployment.
func GenerateKey() (string, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}

	return base64.StdEncoding.EncodeToString(key), nil
}
