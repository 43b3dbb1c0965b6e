package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

// Encrypter turns plaintext into an opaque string and back.
type Encrypter interface {
	Encrypt(plaintext []byte) (string, error)
	Decrypt(ciphertext string) ([]byte, error)
}

// ErrInvalidKey is returned when no usable key material was provided.
var ErrInvalidKey = errors.New("encryption key is empty")

const hkdfInfo = "sekolah-api blob encryption v1"

// AESGCM encrypts with AES-256-GCM. Output is hex(nonce || ciphertext).
type AESGCM struct {
	key []byte
}

// NewAESGCM builds an Encrypter from the application key. A 64-char hex key is
// used as is, anything else is stretched to 32 bytes with HKDF-SHA256.
func NewAESGCM(appKey string) (*AESGCM, error) {
	appKey = strings.TrimSpace(appKey)
	if appKey == "" {
		return nil, ErrInvalidKey
	}

	if len(appKey) == 64 {
		if raw, err := hex.DecodeString(appKey); err == nil {
			return &AESGCM{key: raw}, nil
		}
	}

	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(appKey), nil, []byte(hkdfInfo))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("failed to derive encryption key: %w", err)
	}
	return &AESGCM{key: key}, nil
}

// Encrypt implements Encrypter
func (e *AESGCM) Encrypt(plaintext []byte) (string, error) {
	gcm, err := e.gcm()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := gcm.Seal(nil, nonce, plaintext, nil)
	return hex.EncodeToString(append(nonce, sealed...)), nil
}

// Decrypt implements Encrypter
func (e *AESGCM) Decrypt(ciphertext string) ([]byte, error) {
	data, err := hex.DecodeString(strings.TrimSpace(ciphertext))
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext from hex: %w", err)
	}

	gcm, err := e.gcm()
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return nil, errors.New("ciphertext is too short to contain nonce")
	}

	nonce, sealed := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt with GCM: %w", err)
	}
	return plaintext, nil
}

func (e *AESGCM) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(e.key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}
