package storage

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	apperrors "github.com/yourusername/sekolah-api/internal/pkg/errors"
	"github.com/yourusername/sekolah-api/pkg/crypto"
)

// SecureStore encrypts blobs before they reach the BlobStore.
type SecureStore struct {
	blobs BlobStore
	enc   crypto.Encrypter
}

// NewSecureStore creates a new SecureStore
func NewSecureStore(blobs BlobStore, enc crypto.Encrypter) *SecureStore {
	return &SecureStore{blobs: blobs, enc: enc}
}

// Seal encrypts plaintext and writes it to bucket/name, overwriting.
func (s *SecureStore) Seal(bucket, name string, plaintext []byte) error {
	if err := validName(name); err != nil {
		return err
	}
	ct, err := s.enc.Encrypt(plaintext)
	if err != nil {
		return fmt.Errorf("encrypt %s: %w", name, err)
	}
	if _, err := s.blobs.Put(Key(bucket, name), strings.NewReader(ct)); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Open reads and decrypts bucket/name. It returns apperrors.ErrFileMissing when
// the file does not exist and apperrors.ErrDecryptOrParse when decryption fails.
func (s *SecureStore) Open(bucket, name string) ([]byte, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	rc, err := s.blobs.Get(Key(bucket, name))
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return s.OpenInline(string(raw))
}

// OpenInline decrypts a ciphertext that was stored in a database column
// instead of a file.
func (s *SecureStore) OpenInline(ciphertext string) ([]byte, error) {
	pt, err := s.enc.Decrypt(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrDecryptOrParse, err)
	}
	return pt, nil
}

// Remove deletes bucket/name.
func (s *SecureStore) Remove(bucket, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	return s.blobs.Delete(Key(bucket, name))
}

func validName(name string) error {
	if name == "" || name != path.Base(name) || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: invalid file name %q", apperrors.ErrValidation, name)
	}
	return nil
}

// IsMissing reports whether err means the file does not exist.
func IsMissing(err error) bool {
	return errors.Is(err, apperrors.ErrFileMissing)
}
