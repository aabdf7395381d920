// Package cryptox holds the key derivation and authenticated encryption used
// for passphrase-protected backups.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"

	"github.com/nanatgrail/prodigyspace/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	KeySize  = 32
	SaltSize = 16
)

var errRandom = errors.New("random source failed")

// DeriveKey stretches a passphrase into a 256-bit key with argon2id.
func DeriveKey(passphrase []byte, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, KeySize)
}

// NewSalt returns SaltSize random bytes.
func NewSalt() ([]byte, error) {
	salt := common.GenerateRandByteArray(SaltSize)
	if salt == nil {
		return nil, errRandom
	}
	return salt, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts plaintext with AES-GCM under key. A fresh random nonce is
// generated for every call and returned alongside the ciphertext.
func Seal(plaintext, key []byte) (ciphertext, nonce []byte, err error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	nonce = common.GenerateRandByteArray(aesgcm.NonceSize())
	if nonce == nil {
		return nil, nil, errRandom
	}

	return aesgcm.Seal(nil, nonce, plaintext, nil), nonce, nil
}

// Open reverses Seal. A wrong key or tampered ciphertext yields
// common.ErrBadPassphrase.
func Open(ciphertext, nonce, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aesgcm.NonceSize() {
		return nil, common.ErrBadPassphrase
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, common.ErrBadPassphrase
	}
	return plaintext, nil
}
