// internal/vatreturn/crypto.go
package vatreturn

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"fmt"

	stderrors "github.com/Nishal72/InnoMinds-Code4Good/internal/common/errors"
)

// Cipher encrypts filing summaries with AES-128-CBC and PKCS#7 padding,
// base64-encoded for SMS transport. The IV is fixed so ciphertexts are
// reproducible and decryptable offline with the shared material.
type Cipher struct {
	block cipher.Block
	iv    []byte
}

func NewCipher(key, iv string) (*Cipher, error) {
	if len(key) != aes.BlockSize {
		return nil, fmt.Errorf("aes key must be %d bytes, got %d", aes.BlockSize, len(key))
	}
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("aes iv must be %d bytes, got %d", aes.BlockSize, len(iv))
	}

	block, err := aes.NewCipher([]byte(key))
	if err != nil {
		return nil, err
	}
	return &Cipher{block: block, iv: []byte(iv)}, nil
}

// Encrypt pads the plaintext to a whole number of blocks and returns
// the base64-encoded ciphertext.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	padded := pad([]byte(plaintext))

	encrypted := make([]byte, len(padded))
	cipher.NewCBCEncrypter(c.block, c.iv).CryptBlocks(encrypted, padded)

	return base64.StdEncoding.EncodeToString(encrypted), nil
}

// Decrypt reverses Encrypt. Malformed base64, a truncated ciphertext or
// corrupt padding all come back as a decryption error.
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", stderrors.NewDecryptionFailedError(err)
	}
	if len(decoded) == 0 || len(decoded)%aes.BlockSize != 0 {
		return "", stderrors.NewDecryptionFailedError(errors.New("ciphertext is not a whole number of blocks"))
	}

	decrypted := make([]byte, len(decoded))
	cipher.NewCBCDecrypter(c.block, c.iv).CryptBlocks(decrypted, decoded)

	plain, err := unpad(decrypted)
	if err != nil {
		return "", stderrors.NewDecryptionFailedError(err)
	}
	return string(plain), nil
}

func pad(data []byte) []byte {
	n := aes.BlockSize - len(data)%aes.BlockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

func unpad(data []byte) ([]byte, error) {
	n := int(data[len(data)-1])
	if n == 0 || n > aes.BlockSize || n > len(data) {
		return nil, errors.New("invalid padding")
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-n], nil
}
