package utils

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCiphertext = errors.New("invalid ciphertext")

const secretSeparator = "::"

// EncryptSecret encrypts data with AES-256-CBC. The key is the first 32
// bytes of authKey, NUL padded when shorter. The result is
// base64(base64(ciphertext) + "::" + iv).
func EncryptSecret(data, authKey string) (string, error) {
	if data == "" {
		return "", nil
	}

	block, err := aes.NewCipher(secretKey(authKey))
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	plaintext := pkcs7Pad([]byte(data), aes.BlockSize)
	ciphertext := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, plaintext)

	var payload bytes.Buffer
	payload.WriteString(base64.StdEncoding.EncodeToString(ciphertext))
	payload.WriteString(secretSeparator)
	payload.Write(iv)

	return base64.StdEncoding.EncodeToString(payload.Bytes()), nil
}

// DecryptSecret reverses EncryptSecret.
func DecryptSecret(data, authKey string) (string, error) {
	if data == "" {
		return "", nil
	}

	payload, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCiphertext, err)
	}

	encoded, iv, found := bytes.Cut(payload, []byte(secretSeparator))
	if !found || len(iv) != aes.BlockSize {
		return "", ErrInvalidCiphertext
	}

	ciphertext, err := base64.StdEncoding.DecodeString(string(encoded))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCiphertext, err)
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", ErrInvalidCiphertext
	}

	block, err := aes.NewCipher(secretKey(authKey))
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return "", err
	}

	return string(unpadded), nil
}

func secretKey(authKey string) []byte {
	key := make([]byte, 32)
	copy(key, authKey)
	return key
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize || padding > len(data) {
		return nil, ErrInvalidCiphertext
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, ErrInvalidCiphertext
		}
	}
	return data[:len(data)-padding], nil
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
