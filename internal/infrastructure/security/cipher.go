package security

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/erp/addrconfirm/internal/domain/businesspartner"
	"github.com/erp/addrconfirm/internal/domain/shared"
)

// pkcs1v15Overhead is the minimum padding RSA PKCS#1 v1.5 adds to a
// plaintext block. The serialized token must fit in a single block.
const pkcs1v15Overhead = 11

// TokenCipher seals confirmation tokens into opaque, URL-safe strings
// and opens them again. Tokens are sealed with the public key and
// opened with the private key; since neither key is ever published the
// sealed string works as a capability: only this service can mint one
// that opens cleanly.
type TokenCipher struct {
	keys *KeyPair
}

// NewTokenCipher creates a cipher over the given key pair.
func NewTokenCipher(keys *KeyPair) *TokenCipher {
	return &TokenCipher{keys: keys}
}

// Seal serializes the token and encrypts it into a base64url string
// suitable for use as a query parameter. Any failure is a SecurityError.
func (c *TokenCipher) Seal(token businesspartner.ConfirmationToken) (string, error) {
	payload, err := json.Marshal(token)
	if err != nil {
		return "", shared.NewSecurityError("serializing confirmation token", err)
	}

	if max := c.keys.Public.Size() - pkcs1v15Overhead; len(payload) > max {
		return "", shared.NewSecurityError(
			fmt.Sprintf("token payload of %d bytes exceeds the %d byte limit of a single RSA block", len(payload), max), nil)
	}

	ciphertext, err := rsa.EncryptPKCS1v15(rand.Reader, c.keys.Public, payload)
	if err != nil {
		return "", shared.NewSecurityError("encrypting confirmation token", err)
	}
	return base64.URLEncoding.EncodeToString(ciphertext), nil
}

// Open decodes and decrypts a sealed token. Tampered, truncated or
// foreign input fails with a SecurityError; expiry is not checked here.
func (c *TokenCipher) Open(sealed string) (businesspartner.ConfirmationToken, error) {
	var token businesspartner.ConfirmationToken

	ciphertext, err := base64.URLEncoding.DecodeString(sealed)
	if err != nil {
		return token, shared.NewSecurityError("decoding confirmation token", err)
	}

	payload, err := rsa.DecryptPKCS1v15(nil, c.keys.Private, ciphertext)
	if err != nil {
		return token, shared.NewSecurityError("decrypting confirmation token", err)
	}

	if err := json.Unmarshal(payload, &token); err != nil {
		return token, shared.NewSecurityError("deserializing confirmation token", err)
	}
	return token, nil
}
