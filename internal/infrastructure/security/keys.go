package security

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	"github.com/erp/addrconfirm/internal/domain/shared"
)

// KeyPair holds the RSA keys the token cipher works with. Both halves
// stay on the server; the public key never leaves the process.
type KeyPair struct {
	Private *rsa.PrivateKey
	Public  *rsa.PublicKey
}

// LoadKeyPair reads a PEM-encoded RSA private key from privatePath and
// derives the public key from it. Any failure is a SecurityError.
func LoadKeyPair(privatePath string) (*KeyPair, error) {
	raw, err := os.ReadFile(privatePath)
	if err != nil {
		return nil, shared.NewSecurityError(fmt.Sprintf("reading private key %s", privatePath), err)
	}
	return ParseKeyPair(raw)
}

// ParseKeyPair parses a PEM-encoded RSA private key (PKCS#1 or PKCS#8)
// and derives the matching public key.
func ParseKeyPair(pemBytes []byte) (*KeyPair, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, shared.NewSecurityError("no PEM block found in private key material", nil)
	}

	priv, err := parsePrivateKey(block.Bytes)
	if err != nil {
		return nil, shared.NewSecurityError("parsing RSA private key", err)
	}

	return &KeyPair{Private: priv, Public: &priv.PublicKey}, nil
}

func parsePrivateKey(der []byte) (*rsa.PrivateKey, error) {
	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return key, nil
	}

	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, err
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is %T, want *rsa.PrivateKey", key)
	}
	return rsaKey, nil
}
