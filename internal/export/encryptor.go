package export

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
)

// Encryptor turns an export payload into its on-disk form.
type Encryptor interface {
	Encrypt(plaintext []byte) ([]byte, error)
}

// PGPEncryptor encrypts to the first key of an armored public keyring.
type PGPEncryptor struct {
	entity *openpgp.Entity
	mu     sync.Mutex
}

// NewPGPEncryptor 读取 ASCII armored 公钥
func NewPGPEncryptor(publicKeyPath string) (*PGPEncryptor, error) {
	pubKeyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read public key file: %w", err)
	}

	entities, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(pubKeyData))
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	if len(entities) == 0 {
		return nil, fmt.Errorf("no public key found in %s", publicKeyPath)
	}

	return &PGPEncryptor{entity: entities[0]}, nil
}

// Encrypt returns an armored "PGP MESSAGE" block.
func (e *PGPEncryptor) Encrypt(plaintext []byte) ([]byte, error) {
	var buf bytes.Buffer

	e.mu.Lock()
	defer e.mu.Unlock()

	armorWriter, err := armor.Encode(&buf, "PGP MESSAGE", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to init armor encoder: %w", err)
	}

	writer, err := openpgp.Encrypt(armorWriter, []*openpgp.Entity{e.entity}, nil, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt: %w", err)
	}

	if _, err := writer.Write(plaintext); err != nil {
		return nil, fmt.Errorf("failed to write encrypted data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close encrypt writer: %w", err)
	}

	if err := armorWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to close armor encoder: %w", err)
	}

	return buf.Bytes(), nil
}
