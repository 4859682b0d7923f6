package encrypt

import (
	"fmt"

	"dbu-go/internal/config"
	"dbu-go/internal/dbu"
)

// NewEncryptorFromConfig creates an Encryptor based on the encryption
// config. No recipient means no encryption.
func NewEncryptorFromConfig(cfg config.EncryptionConfig) (dbu.Encryptor, error) {
	if cfg.Recipient == "" {
		return NopEncryptor{}, nil
	}
	enc, err := NewAgeEncryptor(cfg.Recipient)
	if err != nil {
		return nil, fmt.Errorf("creating age encryptor: %w", err)
	}
	return enc, nil
}
