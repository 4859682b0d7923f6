package encrypt

import (
	"fmt"
	"io"
	"os"

	"filippo.io/age"

	"dbu-go/internal/dbu"
)

// AgeEncryptor seals the archive to an age X25519 recipient before it
// ships. This tool only encrypts; decryption happens wherever the archive
// is restored, with the matching identity.
type AgeEncryptor struct {
	recipient *age.X25519Recipient
}

var _ dbu.Encryptor = (*AgeEncryptor)(nil)

// NewAgeEncryptor parses the recipient's public key (the "age1..." form).
func NewAgeEncryptor(recipient string) (*AgeEncryptor, error) {
	r, err := age.ParseX25519Recipient(recipient)
	if err != nil {
		return nil, fmt.Errorf("parsing age recipient: %w", err)
	}
	return &AgeEncryptor{recipient: r}, nil
}

// Seal encrypts archivePath to a sibling file with an ".age" extension and
// returns the new path. The plaintext archive is left in place.
func (e *AgeEncryptor) Seal(archivePath string) (string, error) {
	in, err := os.Open(archivePath)
	if err != nil {
		return "", fmt.Errorf("opening archive: %w", err)
	}
	defer in.Close()

	outPath := archivePath + ".age"
	out, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("creating encrypted archive: %w", err)
	}

	w, err := age.Encrypt(out, e.recipient)
	if err != nil {
		out.Close()
		return "", fmt.Errorf("creating encrypted writer: %w", err)
	}

	if _, err := io.Copy(w, in); err != nil {
		out.Close()
		return "", fmt.Errorf("encrypting archive: %w", err)
	}

	if err := w.Close(); err != nil {
		out.Close()
		return "", fmt.Errorf("finalizing encryption: %w", err)
	}

	if err := out.Close(); err != nil {
		return "", fmt.Errorf("closing encrypted archive: %w", err)
	}

	return outPath, nil
}
