package encrypt

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"filippo.io/age"

	"dbu-go/internal/config"
)

func TestAgeEncryptor_Seal(t *testing.T) {
	t.Run("sealed file decrypts back to the original", func(t *testing.T) {
		identity, err := age.GenerateX25519Identity()
		if err != nil {
			t.Fatal(err)
		}

		dir := t.TempDir()
		archivePath := filepath.Join(dir, "2024-06-01.zip")
		plaintext := []byte("pretend zip bytes")
		if err := os.WriteFile(archivePath, plaintext, 0644); err != nil {
			t.Fatal(err)
		}

		enc, err := NewAgeEncryptor(identity.Recipient().String())
		if err != nil {
			t.Fatalf("NewAgeEncryptor() error = %v", err)
		}

		sealedPath, err := enc.Seal(archivePath)
		if err != nil {
			t.Fatalf("Seal() error = %v", err)
		}
		if sealedPath != archivePath+".age" {
			t.Errorf("sealed path = %q, want %q", sealedPath, archivePath+".age")
		}

		sealed, err := os.Open(sealedPath)
		if err != nil {
			t.Fatal(err)
		}
		defer sealed.Close()

		dec, err := age.Decrypt(sealed, identity)
		if err != nil {
			t.Fatalf("Decrypt() error = %v", err)
		}
		got, err := io.ReadAll(dec)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, plaintext) {
			t.Errorf("decrypted = %q, want %q", got, plaintext)
		}
	})

	t.Run("missing archive is an error", func(t *testing.T) {
		identity, err := age.GenerateX25519Identity()
		if err != nil {
			t.Fatal(err)
		}
		enc, err := NewAgeEncryptor(identity.Recipient().String())
		if err != nil {
			t.Fatal(err)
		}

		if _, err := enc.Seal(filepath.Join(t.TempDir(), "absent.zip")); err == nil {
			t.Error("Seal() error = nil, want failure for missing archive")
		}
	})
}

func TestNewAgeEncryptor_InvalidRecipient(t *testing.T) {
	if _, err := NewAgeEncryptor("not-an-age-key"); err == nil {
		t.Error("NewAgeEncryptor() error = nil, want parse failure")
	}
}

func TestNopEncryptor(t *testing.T) {
	path, err := NopEncryptor{}.Seal("/backups/2024-06-01.zip")
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	if path != "/backups/2024-06-01.zip" {
		t.Errorf("Seal() = %q, want the input path unchanged", path)
	}
}

func TestNewEncryptorFromConfig(t *testing.T) {
	t.Run("no recipient means pass-through", func(t *testing.T) {
		enc, err := NewEncryptorFromConfig(config.EncryptionConfig{})
		if err != nil {
			t.Fatalf("NewEncryptorFromConfig() error = %v", err)
		}
		if _, ok := enc.(NopEncryptor); !ok {
			t.Errorf("encryptor = %T, want NopEncryptor", enc)
		}
	})

	t.Run("recipient selects age", func(t *testing.T) {
		identity, err := age.GenerateX25519Identity()
		if err != nil {
			t.Fatal(err)
		}
		enc, err := NewEncryptorFromConfig(config.EncryptionConfig{Recipient: identity.Recipient().String()})
		if err != nil {
			t.Fatalf("NewEncryptorFromConfig() error = %v", err)
		}
		if _, ok := enc.(*AgeEncryptor); !ok {
			t.Errorf("encryptor = %T, want *AgeEncryptor", enc)
		}
	})

	t.Run("bad recipient fails", func(t *testing.T) {
		if _, err := NewEncryptorFromConfig(config.EncryptionConfig{Recipient: "garbage"}); err == nil {
			t.Error("NewEncryptorFromConfig() error = nil, want parse failure")
		}
	})
}
