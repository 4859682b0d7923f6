package encrypt

import "dbu-go/internal/dbu"

// NopEncryptor passes the archive through unchanged. Used when no
// recipient is configured.
type NopEncryptor struct{}

var _ dbu.Encryptor = (*NopEncryptor)(nil)

// Seal returns archivePath as-is.
func (NopEncryptor) Seal(archivePath string) (string, error) {
	return archivePath, nil
}
