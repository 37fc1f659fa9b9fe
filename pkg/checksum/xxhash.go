package checksum

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// FileDigest returns the hex-encoded xxhash digest of a file's contents.
// Reports carry it so a re-verification of an unchanged file can be
// recognized without re-reading it by eye.
func FileDigest(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("failed to hash file %s: %w", filePath, err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Digest returns the hex-encoded xxhash digest of a byte slice.
func Digest(data []byte) string {
	digest := xxhash.New()
	digest.Write(data)

	return hex.EncodeToString(digest.Sum(nil))
}
