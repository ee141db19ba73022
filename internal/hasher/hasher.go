// Package hasher computes short xxHash64 digests used to compare pixel
// buffers across runs and to pin output files in run reports.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// Digest returns the xxHash64 of data as 16 lowercase hex chars.
func Digest(data []byte) string {
	return format(xxhash.Sum64(data))
}

// DigestReader streams r through xxHash64.
func DigestReader(r io.Reader) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return format(h.Sum64()), nil
}

// DigestFile hashes the file at path without loading it into memory.
func DigestFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return DigestReader(f)
}

func format(sum uint64) string {
	return hex.EncodeToString(binary.BigEndian.AppendUint64(nil, sum))
}
