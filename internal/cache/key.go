// Package cache memoizes whole pipeline results keyed by input identity.
package cache

import (
	"cmp"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"slices"

	"MarketLens/internal/collector"
)

// Key derives the memo key for a file set: a SHA-256 over every file's name
// and content, in name order, followed by params. Any change to a file, to
// the set of files or to params yields a different key.
func Key(files []collector.SourceFile, params string) (string, error) {
	sorted := slices.Clone(files)
	slices.SortFunc(sorted, func(a, b collector.SourceFile) int { return cmp.Compare(a.Name, b.Name) })

	h := sha256.New()
	for _, f := range sorted {
		writeField(h, []byte(f.Name))
		if err := hashContent(h, f); err != nil {
			return "", err
		}
	}
	writeField(h, []byte(params))
	return hex.EncodeToString(h.Sum(nil)), nil
}

func hashContent(h hash.Hash, f collector.SourceFile) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("cache key: open %s: %w", f.Name, err)
	}
	defer rc.Close()
	body, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("cache key: read %s: %w", f.Name, err)
	}
	writeField(h, body)
	return nil
}

// writeField length-prefixes b so adjacent fields cannot run together.
func writeField(h hash.Hash, b []byte) {
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(b)))
	h.Write(n[:])
	h.Write(b)
}
