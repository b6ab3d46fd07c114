// Package cache implements the content-addressed build cache: a digest of
// the grammar text and the resolved token_replace map keys a serialized
// AutomatonSnapshot on disk, so repeated invocations against unchanged
// input skip the analysis pipeline entirely.
//
// This is a pure speed optimization, not incremental re-analysis: any change
// to the digested bytes produces a different key and a full rebuild, never a
// partial update of a prior result.
package cache

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/dekarrin/rezi"
	"golang.org/x/crypto/blake2b"

	"github.com/ThePerkinrex/grammar-gen/internal/emit"
)

// Cache is a directory of binary-encoded AutomatonSnapshot files, one per
// digest, with no expiry policy.
type Cache struct {
	Dir string
}

// New returns a Cache rooted at dir. The directory is created on first
// Store, not here.
func New(dir string) *Cache {
	return &Cache{Dir: dir}
}

// digestInput is the material that determines cache identity: the grammar
// text plus everything about the config that affects the automaton itself.
// Template text is deliberately excluded -- it affects rendering, not the
// grammar analysis, so changing a template should not force a rebuild.
type digestInput struct {
	GrammarBytes string
	TokenReplace map[string]string
}

// Digest computes the cache key for a grammar file's contents and a
// resolved token_replace map.
func Digest(grammarBytes []byte, tokenReplace map[string]string) (string, error) {
	canon, err := json.Marshal(digestInput{
		GrammarBytes: string(grammarBytes),
		TokenReplace: tokenReplace,
	})
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(canon)
	return hex.EncodeToString(sum[:]), nil
}

// Lookup returns the cached snapshot for digest, if present. A corrupt or
// unreadable entry is treated as a miss, never an error.
func (c *Cache) Lookup(digest string) (*emit.AutomatonSnapshot, bool) {
	data, err := os.ReadFile(c.path(digest))
	if err != nil {
		return nil, false
	}
	var snap emit.AutomatonSnapshot
	n, err := rezi.DecBinary(data, &snap)
	if err != nil || n != len(data) {
		return nil, false
	}
	return &snap, true
}

// Store persists snap under digest. A write failure is reported to the
// caller as an error but is never fatal to the run that produced snap: the
// output has already been rendered correctly regardless of whether the
// cache write succeeds.
func (c *Cache) Store(digest string, snap *emit.AutomatonSnapshot) error {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return err
	}
	data := rezi.EncBinary(snap)
	return os.WriteFile(c.path(digest), data, 0o644)
}

func (c *Cache) path(digest string) string {
	return filepath.Join(c.Dir, digest+".ggencache")
}
