package dag

import (
	"crypto/sha256"
	"encoding/hex"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/format"
)

// hashPrefixLen is the number of hex characters kept from the SHA-256
// digest (spec §4.4: "a content hash (order-independent over the node's
// resolved spec)").
const hashPrefixLen = 16

var cueCtx = cuecontext.New()

// ContentHash returns the content hash of spec: spec is encoded through a
// CUE context (canonicalizing map-key ordering and numeric formatting) and
// formatted back to source, then SHA-256'd. This is the same
// Encode-then-format round-trip the teacher uses to normalize values before
// comparison (internal/cue/values.go), so two specs that differ only in key
// order or float formatting hash identically.
func ContentHash(spec map[string]any) (string, error) {
	v := cueCtx.Encode(spec)
	if err := v.Err(); err != nil {
		return "", err
	}
	node := v.Syntax(cue.Concrete(true), cue.ResolveReferences(true))
	src, err := format.Node(node)
	if err != nil {
		return "", err
	}
	digest := sha256.Sum256(src)
	return hex.EncodeToString(digest[:])[:hashPrefixLen], nil
}
