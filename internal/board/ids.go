package board

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

const pendingPrefix = "pending-"

// NewPendingID returns pending-<suffix> where suffix is 8 chars of base32
// (lowercase, no padding). Pending ids exist only between an optimistic
// insert and the server acknowledgement that carries the real id.
func NewPendingID() string {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms; keep the op total.
		return pendingPrefix + "00000000"
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	return pendingPrefix + strings.ToLower(enc.EncodeToString(b[:]))
}

// IsPending reports whether id is a client-generated provisional id that has
// not yet been replaced by a server id.
func IsPending(id string) bool {
	return strings.HasPrefix(id, pendingPrefix) && len(id) > len(pendingPrefix)
}
