package businesspartner

import (
	"crypto/md5" //nolint:gosec // change detection only, not a security boundary
	"encoding/base64"
)

// Checksum returns a URL-safe digest of the snapshot's canonical form.
// It detects incidental change between confirmation runs; it is not meant
// to resist deliberate forgery.
func Checksum(snapshot AddressSnapshot) string {
	sum := md5.Sum([]byte(snapshot.Canonical())) //nolint:gosec
	return base64.URLEncoding.EncodeToString(sum[:])
}
