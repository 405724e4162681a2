package content

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint derives the stable content identity for a video from its
// locational triple. The digest must byte-match the one computed by the
// browser extension (SHA-256 over "domain|pageUrl|videoSrc"), otherwise
// cache lookups silently miss. No platform-specific video ID is involved so
// the scheme works on arbitrary video-hosting pages.
func Fingerprint(domain, pageURL, videoSrc string) string {
	composite := strings.Join([]string{domain, pageURL, videoSrc}, "|")
	sum := sha256.Sum256([]byte(composite))
	return hex.EncodeToString(sum[:])
}
