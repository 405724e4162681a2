package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintKnownVector(t *testing.T) {
	got := Fingerprint("youtube.com", "https://youtube.com/watch?v=abc123", "https://rr3.googlevideo.com/videoplayback")
	assert.Equal(t, "a050609d5a0bf1dd0ed18a2a2b5a5e36cc1c9e54287801fd6639805aedacfd4c", got)
}

func TestFingerprintDeterministic(t *testing.T) {
	a := Fingerprint("example.com", "https://example.com/v/1", "https://cdn.example.com/1.mp4")
	b := Fingerprint("example.com", "https://example.com/v/1", "https://cdn.example.com/1.mp4")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64, "hex digest of sha256 is 64 chars")
}

func TestFingerprintSensitiveToEveryComponent(t *testing.T) {
	base := Fingerprint("example.com", "https://example.com/v/1", "https://cdn.example.com/1.mp4")

	assert.NotEqual(t, base, Fingerprint("other.com", "https://example.com/v/1", "https://cdn.example.com/1.mp4"))
	assert.NotEqual(t, base, Fingerprint("example.com", "https://example.com/v/2", "https://cdn.example.com/1.mp4"))
	assert.NotEqual(t, base, Fingerprint("example.com", "https://example.com/v/1", "https://cdn.example.com/2.mp4"))
}
