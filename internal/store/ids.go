package store

import (
	"crypto/rand"
	"encoding/base32"
	"strings"

	"github.com/google/uuid"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32 (lowercase, no padding).
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

// NewNodeID mints a node id. Ids are minted on the client so queued writes can be
// acknowledged before they reach the database.
func NewNodeID() (string, error) {
	return newRandomID("node")
}

func newMapID() string {
	return uuid.NewString()
}

func newEventID() string {
	return uuid.NewString()
}
