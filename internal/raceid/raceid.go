// Package raceid generates sortable race identifiers: UUIDv7 encoded
// as 26 characters of Crockford base32, so IDs order by creation time
// and stay safe in file names and log fields.
package raceid

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// New returns a fresh race ID for the current time.
func New() string {
	return At(time.Now(), func(b []byte) {
		if _, err := rand.Read(b); err != nil {
			panic("raceid: read random bytes: " + err.Error())
		}
	})
}

// At builds a race ID for an explicit timestamp, with fill supplying
// the 10 random bytes. Tests use it for deterministic IDs.
func At(t time.Time, fill func([]byte)) string {
	var uuid [16]byte

	ms := t.UnixMilli()
	for i := range 6 {
		uuid[i] = byte(ms >> (40 - 8*i))
	}
	fill(uuid[6:])

	// UUIDv7: version nibble 7, variant bits 10.
	uuid[6] = uuid[6]&0x0f | 0x70
	uuid[8] = uuid[8]&0x3f | 0x80

	return encode(uuid)
}

// encode packs the 128 bits MSB-first into 26 base32 characters, the
// final character carrying two zero padding bits.
func encode(uuid [16]byte) string {
	var out [26]byte
	for i := range out {
		off := i * 5
		b, shift := off/8, off%8
		v := uint16(uuid[b]) << 8
		if b+1 < len(uuid) {
			v |= uint16(uuid[b+1])
		}
		out[i] = alphabet[v>>(11-shift)&0x1f]
	}
	return string(out[:])
}

// Validate checks that id is a well-formed race ID.
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("race ID must be 26 characters, got %d", len(id))
	}
	// The top five bits encode only the first character, so anything
	// above '7' would overflow 128 bits.
	if id[0] > '7' {
		return fmt.Errorf("race ID first character must be 0-7, got %c", id[0])
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}
