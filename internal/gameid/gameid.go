// Package gameid generates hand identifiers: a UUIDv7 rendered as 26
// lowercase Crockford base32 characters, so ids sort by creation time.
package gameid

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Crockford's base32, no i, l, o or u
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded id
const Length = 26

// Generator creates ids from a configurable random source
type Generator struct {
	rand io.Reader
}

// NewGenerator returns a generator reading randomness from r.
// A nil reader uses crypto/rand.
func NewGenerator(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// Generate creates a new id using crypto/rand
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new id. It panics if the random source fails, which
// only happens with a broken or exhausted reader.
func (g *Generator) Generate() string {
	var (
		id  uuid.UUID
		err error
	)
	if g.rand == nil {
		id, err = uuid.NewV7()
	} else {
		id, err = uuid.NewV7FromReader(g.rand)
	}
	if err != nil {
		panic("gameid: failed to generate uuid: " + err.Error())
	}
	return Encode(id)
}

// Encode renders a uuid as 26 base32 characters. The 128 bits are left
// padded with two zero bits, so the first character is always 0-7.
func Encode(id uuid.UUID) string {
	var out [Length]byte
	// Walk from the least significant 5 bits upwards
	for i := Length - 1; i >= 0; i-- {
		bit := (Length - 1 - i) * 5
		out[i] = alphabet[chunk(id, bit)]
	}
	return string(out[:])
}

// chunk extracts 5 bits starting at bit offset from the least significant end
func chunk(id uuid.UUID, offset int) byte {
	var v uint16
	for b := 0; b < 5; b++ {
		pos := offset + b
		if pos >= 128 {
			break
		}
		byteIdx := 15 - pos/8
		if id[byteIdx]>>(pos%8)&1 == 1 {
			v |= 1 << b
		}
	}
	return byte(v)
}

// Validate checks that id looks like an encoded id
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}
