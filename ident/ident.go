// Package ident derives content-addressed names.
//
// A definition describes itself by writing its canonical fields into a
// Hasher. Fields are tagged and length-prefixed so that different field
// sequences never produce the same byte stream. The scheme is versioned:
// changing how any definition fingerprints itself must bump SchemeVersion so
// that stale names are never reused for different output.
package ident

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// SchemeVersion is written first into every digest.
const SchemeVersion = 1

// Hashable is implemented by every definition with a content-addressed name.
type Hashable interface {
	Fingerprint(h *Hasher)
}

// Hasher accumulates canonical fields of a definition.
type Hasher struct {
	d   *xxhash.Digest
	buf [9]byte
}

// NewHasher returns hasher primed with the scheme version.
func NewHasher() *Hasher {
	h := &Hasher{d: xxhash.New()}
	h.Int(SchemeVersion)
	return h
}

func (h *Hasher) header(kind byte, n uint64) {
	h.buf[0] = kind
	binary.LittleEndian.PutUint64(h.buf[1:], n)
	_, _ = h.d.Write(h.buf[:])
}

// Tag marks the start of a named section (definition kind, field name).
func (h *Hasher) Tag(tag string) *Hasher {
	h.header('t', uint64(len(tag)))
	_, _ = h.d.WriteString(tag)
	return h
}

// String writes a string field.
func (h *Hasher) String(s string) *Hasher {
	h.header('s', uint64(len(s)))
	_, _ = h.d.WriteString(s)
	return h
}

// Strings writes a list of strings, order matters.
func (h *Hasher) Strings(list []string) *Hasher {
	h.header('l', uint64(len(list)))
	for _, s := range list {
		h.String(s)
	}
	return h
}

// Int writes an integer field.
func (h *Hasher) Int(v int64) *Hasher {
	h.header('i', uint64(v))
	return h
}

// Float writes a floating point field. Negative zero is folded into zero.
func (h *Hasher) Float(v float64) *Hasher {
	if v == 0 {
		v = 0
	}
	h.header('f', math.Float64bits(v))
	return h
}

// Bool writes a boolean field.
func (h *Hasher) Bool(v bool) *Hasher {
	var n uint64
	if v {
		n = 1
	}
	h.header('b', n)
	return h
}

// Value writes a nested definition.
func (h *Hasher) Value(v Hashable) *Hasher {
	h.header('v', 0)
	if v != nil {
		v.Fingerprint(h)
	}
	h.header('e', 0)
	return h
}

// Sum64 returns the digest of everything written so far.
func (h *Hasher) Sum64() uint64 {
	return h.d.Sum64()
}

// Sum returns digest of a single definition.
func Sum(v Hashable) uint64 {
	return NewHasher().Value(v).Sum64()
}

// Name returns "prefix-<digest>" where digest is base36 encoded.
func Name(prefix string, v Hashable) string {
	return prefix + "-" + strconv.FormatUint(Sum(v), 36)
}
