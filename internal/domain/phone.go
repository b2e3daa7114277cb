package domain

import (
	"fmt"
	"strings"
)

// PhoneID is a normalized phone number: digits, optionally prefixed with '+'
type PhoneID string

func (id PhoneID) String() string { return string(id) }

// NormalizePhone strips formatting characters and validates the remaining number.
// "+1 (555) 010-2030" becomes "+15550102030".
func NormalizePhone(raw string) (PhoneID, error) {
	s := strings.TrimSpace(raw)
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
			// formatting
		default:
			return "", fmt.Errorf("%w: %q", ErrInvalidPhone, raw)
		}
	}
	out := b.String()
	if out == "" || out == "+" {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, raw)
	}
	return PhoneID(out), nil
}

// Phone is a graph node
type Phone struct {
	ID         PhoneID
	Alias      string
	ColorIndex int
}

// DisplayLabel returns "alias\nnumber" when an alias is set, the number otherwise
func (p Phone) DisplayLabel() string {
	if p.Alias == "" {
		return string(p.ID)
	}
	return p.Alias + "\n" + string(p.ID)
}

// PairKey identifies an unordered pair of distinct phones. A is always less than B.
type PairKey struct {
	A PhoneID
	B PhoneID
}

// NewPairKey canonicalizes two phones into a pair key
func NewPairKey(a, b PhoneID) (PairKey, error) {
	if a == b {
		return PairKey{}, &SelfLoopError{Phone: a}
	}
	if b < a {
		a, b = b, a
	}
	return PairKey{A: a, B: b}, nil
}

func (k PairKey) String() string {
	return string(k.A) + "|" + string(k.B)
}

// Other returns the endpoint opposite to id
func (k PairKey) Other(id PhoneID) PhoneID {
	if k.A == id {
		return k.B
	}
	return k.A
}

// Has reports whether id is one of the endpoints
func (k PairKey) Has(id PhoneID) bool {
	return k.A == id || k.B == id
}

// ParsePairKey parses the "A|B" form produced by PairKey.String
func ParsePairKey(s string) (PairKey, error) {
	left, right, ok := strings.Cut(s, "|")
	if !ok {
		return PairKey{}, fmt.Errorf("invalid pair key %q: missing separator", s)
	}
	a, err := NormalizePhone(left)
	if err != nil {
		return PairKey{}, fmt.Errorf("invalid pair key %q: %w", s, err)
	}
	b, err := NormalizePhone(right)
	if err != nil {
		return PairKey{}, fmt.Errorf("invalid pair key %q: %w", s, err)
	}
	return NewPairKey(a, b)
}
