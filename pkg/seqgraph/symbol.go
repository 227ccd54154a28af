package seqgraph

import (
	"slices"
	"strings"

	errs "github.com/matzehuels/graphalign/pkg/errors"
)

// Symbol is an index into an [Alphabet].
type Symbol uint8

// Gap marks an alignment column where one side consumed nothing.
const Gap Symbol = 0xFF

// GapLetter is the printable form of [Gap].
const GapLetter = '-'

// Alphabet is a fixed finite symbol set with a printable letter per symbol.
// Letters are matched case-insensitively.
type Alphabet struct {
	letters string
	index   [256]Symbol
}

// DNA is the nucleotide alphabet A, C, G, T mapped to symbols 0..3.
var DNA = MustAlphabet("ACGT")

// NewAlphabet builds an alphabet from its letters, symbol i being letters[i].
// Letters must be unique ignoring case, and may not include the gap letter.
func NewAlphabet(letters string) (*Alphabet, error) {
	if letters == "" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "alphabet must not be empty")
	}
	if len(letters) >= int(Gap) {
		return nil, errs.New(errs.ErrCodeInvalidInput, "alphabet of %d letters exceeds %d", len(letters), int(Gap)-1)
	}
	a := &Alphabet{letters: strings.ToUpper(letters)}
	for i := range a.index {
		a.index[i] = Gap
	}
	for i := 0; i < len(a.letters); i++ {
		c := a.letters[i]
		if c == GapLetter {
			return nil, errs.New(errs.ErrCodeInvalidInput, "alphabet must not contain %q", GapLetter)
		}
		lower := strings.ToLower(string(c))[0]
		if a.index[c] != Gap {
			return nil, errs.New(errs.ErrCodeInvalidInput, "duplicate letter %q in alphabet", c)
		}
		a.index[c] = Symbol(i)
		a.index[lower] = Symbol(i)
	}
	return a, nil
}

// MustAlphabet is like [NewAlphabet] but panics on error.
func MustAlphabet(letters string) *Alphabet {
	a, err := NewAlphabet(letters)
	if err != nil {
		panic(err)
	}
	return a
}

// Size returns the number of symbols.
func (a *Alphabet) Size() int { return len(a.letters) }

// Letters returns the upper-case letters in symbol order.
func (a *Alphabet) Letters() string { return a.letters }

// Letter returns the printable letter for s. Gap renders as '-', symbols
// outside the alphabet as '?'.
func (a *Alphabet) Letter(s Symbol) byte {
	if s == Gap {
		return GapLetter
	}
	if int(s) >= len(a.letters) {
		return '?'
	}
	return a.letters[s]
}

// Index returns the symbol for letter c.
func (a *Alphabet) Index(c byte) (Symbol, bool) {
	s := a.index[c]
	return s, s != Gap
}

// Encode converts text to a sequence. Unknown letters are invalid input.
func (a *Alphabet) Encode(text string) (Sequence, error) {
	seq := make(Sequence, len(text))
	for i := 0; i < len(text); i++ {
		s, ok := a.Index(text[i])
		if !ok {
			return nil, errs.New(errs.ErrCodeInvalidInput, "letter %q at index %d not in alphabet %s", text[i], i, a.letters)
		}
		seq[i] = s
	}
	return seq, nil
}

// EncodeAligned is like [Alphabet.Encode] but maps '-' to [Gap].
func (a *Alphabet) EncodeAligned(text string) (Sequence, error) {
	seq := make(Sequence, len(text))
	for i := 0; i < len(text); i++ {
		if text[i] == GapLetter {
			seq[i] = Gap
			continue
		}
		s, ok := a.Index(text[i])
		if !ok {
			return nil, errs.New(errs.ErrCodeInvalidInput, "letter %q at index %d not in alphabet %s", text[i], i, a.letters)
		}
		seq[i] = s
	}
	return seq, nil
}

// Decode renders seq as letters.
func (a *Alphabet) Decode(seq Sequence) string {
	var sb strings.Builder
	sb.Grow(len(seq))
	for _, s := range seq {
		sb.WriteByte(a.Letter(s))
	}
	return sb.String()
}

// Validate reports the first symbol of seq outside the alphabet.
func (a *Alphabet) Validate(seq Sequence) error {
	return errs.ValidateSymbols(seq, a.Size())
}

// Sequence is an ordered run of symbols.
type Sequence []Symbol

// String renders the sequence with the [DNA] alphabet.
func (s Sequence) String() string { return DNA.Decode(s) }

// Equal reports whether both sequences hold the same symbols.
func (s Sequence) Equal(other Sequence) bool { return slices.Equal(s, other) }

// Clone returns an independent copy.
func (s Sequence) Clone() Sequence { return slices.Clone(s) }

// MustEncode encodes DNA text and panics on unknown letters.
// It is intended for tests and examples.
func MustEncode(text string) Sequence {
	seq, err := DNA.Encode(text)
	if err != nil {
		panic(err)
	}
	return seq
}
