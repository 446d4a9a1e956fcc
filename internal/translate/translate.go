// Package translate converts features to protein sequences with translation table 11.
package translate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jjtimmons/orfanno/internal/genome"
)

// ErrTranslation is returned for a feature span that can't be translated.
var ErrTranslation = errors.New("feature is not translatable")

// Policy decides what happens to spans whose length isn't a multiple of three.
type Policy int

const (
	// Truncate drops the trailing partial codon
	Truncate Policy = iota

	// Reject fails the translation
	Reject
)

// ParsePolicy maps a settings value ("truncate" or "reject") to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "truncate", "":
		return Truncate, nil
	case "reject":
		return Reject, nil
	default:
		return Truncate, fmt.Errorf("unknown partial codon policy %q", s)
	}
}

// Translator translates features. The zero value truncates partial codons and
// reads every codon with its plain table 11 meaning.
type Translator struct {
	Policy Policy

	// InitiatorMet translates an alternative start codon in the first position as M
	InitiatorMet bool
}

// Translate returns the protein of the feature, reverse complemented first if
// it's on the reverse strand, with one trailing stop removed.
func (t Translator) Translate(f *genome.Feature, c *genome.Contig) (string, error) {
	if f.Start < 1 || f.End > len(c.Seq) || f.Start > f.End {
		return "", fmt.Errorf(
			"%w: feature %d span %d..%d is outside contig %s (%d bp)",
			ErrTranslation, f.ID, f.Start, f.End, c.Label, len(c.Seq),
		)
	}

	nt := strings.ToUpper(c.Seq[f.Start-1 : f.End])
	if f.Strand == genome.Reverse {
		nt = RevComp(nt)
	}

	if rem := len(nt) % 3; rem != 0 {
		if t.Policy == Reject {
			return "", fmt.Errorf(
				"%w: feature %d spans %d bp, not a multiple of 3",
				ErrTranslation, f.ID, len(nt),
			)
		}
		nt = nt[:len(nt)-rem]
	}

	if len(nt) == 0 {
		return "", fmt.Errorf("%w: feature %d spans less than one codon", ErrTranslation, f.ID)
	}

	return t.protein(nt), nil
}

// protein translates whole codons and strips a single trailing stop.
func (t Translator) protein(nt string) string {
	var sb strings.Builder
	sb.Grow(len(nt) / 3)
	for i := 0; i+3 <= len(nt); i += 3 {
		codon := nt[i : i+3]
		if i == 0 && t.InitiatorMet && starts11[codon] {
			sb.WriteByte('M')
			continue
		}
		sb.WriteByte(residue(codon))
	}

	return strings.TrimSuffix(sb.String(), "*")
}
