// Package orf turns ORF caller output into features on a genome.
package orf

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jjtimmons/orfanno/internal/genome"
)

var (
	// ErrParse is returned for an ORF record that doesn't decode.
	ErrParse = errors.New("malformed ORF record")

	// ErrUnknownContig is returned when an ORF references a contig that isn't in the genome.
	ErrUnknownContig = errors.New("ORF references an unknown contig")
)

// Map is ORF caller output: contig label to ORF records, in caller order.
type Map map[string][]string

// Record is a decoded "idx_start_end_strand" ORF string.
type Record struct {
	// ID is idx with its one character prefix removed
	ID int

	// Start and End are 1-based and inclusive
	Start int
	End   int

	Strand genome.Strand
}

// String encodes the record the way ORF callers emit it, with a ">" prefix.
func (r Record) String() string {
	return fmt.Sprintf(">%d_%d_%d_%s", r.ID, r.Start, r.End, r.Strand)
}

// ParseRecord decodes an "idx_start_end_strand" ORF string.
func ParseRecord(s string) (Record, error) {
	tokens := strings.Split(s, "_")
	if len(tokens) != 4 {
		return Record{}, fmt.Errorf("%w: %q has %d fields, want 4", ErrParse, s, len(tokens))
	}

	idx := tokens[0]
	if len(idx) < 2 {
		return Record{}, fmt.Errorf("%w: %q has an empty id", ErrParse, s)
	}
	id, err := strconv.Atoi(idx[1:])
	if err != nil {
		return Record{}, fmt.Errorf("%w: %q id %q is not an integer", ErrParse, s, idx[1:])
	}

	start, err := strconv.Atoi(tokens[1])
	if err != nil || start < 1 {
		return Record{}, fmt.Errorf("%w: %q start %q is not a positive integer", ErrParse, s, tokens[1])
	}

	end, err := strconv.Atoi(tokens[2])
	if err != nil || end < 1 {
		return Record{}, fmt.Errorf("%w: %q end %q is not a positive integer", ErrParse, s, tokens[2])
	}

	if start > end {
		return Record{}, fmt.Errorf("%w: %q start %d is past end %d", ErrParse, s, start, end)
	}

	var strand genome.Strand
	switch tokens[3] {
	case "+":
		strand = genome.Forward
	case "-":
		strand = genome.Reverse
	default:
		return Record{}, fmt.Errorf("%w: %q strand %q is not + or -", ErrParse, s, tokens[3])
	}

	return Record{ID: id, Start: start, End: end, Strand: strand}, nil
}

// Feature converts the record to a CDS feature with no qualifiers.
func (r Record) Feature() *genome.Feature {
	return &genome.Feature{
		ID:     r.ID,
		Start:  r.Start,
		End:    r.End,
		Strand: r.Strand,
		Type:   "CDS",
	}
}

// Load appends a feature per ORF record to its contig, keeping the caller's order.
// Any malformed record or unknown contig fails the whole load.
func Load(g *genome.Genome, orfs Map) error {
	labels := make([]string, 0, len(orfs))
	for label := range orfs {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		contig, ok := g.Contig(label)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownContig, label)
		}

		for _, s := range orfs[label] {
			r, err := ParseRecord(s)
			if err != nil {
				return fmt.Errorf("contig %s: %w", label, err)
			}
			contig.Features = append(contig.Features, r.Feature())
		}
	}

	return nil
}
