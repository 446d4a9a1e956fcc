// Package genome holds the contigs of one annotation run and the
// features discovered on them. It's the state every later stage updates.
package genome

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// MoleculeType is stamped on every contig.
const MoleculeType = "DNA"

// ErrFormat is returned when the input isn't parseable as FASTA.
var ErrFormat = errors.New("input is not valid FASTA")

// Strand is the reading direction of a feature relative to its contig.
type Strand int

const (
	// Forward is the "+" strand
	Forward Strand = 1

	// Reverse is the "-" strand
	Reverse Strand = -1
)

// String returns the GenBank style strand symbol.
func (s Strand) String() string {
	if s == Reverse {
		return "-"
	}
	return "+"
}

// Qualifiers are the annotation fields of a feature, in the order they're written.
type Qualifiers struct {
	Gene        string
	Product     string
	LocusTag    string
	Translation string
	ProteinID   string
}

// Qualifier is a single named annotation field.
type Qualifier struct {
	Key   string
	Value string
}

// Pairs returns the non-empty qualifiers in output order.
func (q Qualifiers) Pairs() []Qualifier {
	all := []Qualifier{
		{"gene", q.Gene},
		{"product", q.Product},
		{"locus_tag", q.LocusTag},
		{"translation", q.Translation},
		{"protein_id", q.ProteinID},
	}

	pairs := make([]Qualifier, 0, len(all))
	for _, p := range all {
		if p.Value != "" {
			pairs = append(pairs, p)
		}
	}
	return pairs
}

// Feature is a predicted coding region on a contig.
type Feature struct {
	// ID is assigned by the ORF caller and is unique within the genome
	ID int

	// Start is the 1-based, inclusive first base
	Start int

	// End is the 1-based, inclusive last base
	End int

	Strand Strand

	// Type is the GenBank feature key
	Type string

	Qualifiers Qualifiers
}

// Len is the number of bases the feature spans.
func (f *Feature) Len() int {
	return f.End - f.Start + 1
}

// Contig is a named nucleotide sequence and the features found on it.
type Contig struct {
	// Label is the FASTA record's id. ORF callers key their output by it
	Label string

	// ID is the input file's stem, shared by every contig of a run
	ID string

	// Seq is the upper-case nucleotide sequence
	Seq string

	MoleculeType string

	// Date is when the run loaded the contig
	Date time.Time

	// Features in discovery order
	Features []*Feature
}

// Genome is the set of contigs from one input file, in file order.
type Genome struct {
	Contigs []*Contig

	byLabel map[string]*Contig
}

// New builds a genome from contigs. Labels must be unique.
func New(contigs ...*Contig) (*Genome, error) {
	g := &Genome{byLabel: make(map[string]*Contig, len(contigs))}
	for _, c := range contigs {
		if _, dup := g.byLabel[c.Label]; dup {
			return nil, fmt.Errorf("%w: duplicate record %q", ErrFormat, c.Label)
		}
		g.byLabel[c.Label] = c
		g.Contigs = append(g.Contigs, c)
	}
	return g, nil
}

// Contig returns the contig with the FASTA label passed.
func (g *Genome) Contig(label string) (*Contig, bool) {
	c, ok := g.byLabel[label]
	return c, ok
}

// Features returns the total feature count across contigs.
func (g *Genome) Features() int {
	n := 0
	for _, c := range g.Contigs {
		n += len(c.Features)
	}
	return n
}

// Load reads a FASTA file into a Genome. Every contig gets the file's stem as
// its ID, the DNA molecule type, and the date passed.
func Load(path string, date time.Time) (*Genome, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	if !hasHeader(dat) {
		return nil, fmt.Errorf("%w: %s has no '>' header line", ErrFormat, path)
	}

	id := Stem(path)
	r := fasta.NewReader(bytes.NewReader(dat), linear.NewSeq("", nil, alphabet.DNAredundant))
	sc := seqio.NewScanner(r)

	var contigs []*Contig
	for sc.Next() {
		s, ok := sc.Seq().(*linear.Seq)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected record type %T", ErrFormat, sc.Seq())
		}

		contigs = append(contigs, &Contig{
			Label:        s.ID,
			ID:           id,
			Seq:          letters(s.Seq),
			MoleculeType: MoleculeType,
			Date:         date,
		})
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormat, path, err)
	}

	if len(contigs) < 1 {
		return nil, fmt.Errorf("%w: no records in %s", ErrFormat, path)
	}

	return New(contigs...)
}

// Stem is the file's base name without its final extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// hasHeader reports whether the first non-blank line starts a FASTA record.
func hasHeader(dat []byte) bool {
	for _, line := range bytes.Split(dat, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == ';' {
			continue
		}
		return line[0] == '>'
	}
	return false
}

// letters copies a biogo letter slice into an upper-case string, dropping whitespace.
func letters(ls alphabet.Letters) string {
	var sb strings.Builder
	sb.Grow(len(ls))
	for _, l := range ls {
		b := byte(l)
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		if b >= 'a' && b <= 'z' {
			b -= 'a' - 'A'
		}
		sb.WriteByte(b)
	}
	return sb.String()
}
