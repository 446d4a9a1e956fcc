// Package orfcall wraps the external ORF callers. Both report ORFs as
// "idx_start_end_strand" records keyed by contig label, with ids unique
// across the whole input file.
package orfcall

import (
	"context"
	"fmt"

	"github.com/jjtimmons/orfanno/config"
	"github.com/jjtimmons/orfanno/internal/exec"
	"github.com/jjtimmons/orfanno/internal/genome"
	"github.com/jjtimmons/orfanno/internal/orf"
)

// Caller finds ORFs in the contigs of a nucleotide FASTA file.
type Caller interface {
	// Name of the program behind the caller
	Name() string

	Call(ctx context.Context, path string) (orf.Map, error)
}

// New returns the caller the settings ask for.
func New(c *config.Config, r exec.Runner) (Caller, error) {
	switch c.Caller {
	case config.CallerProdigal:
		return &Prodigal{Runner: r, Bin: c.Prodigal.Bin, Mode: c.Prodigal.Mode}, nil
	case config.CallerPhanotate:
		return &Phanotate{Runner: r, Bin: c.Phanotate.Bin}, nil
	default:
		return nil, fmt.Errorf("unknown ORF caller %q", c.Caller)
	}
}

// numberer hands out genome-wide ORF ids in call order.
type numberer struct {
	next int
	orfs orf.Map
}

func newNumberer() *numberer {
	return &numberer{next: 1, orfs: make(orf.Map)}
}

// add records an ORF on a contig, ordering its coordinates.
func (n *numberer) add(label string, start, end int, strand genome.Strand) {
	if start > end {
		start, end = end, start
	}
	r := orf.Record{ID: n.next, Start: start, End: end, Strand: strand}
	n.orfs[label] = append(n.orfs[label], r.String())
	n.next++
}
