// Package query writes the protein FASTA handed to the homology search.
package query

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/jjtimmons/orfanno/internal/genome"
	"github.com/jjtimmons/orfanno/internal/translate"
)

// lineWidth is the residue count per FASTA sequence line.
const lineWidth = 60

// File is the run's query destination. It's truncated once, when created,
// and only appended to afterwards.
type File struct {
	f *os.File
}

// Create truncates (or creates) the query file at path.
func Create(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create query file: %w", err)
	}
	return &File{f: f}, nil
}

// Name is the path of the query file.
func (q *File) Name() string {
	return q.f.Name()
}

// Write appends to the query file.
func (q *File) Write(p []byte) (int, error) {
	return q.f.Write(p)
}

// Close flushes the query file to disk and releases it.
func (q *File) Close() error {
	if err := q.f.Sync(); err != nil {
		q.f.Close()
		return err
	}
	return q.f.Close()
}

// Materializer writes each feature's translation to a query sink, once.
type Materializer struct {
	buf *bufio.Writer
	w   *fasta.Writer
	tr  translate.Translator

	written map[*genome.Feature]bool
}

// NewMaterializer returns a Materializer appending entries to w.
func NewMaterializer(w io.Writer, tr translate.Translator) *Materializer {
	buf := bufio.NewWriter(w)
	return &Materializer{
		buf:     buf,
		w:       fasta.NewWriter(buf, lineWidth),
		tr:      tr,
		written: make(map[*genome.Feature]bool),
	}
}

// Write appends an entry for every feature of every contig not yet written,
// in contig then feature order. It returns the number of entries written.
func (m *Materializer) Write(g *genome.Genome) (n int, err error) {
	defer func() {
		if ferr := m.buf.Flush(); ferr != nil && err == nil {
			err = fmt.Errorf("failed to flush queries: %w", ferr)
		}
	}()

	for _, c := range g.Contigs {
		for _, f := range c.Features {
			if m.written[f] {
				continue
			}

			prot, err := m.tr.Translate(f, c)
			if err != nil {
				return n, err
			}

			s := linear.NewSeq(strconv.Itoa(f.ID), alphabet.BytesToLetters([]byte(prot)), alphabet.Protein)
			if _, err := m.w.Write(s); err != nil {
				return n, fmt.Errorf("failed to write query for feature %d: %w", f.ID, err)
			}

			m.written[f] = true
			n++
		}
	}
	return n, nil
}
