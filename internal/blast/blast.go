// Package blast searches translated features against a protein database
// with blastp and reads the tabular hits back.
package blast

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jjtimmons/orfanno/internal/exec"
)

// outfmt is the tabular layout requested from blastp. stitle goes last
// since it's the only column that may contain spaces.
const outfmt = "6 qseqid sseqid evalue bitscore stitle"

// Hit is the best match of one query against the database.
type Hit struct {
	// QSeqID is the feature id the query was written under
	QSeqID int

	// SSeqID is the matched reference sequence's id
	SSeqID string

	// STitle is the matched reference sequence's free-text title
	STitle string

	EValue float64

	BitScore float64
}

// Hits are keyed by feature id.
type Hits map[int]Hit

// Searcher is a homology search over a protein query FASTA.
type Searcher interface {
	Search(ctx context.Context, queryPath string, threads int) (Hits, error)
}

// Blastp runs NCBI blastp against a protein database.
type Blastp struct {
	Runner exec.Runner

	// Bin is the blastp binary
	Bin string

	// DB is the BLAST database to search
	DB string

	// Evalue is the expect value threshold, 0 leaves blastp's default
	Evalue float64
}

// Search blasts every query in queryPath and returns the first hit of each.
func (b *Blastp) Search(ctx context.Context, queryPath string, threads int) (Hits, error) {
	if b.DB == "" {
		return nil, exec.Errorf(b.Bin, "no BLAST database set")
	}

	stdout, _, err := b.Runner.Run(ctx, b.Bin, b.args(queryPath, threads)...)
	if err != nil {
		return nil, fmt.Errorf("failed executing blastp against %s: %w", b.DB, err)
	}

	return ParseHits(bytes.NewReader(stdout))
}

// args are blastp's flags for one search.
func (b *Blastp) args(queryPath string, threads int) []string {
	if threads < 1 {
		threads = 1
	}

	flags := []string{
		"-query", queryPath,
		"-db", b.DB,
		"-outfmt", outfmt,
		"-max_target_seqs", "1",
		"-num_threads", strconv.Itoa(threads),
	}
	if b.Evalue > 0 {
		flags = append(flags, "-evalue", strconv.FormatFloat(b.Evalue, 'g', -1, 64))
	}
	return flags
}

// ParseHits reads blastp tabular output. Only the first row of each query is
// kept. This is the one place a query id is converted from text to an int.
func ParseHits(r io.Reader) (Hits, error) {
	hits := make(Hits)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		row := strings.TrimRight(sc.Text(), "\r")

		// comment lines start with a #
		if strings.TrimSpace(row) == "" || strings.HasPrefix(row, "#") {
			continue
		}

		cols := strings.SplitN(row, "\t", 5)
		if len(cols) < 5 {
			return nil, exec.Errorf("blastp", "line %d has %d columns, want 5: %q", line, len(cols), row)
		}

		qseqid, err := strconv.Atoi(strings.TrimSpace(cols[0]))
		if err != nil {
			return nil, exec.Errorf("blastp", "line %d query id %q is not a feature id", line, cols[0])
		}

		if _, seen := hits[qseqid]; seen {
			continue
		}

		evalue, err := strconv.ParseFloat(strings.TrimSpace(cols[2]), 64)
		if err != nil {
			return nil, exec.Errorf("blastp", "line %d evalue %q: %v", line, cols[2], err)
		}

		bitscore, err := strconv.ParseFloat(strings.TrimSpace(cols[3]), 64)
		if err != nil {
			return nil, exec.Errorf("blastp", "line %d bitscore %q: %v", line, cols[3], err)
		}

		hits[qseqid] = Hit{
			QSeqID:   qseqid,
			SSeqID:   strings.TrimSpace(cols[1]),
			STitle:   cols[4],
			EValue:   evalue,
			BitScore: bitscore,
		}
	}
	if err := sc.Err(); err != nil {
		return nil, exec.Errorf("blastp", "failed to read hits: %v", err)
	}

	return hits, nil
}
