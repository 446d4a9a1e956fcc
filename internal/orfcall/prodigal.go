package orfcall

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jjtimmons/orfanno/internal/exec"
	"github.com/jjtimmons/orfanno/internal/genome"
	"github.com/jjtimmons/orfanno/internal/orf"
)

// Prodigal calls genes with prodigal using translation table 11.
type Prodigal struct {
	Runner exec.Runner

	// Bin is the prodigal binary
	Bin string

	// Mode is the procedure: "single" or "meta"
	Mode string
}

// Name is "prodigal".
func (p *Prodigal) Name() string { return "prodigal" }

// Call runs prodigal with its simple coordinate output (sco) on stdout.
func (p *Prodigal) Call(ctx context.Context, path string) (orf.Map, error) {
	mode := p.Mode
	if mode == "" {
		mode = "single"
	}

	stdout, _, err := p.Runner.Run(ctx, p.Bin, "-i", path, "-f", "sco", "-g", "11", "-p", mode, "-q")
	if err != nil {
		return nil, fmt.Errorf("failed calling ORFs in %s: %w", path, err)
	}

	return parseSCO(stdout)
}

// parseSCO reads prodigal's sco format:
//
//	# Sequence Data: seqnum=1;seqlen=5000;seqhdr="contig_1 description"
//	# Model Data: version=Prodigal.v2.6.3;...
//	>1_337_2799_+
//
// prodigal numbers genes per sequence, so they're renumbered genome-wide.
func parseSCO(out []byte) (orf.Map, error) {
	n := newNumberer()
	label := ""

	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "# Sequence Data:"):
			hdr, err := seqhdr(line)
			if err != nil {
				return nil, err
			}
			label = hdr
		case strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, ">"):
			if label == "" {
				return nil, exec.Errorf("prodigal", "gene %q before any sequence header", line)
			}
			r, err := orf.ParseRecord(line)
			if err != nil {
				return nil, exec.Errorf("prodigal", "%v", err)
			}
			n.add(label, r.Start, r.End, r.Strand)
		default:
			return nil, exec.Errorf("prodigal", "unexpected line %q", line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, exec.Errorf("prodigal", "failed to read output: %v", err)
	}

	return n.orfs, nil
}

// seqhdr pulls the sequence label (first word of seqhdr) from a sequence data line.
func seqhdr(line string) (string, error) {
	const key = `seqhdr="`
	i := strings.Index(line, key)
	if i < 0 {
		return "", exec.Errorf("prodigal", "no seqhdr in %q", line)
	}
	rest := line[i+len(key):]
	if j := strings.Index(rest, `"`); j >= 0 {
		rest = rest[:j]
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", exec.Errorf("prodigal", "empty seqhdr in %q", line)
	}
	return fields[0], nil
}

// strandOf maps a strand symbol to a Strand.
func strandOf(s string) (genome.Strand, error) {
	switch s {
	case "+":
		return genome.Forward, nil
	case "-":
		return genome.Reverse, nil
	default:
		return 0, fmt.Errorf("strand %q is not + or -", s)
	}
}

// coordinate parses a position, ignoring the "<" and ">" marks of partial genes.
func coordinate(s string) (int, error) {
	v, err := strconv.Atoi(strings.Trim(s, "<>"))
	if err != nil || v < 1 {
		return 0, fmt.Errorf("position %q is not a positive integer", s)
	}
	return v, nil
}
