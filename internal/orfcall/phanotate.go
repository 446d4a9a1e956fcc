package orfcall

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/jjtimmons/orfanno/internal/exec"
	"github.com/jjtimmons/orfanno/internal/orf"
)

// Phanotate calls genes with PHANOTATE, tuned for phage genomes.
type Phanotate struct {
	Runner exec.Runner

	// Bin is the phanotate script
	Bin string
}

// Name is "phanotate".
func (p *Phanotate) Name() string { return "phanotate" }

// Call runs phanotate with its default tabular output on stdout.
func (p *Phanotate) Call(ctx context.Context, path string) (orf.Map, error) {
	stdout, _, err := p.Runner.Run(ctx, p.Bin, path)
	if err != nil {
		return nil, fmt.Errorf("failed calling ORFs in %s: %w", path, err)
	}

	return parseTabular(stdout)
}

// parseTabular reads phanotate's tabular format:
//
//	#id:	contig_1
//	#START	STOP	FRAME	CONTIG	SCORE
//	1	117	+	contig_1	-1.2e+00
//	2150	1935	-	contig_1	-3.4e+01
//
// reverse strand genes list STOP before START, so coordinates are ordered.
func parseTabular(out []byte) (orf.Map, error) {
	n := newNumberer()

	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		cols := strings.Fields(line)
		if len(cols) < 4 {
			return nil, exec.Errorf("phanotate", "line %q has %d columns, want at least 4", line, len(cols))
		}

		start, err := coordinate(cols[0])
		if err != nil {
			return nil, exec.Errorf("phanotate", "%v", err)
		}
		stop, err := coordinate(cols[1])
		if err != nil {
			return nil, exec.Errorf("phanotate", "%v", err)
		}
		strand, err := strandOf(cols[2])
		if err != nil {
			return nil, exec.Errorf("phanotate", "%v", err)
		}

		n.add(cols[3], start, stop, strand)
	}
	if err := sc.Err(); err != nil {
		return nil, exec.Errorf("phanotate", "failed to read output: %v", err)
	}

	return n.orfs, nil
}
