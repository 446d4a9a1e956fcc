// Package report summarizes an annotation run: counts, protein length
// statistics and an optional length histogram.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/BurntSushi/toml"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/jjtimmons/orfanno/internal/annotate"
	"github.com/jjtimmons/orfanno/internal/genome"
)

// ErrNoProteins is returned when there are no translations to plot.
var ErrNoProteins = errors.New("no proteins to plot")

// Lengths are protein length statistics in residues.
type Lengths struct {
	Mean   float64 `toml:"mean"`
	StdDev float64 `toml:"stddev"`
	Median float64 `toml:"median"`
	Min    int     `toml:"min"`
	Max    int     `toml:"max"`
}

// Summary is the TOML run report.
type Summary struct {
	Input    string    `toml:"input"`
	Output   string    `toml:"output"`
	Caller   string    `toml:"caller"`
	Date     time.Time `toml:"date"`
	Elapsed  string    `toml:"elapsed"`
	Contigs  int       `toml:"contigs"`
	Features int       `toml:"features"`

	// Annotated features had a homology hit, Unknown ones didn't
	Annotated int `toml:"annotated"`
	Unknown   int `toml:"unknown"`

	Lengths Lengths `toml:"protein_lengths"`
}

// New builds a summary of an enriched genome.
func New(g *genome.Genome, input, output, caller string, date time.Time, elapsed time.Duration) Summary {
	s := Summary{
		Input:   input,
		Output:  output,
		Caller:  caller,
		Date:    date,
		Elapsed: elapsed.Round(time.Millisecond).String(),
		Contigs: len(g.Contigs),
	}

	for _, c := range g.Contigs {
		for _, f := range c.Features {
			s.Features++
			if f.Qualifiers.Product == annotate.UnknownProduct {
				s.Unknown++
			} else {
				s.Annotated++
			}
		}
	}

	s.Lengths = lengthStats(ProteinLengths(g))
	return s
}

// ProteinLengths are the translation lengths of every feature, in genome order.
func ProteinLengths(g *genome.Genome) []float64 {
	var lengths []float64
	for _, c := range g.Contigs {
		for _, f := range c.Features {
			if f.Qualifiers.Translation != "" {
				lengths = append(lengths, float64(len(f.Qualifiers.Translation)))
			}
		}
	}
	return lengths
}

func lengthStats(lengths []float64) Lengths {
	if len(lengths) == 0 {
		return Lengths{}
	}

	sorted := append([]float64(nil), lengths...)
	sort.Float64s(sorted)

	l := Lengths{
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Min:    int(sorted[0]),
		Max:    int(sorted[len(sorted)-1]),
	}
	if len(sorted) > 1 {
		l.StdDev = stat.StdDev(sorted, nil)
	}
	return l
}

// Encode writes the summary as TOML.
func (s Summary) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("failed to encode run report: %w", err)
	}
	return nil
}

// WriteFile writes the summary as TOML to filename.
func (s Summary) WriteFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create run report: %w", err)
	}
	if err := s.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Plot writes an SVG histogram of protein lengths.
func Plot(w io.Writer, lengths []float64) error {
	if len(lengths) == 0 {
		return ErrNoProteins
	}

	p := plot.New()
	p.Title.Text = "Protein Length Distribution"
	p.X.Label.Text = "Length (aa)"
	p.Y.Label.Text = "Proteins"

	bins := 50
	if len(lengths) < bins {
		bins = len(lengths)
	}
	h, err := plotter.NewHist(plotter.Values(lengths), bins)
	if err != nil {
		return fmt.Errorf("failed to bin protein lengths: %w", err)
	}
	p.Add(h)

	writer, err := p.WriterTo(8*vg.Inch, 4*vg.Inch, "svg")
	if err != nil {
		return fmt.Errorf("failed to render length histogram: %w", err)
	}
	if _, err := writer.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write length histogram: %w", err)
	}
	return nil
}

// PlotFile writes the protein length histogram of g to filename.
func PlotFile(filename string, g *genome.Genome) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create length histogram: %w", err)
	}
	if err := Plot(f, ProteinLengths(g)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
