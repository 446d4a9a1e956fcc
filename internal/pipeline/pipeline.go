// Package pipeline runs an annotation from contig FASTA to GenBank: load the
// genome, call ORFs, translate them into a query, search it for homologs,
// enrich the features and write them out.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/jjtimmons/orfanno/config"
	"github.com/jjtimmons/orfanno/internal/annotate"
	"github.com/jjtimmons/orfanno/internal/blast"
	"github.com/jjtimmons/orfanno/internal/exec"
	"github.com/jjtimmons/orfanno/internal/genbank"
	"github.com/jjtimmons/orfanno/internal/genome"
	"github.com/jjtimmons/orfanno/internal/orf"
	"github.com/jjtimmons/orfanno/internal/orfcall"
	"github.com/jjtimmons/orfanno/internal/query"
	"github.com/jjtimmons/orfanno/internal/report"
	"github.com/jjtimmons/orfanno/internal/translate"
)

// QueryFile is the protein query's name inside the work directory.
const QueryFile = "query.fa"

// Pipeline is one annotation run. It isn't reusable: make a new one per input.
type Pipeline struct {
	Caller   orfcall.Caller
	Searcher blast.Searcher

	Translator translate.Translator

	Config *config.Config

	Log zerolog.Logger

	// Now is the clock for the run date, time.Now if nil
	Now func() time.Time

	stage Stage
}

// New picks the ORF caller and homology search from the settings. Both run
// as external programs on the local host.
func New(c *config.Config, log zerolog.Logger) (*Pipeline, error) {
	runner := exec.Command{}

	caller, err := orfcall.New(c, runner)
	if err != nil {
		return nil, err
	}

	policy, err := translate.ParsePolicy(c.Translation.PartialCodons)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		Caller: caller,
		Searcher: &blast.Blastp{
			Runner: runner,
			Bin:    c.Blast.Bin,
			DB:     c.Blast.DB,
			Evalue: c.Blast.Evalue,
		},
		Translator: translate.Translator{Policy: policy, InitiatorMet: c.Translation.InitiatorMet},
		Config:     c,
		Log:        log,
	}, nil
}

// Stage is the last stage the run completed.
func (p *Pipeline) Stage() Stage {
	return p.stage
}

// Run annotates the contigs in input and writes them to output as GenBank.
// Any failure stops the run and leaves output untouched.
func (p *Pipeline) Run(ctx context.Context, input, output string) (*genome.Genome, error) {
	if p.stage != Init {
		return nil, fmt.Errorf("pipeline already ran to stage %s", p.stage)
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	start := now()
	log := p.Log.With().Str("input", input).Logger()

	// load contigs
	g, err := genome.Load(input, start)
	if err != nil {
		return nil, err
	}
	p.advance(log, GenomeLoaded, start).Int("contigs", len(g.Contigs)).Msg("stage complete")

	// per-run work directory and query file, truncated once here
	workDir, cleanup, err := p.workDir()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	qf, err := query.Create(filepath.Join(workDir, QueryFile))
	if err != nil {
		return nil, err
	}
	defer qf.Close()
	log.Debug().Str("query", qf.Name()).Msg("created query file")

	// call ORFs
	t := time.Now()
	callCtx, cancel := p.toolContext(ctx)
	orfs, err := p.Caller.Call(callCtx, input)
	cancel()
	if err != nil {
		return nil, err
	}
	p.advance(log, ORFsCalled, t).Str("caller", p.Caller.Name()).Int("contigs", len(orfs)).Msg("stage complete")

	// turn ORFs into features
	t = time.Now()
	if err := orf.Load(g, orfs); err != nil {
		return nil, err
	}
	p.advance(log, FeaturesLoaded, t).Int("features", g.Features()).Msg("stage complete")

	// write the protein query
	t = time.Now()
	n, err := query.NewMaterializer(qf, p.Translator).Write(g)
	if err != nil {
		return nil, err
	}
	if err := qf.Close(); err != nil {
		return nil, err
	}
	p.advance(log, QueryWritten, t).Int("proteins", n).Msg("stage complete")

	// search for homologs
	t = time.Now()
	searchCtx, cancel := p.toolContext(ctx)
	hits, err := p.Searcher.Search(searchCtx, qf.Name(), p.Config.Threads)
	cancel()
	if err != nil {
		return nil, err
	}
	p.advance(log, HomologySearched, t).Int("hits", len(hits)).Msg("stage complete")

	// qualify every feature
	t = time.Now()
	enricher := annotate.Enricher{Prefix: p.Config.LocusPrefix, Translator: p.Translator}
	stats, err := enricher.Enrich(g, hits)
	if err != nil {
		return nil, err
	}
	p.advance(log, Enriched, t).Int("annotated", stats.Hits).Int("unknown", stats.Unknown).Msg("stage complete")

	// publish
	t = time.Now()
	if err := genbank.WriteFile(output, g.Contigs); err != nil {
		return nil, err
	}
	p.advance(log, Written, t).Str("output", output).Msg("stage complete")

	if err := p.summarize(log, g, input, output, start, now().Sub(start)); err != nil {
		return g, err
	}

	return g, nil
}

// advance moves to the next stage and returns its log event for the caller to finish.
func (p *Pipeline) advance(log zerolog.Logger, next Stage, since time.Time) *zerolog.Event {
	if next != p.stage+1 {
		panic(fmt.Sprintf("pipeline: illegal stage transition %s -> %s", p.stage, next))
	}
	p.stage = next
	return log.Info().Str("stage", next.String()).Dur("took", time.Since(since))
}

// workDir returns the directory for intermediate files. A temp directory is
// made when none is configured and removed by cleanup.
func (p *Pipeline) workDir() (dir string, cleanup func(), err error) {
	if p.Config.WorkDir != "" {
		if err := os.MkdirAll(p.Config.WorkDir, 0755); err != nil {
			return "", nil, fmt.Errorf("failed to create work directory: %w", err)
		}
		return p.Config.WorkDir, func() {}, nil
	}

	dir, err = os.MkdirTemp("", "orfanno-")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create work directory: %w", err)
	}
	return dir, func() {
		if err := os.RemoveAll(dir); err != nil {
			p.Log.Warn().Err(err).Str("dir", dir).Msg("failed to remove work directory")
		}
	}, nil
}

// toolContext bounds an external tool call by the configured timeout.
func (p *Pipeline) toolContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.Config.ToolTimeout > 0 {
		return context.WithTimeout(ctx, p.Config.ToolTimeout)
	}
	return context.WithCancel(ctx)
}

// summarize writes the optional run report and length histogram.
func (p *Pipeline) summarize(log zerolog.Logger, g *genome.Genome, input, output string, date time.Time, elapsed time.Duration) error {
	if p.Config.Report != "" {
		s := report.New(g, input, output, p.Caller.Name(), date, elapsed)
		if err := s.WriteFile(p.Config.Report); err != nil {
			return err
		}
		log.Info().Str("report", p.Config.Report).Msg("wrote run report")
	}

	if p.Config.Plot != "" {
		if err := report.PlotFile(p.Config.Plot, g); err != nil {
			return err
		}
		log.Info().Str("plot", p.Config.Plot).Msg("wrote protein length histogram")
	}

	return nil
}
