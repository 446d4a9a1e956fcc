package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jjtimmons/orfanno/config"
	"github.com/jjtimmons/orfanno/internal/genome"
	"github.com/jjtimmons/orfanno/internal/logging"
)

// Flags are the files an annotate command reads and writes.
type Flags struct {
	// the contig FASTA to annotate
	in string

	// the GenBank file to write
	out string
}

// Annotate is the annotate command: it runs one pipeline over the input file.
func Annotate(cmd *cobra.Command, args []string) error {
	fs, err := parseCmdFlags(cmd, args)
	if err != nil {
		cmd.Help()
		return err
	}

	c, err := config.New()
	if err != nil {
		return err
	}
	log := logging.New(os.Stderr, c.Verbose)

	p, err := New(c, log)
	if err != nil {
		return err
	}

	if _, err := p.Run(cmd.Context(), fs.in, fs.out); err != nil {
		log.Error().Err(err).Str("stage", p.Stage().String()).Msg("annotation failed")
		return err
	}
	return nil
}

// parseCmdFlags gathers the in and out paths from the command, guessing at
// whatever wasn't given.
func parseCmdFlags(cmd *cobra.Command, args []string) (*Flags, error) {
	fs := &Flags{}

	in, err := cmd.Flags().GetString("in")
	if err != nil {
		return nil, fmt.Errorf("failed to parse input flag: %w", err)
	}
	switch {
	case in != "":
		fs.in = in
	case len(args) > 0:
		fs.in = args[0]
	default:
		if fs.in, err = guessInput("."); err != nil {
			return nil, err
		}
	}

	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return nil, fmt.Errorf("failed to parse output flag: %w", err)
	}
	if out == "" {
		out = guessOutput(fs.in)
	}
	fs.out = out

	return fs, nil
}

// guessInput returns the first FASTA file in dir. Is used if the user
// hasn't specified an input file.
func guessInput(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to look for an input file: %w", err)
	}

	var names []string
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		ext := strings.ToUpper(filepath.Ext(file.Name()))
		if ext == ".FA" || ext == ".FASTA" || ext == ".FNA" {
			names = append(names, file.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no input file specified and no FASTA found in %s", dir)
	}

	sort.Strings(names)
	return filepath.Join(dir, names[0]), nil
}

// guessOutput returns an output path beside the input, eg: contigs.fa -> contigs.gbk
func guessOutput(in string) string {
	return filepath.Join(filepath.Dir(in), genome.Stem(in)+".gbk")
}
