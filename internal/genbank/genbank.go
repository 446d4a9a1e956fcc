// Package genbank writes annotated contigs as a GenBank flat file.
package genbank

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jjtimmons/orfanno/internal/genome"
)

const (
	// width is the maximum line length of the feature table
	width = 80

	// indent is where qualifiers and feature locations start
	indent = 21
)

// Write writes every contig as a GenBank record, in order.
func Write(w io.Writer, contigs []*genome.Contig) error {
	bw := bufio.NewWriter(w)
	for _, c := range contigs {
		writeRecord(bw, c)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write GenBank output: %w", err)
	}
	return nil
}

// WriteFile writes contigs to filename. The file is written beside the
// destination and renamed into place, so filename is either absent or complete.
func WriteFile(filename string, contigs []*genome.Contig) (err error) {
	dir, base := filepath.Split(filename)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create output file beside %s: %w", filename, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = Write(tmp, contigs); err != nil {
		return err
	}
	if err = tmp.Chmod(0644); err != nil {
		return fmt.Errorf("failed to set output permissions: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync output: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	if err = os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to move output into place at %s: %w", filename, err)
	}
	return nil
}

func writeRecord(w *bufio.Writer, c *genome.Contig) {
	// header rows
	fmt.Fprintf(w, "LOCUS       %-16s %11d bp    %-6s  linear   UNK %s\n",
		c.Label, len(c.Seq), c.MoleculeType, Date(c))
	w.WriteString("DEFINITION  .\n")
	fmt.Fprintf(w, "ACCESSION   %s\n", c.ID)
	fmt.Fprintf(w, "VERSION     %s\n", c.ID)
	w.WriteString("KEYWORDS    .\n")
	w.WriteString("SOURCE      .\n")
	w.WriteString("  ORGANISM  .\n")
	w.WriteString("            .\n")

	// feature rows
	w.WriteString("FEATURES             Location/Qualifiers\n")
	for _, f := range c.Features {
		fmt.Fprintf(w, "     %-15s %s\n", f.Type, Location(f))
		for _, q := range f.Qualifiers.Pairs() {
			for _, line := range qualifierLines(q) {
				w.WriteString(strings.Repeat(" ", indent))
				w.WriteString(line)
				w.WriteString("\n")
			}
		}
	}

	// origin rows
	seq := strings.ToLower(c.Seq)
	w.WriteString("ORIGIN\n")
	for i := 0; i < len(seq); i += 60 {
		n := strconv.Itoa(i + 1)
		w.WriteString(strings.Repeat(" ", 9-len(n)) + n)
		for s := i; s < i+60 && s < len(seq); s += 10 {
			e := s + 10
			if e > len(seq) {
				e = len(seq)
			}
			w.WriteString(" " + seq[s:e])
		}
		w.WriteString("\n")
	}
	w.WriteString("//\n")
}

// Date renders the contig's date the way LOCUS lines carry it, eg 05-MAR-2024.
func Date(c *genome.Contig) string {
	return strings.ToUpper(c.Date.Format("02-Jan-2006"))
}

// Location is the feature's span, wrapped in complement() on the reverse strand.
func Location(f *genome.Feature) string {
	loc := fmt.Sprintf("%d..%d", f.Start, f.End)
	if f.Strand == genome.Reverse {
		return "complement(" + loc + ")"
	}
	return loc
}

// qualifierLines renders /key="value", split into lines that fit the feature table.
// Translations are cut anywhere, free text at the last space that fits.
func qualifierLines(q genome.Qualifier) []string {
	text := fmt.Sprintf("/%s=\"%s\"", q.Key, strings.ReplaceAll(q.Value, `"`, `""`))
	limit := width - indent

	var lines []string
	for len(text) > limit {
		cut := limit
		if q.Key != "translation" {
			if i := strings.LastIndex(text[:limit+1], " "); i > 0 {
				cut = i
			}
		}
		lines = append(lines, strings.TrimRight(text[:cut], " "))
		text = strings.TrimLeft(text[cut:], " ")
	}
	return append(lines, text)
}
