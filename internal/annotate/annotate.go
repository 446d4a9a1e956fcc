// Package annotate joins homology hits onto features and fills in their qualifiers.
package annotate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/jjtimmons/orfanno/internal/blast"
	"github.com/jjtimmons/orfanno/internal/genome"
	"github.com/jjtimmons/orfanno/internal/translate"
)

const (
	// UnknownProduct is the product of a feature without a hit
	UnknownProduct = "Unknown"

	// NoProteinID is the protein_id of a feature without a hit
	NoProteinID = "N/A"

	// tpaMarker is stripped from third party annotation titles
	tpaMarker = "TPA: MAG TPA"
)

// bracketed matches "[...]" annotations, eg: the organism in "protein X [E. coli]".
var bracketed = regexp.MustCompile(`\[.*?\]`)

// Enricher replaces every feature's qualifiers using its hit (if any) and translation.
type Enricher struct {
	// Prefix of locus tags, eg: PREF in PREF_0001
	Prefix string

	Translator translate.Translator
}

// Stats counts what an enrichment pass did.
type Stats struct {
	Features int
	Hits     int
	Unknown  int
}

// Enrich sets the qualifiers of every feature in the genome. A feature with
// no hit is not an error: it gets the Unknown product and N/A protein id.
func (e Enricher) Enrich(g *genome.Genome, hits blast.Hits) (Stats, error) {
	var stats Stats
	for _, c := range g.Contigs {
		for _, f := range c.Features {
			translation, err := e.Translator.Translate(f, c)
			if err != nil {
				return stats, err
			}

			product, proteinID := UnknownProduct, NoProteinID
			if hit, ok := hits[f.ID]; ok {
				product, proteinID = hit.STitle, hit.SSeqID
				stats.Hits++
			} else {
				stats.Unknown++
			}

			f.Qualifiers = genome.Qualifiers{
				Gene:        strconv.Itoa(f.ID),
				Product:     NormalizeProduct(product),
				LocusTag:    LocusTag(e.Prefix, f.ID),
				Translation: translation,
				ProteinID:   proteinID,
			}
			stats.Features++
		}
	}
	return stats, nil
}

// NormalizeProduct cleans a hit title into a product: bracketed annotations,
// trailing whitespace and the "TPA: MAG TPA" marker are removed until none are left.
func NormalizeProduct(title string) string {
	for {
		cleaned := bracketed.ReplaceAllString(title, "")
		cleaned = strings.TrimRightFunc(cleaned, unicode.IsSpace)
		cleaned = strings.ReplaceAll(cleaned, tpaMarker, "")
		cleaned = strings.TrimRightFunc(cleaned, unicode.IsSpace)

		if cleaned == title {
			return cleaned
		}
		title = cleaned
	}
}

// LocusTag formats a feature id as a zero padded, four digit locus tag.
func LocusTag(prefix string, id int) string {
	return fmt.Sprintf("%s_%04d", prefix, id)
}
