package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jjtimmons/orfanno/internal/pipeline"
)

// annotateCmd is for annotating the contigs of a FASTA file.
var annotateCmd = &cobra.Command{
	Use:   "annotate [contigs.fa]",
	RunE:  pipeline.Annotate,
	Short: "Call ORFs in contigs, find their homologs and write annotated GenBank",
	Long: `Call ORFs in contigs, find their homologs and write annotated GenBank

Every ORF becomes a CDS feature qualified with its gene id, the product of its
best protein hit (or "Unknown"), a locus tag, its translation and the hit's
protein id (or "N/A"). The output is only written once every step succeeds.`,
	Args:                       cobra.MaximumNArgs(1),
	SuggestionsMinimumDistance: 3,
}

// set flags
func init() {
	annotateCmd.Flags().StringP("in", "i", "", "input FASTA of contigs (default the first FASTA in the working directory)")
	annotateCmd.Flags().StringP("out", "o", "", "output GenBank file (default <input stem>.gbk)")
	annotateCmd.Flags().String("caller", "prodigal", "ORF caller, \"prodigal\" or \"phanotate\"")
	annotateCmd.Flags().IntP("threads", "t", 1, "threads for the homology search")
	annotateCmd.Flags().StringP("db", "d", "", "protein BLAST database to search")
	annotateCmd.Flags().String("locus-prefix", "PREF", "prefix of locus tags")
	annotateCmd.Flags().String("report", "", "write a TOML run report to this path")
	annotateCmd.Flags().String("plot", "", "write an SVG protein length histogram to this path")
	annotateCmd.Flags().String("work-dir", "", "keep intermediate files in this directory")

	viper.BindPFlag("caller", annotateCmd.Flags().Lookup("caller"))
	viper.BindPFlag("threads", annotateCmd.Flags().Lookup("threads"))
	viper.BindPFlag("blast.db", annotateCmd.Flags().Lookup("db"))
	viper.BindPFlag("locus-prefix", annotateCmd.Flags().Lookup("locus-prefix"))
	viper.BindPFlag("report", annotateCmd.Flags().Lookup("report"))
	viper.BindPFlag("plot", annotateCmd.Flags().Lookup("plot"))
	viper.BindPFlag("work-dir", annotateCmd.Flags().Lookup("work-dir"))

	RootCmd.AddCommand(annotateCmd)
}
