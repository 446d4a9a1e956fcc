package pipeline

import "fmt"

// Stage is how far a run has progressed. Stages only move forward, one at a time.
type Stage int

const (
	// Init is a pipeline that hasn't started
	Init Stage = iota

	// GenomeLoaded has contigs read from the input FASTA
	GenomeLoaded

	// ORFsCalled has ORF caller output
	ORFsCalled

	// FeaturesLoaded has a CDS feature per ORF on the genome
	FeaturesLoaded

	// QueryWritten has every feature's protein in the query FASTA
	QueryWritten

	// HomologySearched has a hit map from the homology search
	HomologySearched

	// Enriched has qualifiers on every feature
	Enriched

	// Written has published the GenBank output
	Written
)

var stageNames = [...]string{
	Init:             "init",
	GenomeLoaded:     "genome-loaded",
	ORFsCalled:       "orfs-called",
	FeaturesLoaded:   "features-loaded",
	QueryWritten:     "query-written",
	HomologySearched: "homology-searched",
	Enriched:         "enriched",
	Written:          "written",
}

func (s Stage) String() string {
	if s < Init || s > Written {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}
