package orf

import (
	"errors"
	"reflect"
	"testing"

	"github.com/jjtimmons/orfanno/internal/genome"
)

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name    string
		s       string
		want    Record
		wantErr bool
	}{
		{
			"forward",
			">1_337_2799_+",
			Record{ID: 1, Start: 337, End: 2799, Strand: genome.Forward},
			false,
		},
		{
			"reverse with a letter prefix",
			"g42_10_99_-",
			Record{ID: 42, Start: 10, End: 99, Strand: genome.Reverse},
			false,
		},
		{
			"single base",
			">7_5_5_+",
			Record{ID: 7, Start: 5, End: 5, Strand: genome.Forward},
			false,
		},
		{"too few fields", ">1_337_+", Record{}, true},
		{"too many fields", ">1_2_3_4_+", Record{}, true},
		{"empty id", ">_1_9_+", Record{}, true},
		{"prefix only", "g_1_9_+", Record{}, true},
		{"id not an integer", ">a1_1_9_+", Record{}, true},
		{"zero start", ">1_0_9_+", Record{}, true},
		{"negative end", ">1_1_-9_+", Record{}, true},
		{"start past end", ">1_90_9_+", Record{}, true},
		{"bad strand", ">1_1_9_.", Record{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRecord(tt.s)
			if tt.wantErr {
				if !errors.Is(err, ErrParse) {
					t.Errorf("ParseRecord(%q) error = %v, want ErrParse", tt.s, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRecord(%q) error = %v", tt.s, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseRecord(%q) = %+v, want %+v", tt.s, got, tt.want)
			}
		})
	}
}

// every valid record decodes to start <= end and an id equal to idx[1:]
func TestParseRecord_roundTrip(t *testing.T) {
	for id := 0; id < 50; id++ {
		for _, strand := range []genome.Strand{genome.Forward, genome.Reverse} {
			r := Record{ID: id, Start: id + 1, End: 3*id + 3, Strand: strand}
			got, err := ParseRecord(r.String())
			if err != nil {
				t.Fatal(err)
			}
			if got != r {
				t.Errorf("ParseRecord(%q) = %+v", r.String(), got)
			}
			if got.Start > got.End {
				t.Errorf("start %d > end %d", got.Start, got.End)
			}
		}
	}
}

func newGenome(t *testing.T) *genome.Genome {
	t.Helper()
	g, err := genome.New(
		&genome.Contig{Label: "c1", ID: "g", Seq: "ATGAAATAA"},
		&genome.Contig{Label: "c2", ID: "g", Seq: "TTACCCCAT"},
	)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestLoad(t *testing.T) {
	g := newGenome(t)

	err := Load(g, Map{
		"c2": {">3_1_9_-"},
		"c1": {">2_4_9_+", ">1_1_9_+"},
	})
	if err != nil {
		t.Fatal(err)
	}

	c1, _ := g.Contig("c1")
	wantC1 := []*genome.Feature{
		{ID: 2, Start: 4, End: 9, Strand: genome.Forward, Type: "CDS"},
		{ID: 1, Start: 1, End: 9, Strand: genome.Forward, Type: "CDS"},
	}
	if !reflect.DeepEqual(c1.Features, wantC1) {
		t.Errorf("c1 features = %+v, want caller order %+v", c1.Features, wantC1)
	}

	c2, _ := g.Contig("c2")
	if len(c2.Features) != 1 || c2.Features[0].Strand != genome.Reverse {
		t.Errorf("c2 features = %+v", c2.Features)
	}

	if g.Features() != 3 {
		t.Errorf("Features() = %d, want 3", g.Features())
	}
}

func TestLoad_errors(t *testing.T) {
	tests := []struct {
		name string
		orfs Map
		want error
	}{
		{"unknown contig", Map{"c9": {">1_1_9_+"}}, ErrUnknownContig},
		{"malformed record", Map{"c1": {">1_1_9_+", "garbage"}}, ErrParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Load(newGenome(t), tt.orfs); !errors.Is(err, tt.want) {
				t.Errorf("Load() error = %v, want %v", err, tt.want)
			}
		})
	}
}
