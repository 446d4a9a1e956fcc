package blast

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/jjtimmons/orfanno/internal/exec"
)

// fakeRunner records the call it gets and replays canned output.
type fakeRunner struct {
	name   string
	args   []string
	stdout string
	err    error
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.name = name
	f.args = args
	return []byte(f.stdout), nil, f.err
}

func TestParseHits(t *testing.T) {
	out := strings.Join([]string{
		"# BLASTP 2.15.0+",
		"1\tsp|P0A7B8|CLPX_ECOLI\t1.2e-50\t180.3\tATP-dependent Clp protease [Escherichia coli]",
		"1\tsp|P0A7B9|OTHER\t1e-10\t50\tsecond hit for the same query",
		"",
		"7\tWP_000001.1\t0.0\t512\tTPA: MAG TPA: hypothetical protein [Bacteroides sp.]",
	}, "\n")

	got, err := ParseHits(strings.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}

	want := Hits{
		1: {
			QSeqID:   1,
			SSeqID:   "sp|P0A7B8|CLPX_ECOLI",
			STitle:   "ATP-dependent Clp protease [Escherichia coli]",
			EValue:   1.2e-50,
			BitScore: 180.3,
		},
		7: {
			QSeqID:   7,
			SSeqID:   "WP_000001.1",
			STitle:   "TPA: MAG TPA: hypothetical protein [Bacteroides sp.]",
			EValue:   0,
			BitScore: 512,
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseHits() = %+v, want %+v", got, want)
	}
}

func TestParseHits_unreadable(t *testing.T) {
	tests := []struct {
		name string
		out  string
	}{
		{"too few columns", "1\tsp|X\t1e-5\n"},
		{"query id not a feature id", "gene1\tsp|X\t1e-5\t40\ttitle\n"},
		{"bad evalue", "1\tsp|X\tlow\t40\ttitle\n"},
		{"bad bitscore", "1\tsp|X\t1e-5\thigh\ttitle\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseHits(strings.NewReader(tt.out)); !errors.Is(err, exec.ErrTool) {
				t.Errorf("ParseHits() error = %v, want ErrTool", err)
			}
		})
	}
}

func TestBlastp_Search(t *testing.T) {
	r := &fakeRunner{stdout: "3\tref|1|\t1e-20\t90\tDNA polymerase III\n"}
	b := &Blastp{Runner: r, Bin: "blastp", DB: "/db/uniprot", Evalue: 1e-5}

	hits, err := b.Search(context.Background(), "/tmp/run/query.fa", 4)
	if err != nil {
		t.Fatal(err)
	}
	if hits[3].STitle != "DNA polymerase III" {
		t.Errorf("Search() = %+v", hits)
	}

	wantArgs := []string{
		"-query", "/tmp/run/query.fa",
		"-db", "/db/uniprot",
		"-outfmt", "6 qseqid sseqid evalue bitscore stitle",
		"-max_target_seqs", "1",
		"-num_threads", "4",
		"-evalue", "1e-05",
	}
	if r.name != "blastp" || !reflect.DeepEqual(r.args, wantArgs) {
		t.Errorf("ran %s %v, want blastp %v", r.name, r.args, wantArgs)
	}
}

func TestBlastp_Search_failures(t *testing.T) {
	b := &Blastp{Runner: &fakeRunner{}, Bin: "blastp"}
	if _, err := b.Search(context.Background(), "q.fa", 1); !errors.Is(err, exec.ErrTool) {
		t.Errorf("Search() without a db error = %v, want ErrTool", err)
	}

	b = &Blastp{
		Runner: &fakeRunner{err: exec.Errorf("blastp", "exit code 2")},
		Bin:    "blastp",
		DB:     "db",
	}
	if _, err := b.Search(context.Background(), "q.fa", 1); !errors.Is(err, exec.ErrTool) {
		t.Errorf("Search() error = %v, want ErrTool", err)
	}
}
