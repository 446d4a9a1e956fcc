package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func Test_guessInput(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"notes.txt", "b.fasta", "a.fa"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(">x\nA\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "dir.fa"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := guessInput(dir)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "a.fa"); got != want {
		t.Errorf("guessInput() = %q, want %q", got, want)
	}

	if _, err := guessInput(t.TempDir()); err == nil {
		t.Error("expected an error for a directory without FASTA files")
	}
}

func Test_guessOutput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"contigs.fa", "contigs.gbk"},
		{filepath.Join("data", "phage.fasta"), filepath.Join("data", "phage.gbk")},
		{filepath.Join("data", "reads.v2.fna"), filepath.Join("data", "reads.v2.gbk")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := guessOutput(tt.in); got != tt.want {
				t.Errorf("guessOutput() = %q, want %q", got, tt.want)
			}
		})
	}
}

func Test_parseCmdFlags(t *testing.T) {
	newCmd := func() *cobra.Command {
		cmd := &cobra.Command{Use: "annotate"}
		cmd.Flags().StringP("in", "i", "", "")
		cmd.Flags().StringP("out", "o", "", "")
		return cmd
	}

	tests := []struct {
		name    string
		flags   map[string]string
		args    []string
		wantIn  string
		wantOut string
	}{
		{"flags", map[string]string{"in": "x.fa", "out": "y.gbk"}, nil, "x.fa", "y.gbk"},
		{"positional input", nil, []string{"z.fasta"}, "z.fasta", "z.gbk"},
		{"flag beats positional", map[string]string{"in": "x.fa"}, []string{"z.fasta"}, "x.fa", "x.gbk"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newCmd()
			for k, v := range tt.flags {
				if err := cmd.Flags().Set(k, v); err != nil {
					t.Fatal(err)
				}
			}

			fs, err := parseCmdFlags(cmd, tt.args)
			if err != nil {
				t.Fatal(err)
			}
			if fs.in != tt.wantIn || fs.out != tt.wantOut {
				t.Errorf("parseCmdFlags() = %+v, want in %q out %q", fs, tt.wantIn, tt.wantOut)
			}
		})
	}
}
