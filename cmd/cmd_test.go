package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func Test_filePrepender(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"docs/orfanno.md", "title: orfanno\nnav_order: 0\nhas_children: true\npermalink: /\n"},
		{"docs/orfanno_annotate.md", "title: annotate\nparent: orfanno\nnav_order: 0\n"},
		{"docs/orfanno_help.md", ""},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got := filePrepender(tt.filename)
			if tt.want == "" {
				if got != "" {
					t.Errorf("filePrepender() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("filePrepender() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func Test_linkHandler(t *testing.T) {
	if got := linkHandler("orfanno.md"); got != "/" {
		t.Errorf("linkHandler(root) = %q, want /", got)
	}
	if got := linkHandler("orfanno_annotate.md"); got != "orfanno_annotate" {
		t.Errorf("linkHandler(annotate) = %q", got)
	}
}

func Test_makeDocs(t *testing.T) {
	dir := t.TempDir()
	if err := makeDocs(dir); err != nil {
		t.Fatal(err)
	}

	dat, err := os.ReadFile(filepath.Join(dir, "orfanno_annotate.md"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"parent: orfanno", "--locus-prefix", "--caller"} {
		if !strings.Contains(string(dat), want) {
			t.Errorf("annotate docs are missing %q", want)
		}
	}
}
