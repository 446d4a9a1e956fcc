package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

// newViper returns an isolated viper with defaults and no user settings file.
func newViper(t *testing.T) *viper.Viper {
	t.Helper()

	root := RootSettingsFile
	RootSettingsFile = filepath.Join(t.TempDir(), "missing.toml")
	t.Cleanup(func() { RootSettingsFile = root })

	v := viper.New()
	setDefaults(v)
	return v
}

func TestConfig_defaults(t *testing.T) {
	c, err := load(newViper(t))
	if err != nil {
		t.Fatal(err)
	}

	if c.Caller != CallerProdigal {
		t.Errorf("Caller = %q, want %q", c.Caller, CallerProdigal)
	}
	if c.Threads != 1 {
		t.Errorf("Threads = %d, want 1", c.Threads)
	}
	if c.LocusPrefix != "PREF" {
		t.Errorf("LocusPrefix = %q, want PREF", c.LocusPrefix)
	}
	if c.ToolTimeout != 2*time.Hour {
		t.Errorf("ToolTimeout = %s, want 2h", c.ToolTimeout)
	}
	if c.Translation.PartialCodons != PartialTruncate {
		t.Errorf("PartialCodons = %q, want %q", c.Translation.PartialCodons, PartialTruncate)
	}
	if c.Blast.Bin != "blastp" || c.Prodigal.Bin != "prodigal" || c.Phanotate.Bin != "phanotate.py" {
		t.Errorf("unexpected tool binaries: %+v %+v %+v", c.Blast, c.Prodigal, c.Phanotate)
	}
}

func TestConfig_settingsFile(t *testing.T) {
	v := newViper(t)

	settings := filepath.Join(t.TempDir(), "settings.toml")
	contents := `caller = "phanotate"
threads = 8
locus-prefix = "ECOLI"
tool-timeout = "30m"

[blast]
db = "/data/uniprot"
evalue = 0.001

[translation]
partial-codons = "reject"
`
	if err := os.WriteFile(settings, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	v.Set("settings", settings)

	c, err := load(v)
	if err != nil {
		t.Fatal(err)
	}

	if c.Caller != CallerPhanotate {
		t.Errorf("Caller = %q, want %q", c.Caller, CallerPhanotate)
	}
	if c.Threads != 8 {
		t.Errorf("Threads = %d, want 8", c.Threads)
	}
	if c.LocusPrefix != "ECOLI" {
		t.Errorf("LocusPrefix = %q, want ECOLI", c.LocusPrefix)
	}
	if c.ToolTimeout != 30*time.Minute {
		t.Errorf("ToolTimeout = %s, want 30m", c.ToolTimeout)
	}
	if c.Blast.DB != "/data/uniprot" || c.Blast.Evalue != 0.001 {
		t.Errorf("Blast = %+v", c.Blast)
	}
	if c.Blast.Bin != "blastp" {
		t.Errorf("Blast.Bin = %q, default should survive a partial table", c.Blast.Bin)
	}
	if c.Translation.PartialCodons != PartialReject {
		t.Errorf("PartialCodons = %q, want %q", c.Translation.PartialCodons, PartialReject)
	}
}

func TestConfig_missingSettingsFile(t *testing.T) {
	v := newViper(t)
	v.Set("settings", filepath.Join(t.TempDir(), "nope.toml"))

	if _, err := load(v); err == nil {
		t.Error("expected an error for a settings file that doesn't exist")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Caller:      CallerProdigal,
			Threads:     2,
			LocusPrefix: "PREF",
			Translation: TranslationConfig{PartialCodons: PartialTruncate},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			"valid",
			func(c *Config) {},
			"",
		},
		{
			"unknown caller",
			func(c *Config) { c.Caller = "glimmer" },
			"unknown ORF caller",
		},
		{
			"unknown partial codon policy",
			func(c *Config) { c.Translation.PartialCodons = "pad" },
			"partial codon policy",
		},
		{
			"no threads",
			func(c *Config) { c.Threads = 0 },
			"threads",
		},
		{
			"blank prefix",
			func(c *Config) { c.LocusPrefix = "  " },
			"locus prefix",
		},
		{
			"negative timeout",
			func(c *Config) { c.ToolTimeout = -time.Second },
			"timeout",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)

			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
