// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix is prepended to every environment variable override, eg: ORFANNO_THREADS
	EnvPrefix = "ORFANNO"

	// CallerProdigal selects prodigal for ORF calling
	CallerProdigal = "prodigal"

	// CallerPhanotate selects phanotate for ORF calling
	CallerPhanotate = "phanotate"

	// PartialTruncate drops a trailing partial codon before translation
	PartialTruncate = "truncate"

	// PartialReject fails translation of spans that aren't a multiple of three
	PartialReject = "reject"
)

var (
	// RootSettingsFile is the default settings file in the user's home directory.
	// It is optional: a missing file leaves the defaults in place
	RootSettingsFile = filepath.Join(home(), ".orfanno", "settings.toml")
)

// ProdigalConfig is settings for the prodigal ORF caller
type ProdigalConfig struct {
	// path or name of the prodigal binary
	Bin string `mapstructure:"bin" toml:"bin"`

	// procedure, "single" or "meta"
	Mode string `mapstructure:"mode" toml:"mode"`
}

// PhanotateConfig is settings for the phanotate ORF caller
type PhanotateConfig struct {
	// path or name of the phanotate script
	Bin string `mapstructure:"bin" toml:"bin"`
}

// BlastConfig is settings for the protein homology search
type BlastConfig struct {
	// path or name of the blastp binary
	Bin string `mapstructure:"bin" toml:"bin"`

	// the protein BLAST database to search against
	DB string `mapstructure:"db" toml:"db"`

	// the expect value threshold for hits
	Evalue float64 `mapstructure:"evalue" toml:"evalue"`
}

// TranslationConfig is settings for translating features
type TranslationConfig struct {
	// what to do with spans that aren't a multiple of three: "truncate" or "reject"
	PartialCodons string `mapstructure:"partial-codons" toml:"partial-codons"`

	// whether an alternative start codon in the first position is read as Met
	InitiatorMet bool `mapstructure:"initiator-met" toml:"initiator-met"`
}

// Config is the root-level settings struct and is a mix
// of settings available in settings.toml and those
// available from the command line
type Config struct {
	// the ORF caller to use: "prodigal" or "phanotate"
	Caller string `mapstructure:"caller" toml:"caller"`

	// thread count handed to the homology search
	Threads int `mapstructure:"threads" toml:"threads"`

	// prefix of every locus tag, eg: PREF in PREF_0001
	LocusPrefix string `mapstructure:"locus-prefix" toml:"locus-prefix"`

	// directory for intermediate files. a fresh temp directory per run if empty
	WorkDir string `mapstructure:"work-dir" toml:"work-dir"`

	// upper bound on each external tool call
	ToolTimeout time.Duration `mapstructure:"tool-timeout" toml:"tool-timeout"`

	// optional path to a TOML run report
	Report string `mapstructure:"report" toml:"report"`

	// optional path to an SVG protein length histogram
	Plot string `mapstructure:"plot" toml:"plot"`

	// whether to log at debug level
	Verbose bool `mapstructure:"verbose" toml:"verbose"`

	Prodigal ProdigalConfig `mapstructure:"prodigal" toml:"prodigal"`

	Phanotate PhanotateConfig `mapstructure:"phanotate" toml:"phanotate"`

	Blast BlastConfig `mapstructure:"blast" toml:"blast"`

	Translation TranslationConfig `mapstructure:"translation" toml:"translation"`
}

func init() {
	setDefaults(viper.GetViper())
}

// setDefaults registers the fallback for every setting.
func setDefaults(v *viper.Viper) {
	v.SetDefault("caller", CallerProdigal)
	v.SetDefault("threads", 1)
	v.SetDefault("locus-prefix", "PREF")
	v.SetDefault("work-dir", "")
	v.SetDefault("tool-timeout", 2*time.Hour)
	v.SetDefault("verbose", false)
	v.SetDefault("prodigal.bin", "prodigal")
	v.SetDefault("prodigal.mode", "single")
	v.SetDefault("phanotate.bin", "phanotate.py")
	v.SetDefault("blast.bin", "blastp")
	v.SetDefault("blast.db", "")
	v.SetDefault("blast.evalue", 1e-5)
	v.SetDefault("translation.partial-codons", PartialTruncate)
	v.SetDefault("translation.initiator-met", false)
}

// New returns a new Config struct populated by Viper settings:
// defaults, then the settings file (if one exists), then ORFANNO_*
// environment variables, then command line flags bound in /cmd
func New() (*Config, error) {
	return load(viper.GetViper())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	settings := v.GetString("settings")
	explicit := settings != ""
	if !explicit {
		settings = RootSettingsFile
	}
	if _, err := os.Stat(settings); err == nil {
		v.SetConfigFile(settings)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file %s: %w", settings, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("failed to find settings file %s", settings)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks for settings that can't produce a run.
func (c *Config) Validate() error {
	switch c.Caller {
	case CallerProdigal, CallerPhanotate:
	default:
		return fmt.Errorf("unknown ORF caller %q, expected %q or %q", c.Caller, CallerProdigal, CallerPhanotate)
	}

	switch c.Translation.PartialCodons {
	case PartialTruncate, PartialReject:
	default:
		return fmt.Errorf("unknown partial codon policy %q, expected %q or %q",
			c.Translation.PartialCodons, PartialTruncate, PartialReject)
	}

	if c.Threads < 1 {
		return fmt.Errorf("threads must be at least 1, got %d", c.Threads)
	}

	if strings.TrimSpace(c.LocusPrefix) == "" {
		return fmt.Errorf("locus prefix must not be empty")
	}

	if c.ToolTimeout < 0 {
		return fmt.Errorf("tool timeout must not be negative, got %s", c.ToolTimeout)
	}

	return nil
}

func home() string {
	h, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return h
}
