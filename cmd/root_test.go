package cmd

import (
	"testing"

	"search/internal/search"
)

func TestColorMode(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
		want    colorMode
	}{
		{
			name:    "auto",
			value:   "auto",
			wantErr: false,
			want:    colorAuto,
		},
		{
			name:    "always",
			value:   "always",
			wantErr: false,
			want:    colorAlways,
		},
		{
			name:    "never",
			value:   "never",
			wantErr: false,
			want:    colorNever,
		},
		{
			name:    "invalid value",
			value:   "invalid",
			wantErr: true,
		},
		{
			name:    "empty string",
			value:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c colorMode
			err := c.Set(tt.value)

			if tt.wantErr {
				if err == nil {
					t.Errorf("colorMode.Set(%q) expected error, got nil", tt.value)
				}
				return
			}

			if err != nil {
				t.Errorf("colorMode.Set(%q) unexpected error: %v", tt.value, err)
				return
			}

			if c != tt.want {
				t.Errorf("colorMode.Set(%q) = %v, want %v", tt.value, c, tt.want)
			}
		})
	}
}

// validate reads the package-level flag variables; each case sets the
// fields it cares about and restores the defaults afterwards.
func TestValidate(t *testing.T) {
	type flags struct {
		term     string
		args     []string
		minDepth int
		maxDepth int
		dryRun   bool
		silent   bool
	}
	tests := []struct {
		name    string
		flags   flags
		wantErr bool
	}{
		{
			name:  "positional term",
			flags: flags{args: []string{"needle"}, maxDepth: -1},
		},
		{
			name:  "string option",
			flags: flags{term: "needle", maxDepth: -1},
		},
		{
			name:    "term missing",
			flags:   flags{maxDepth: -1},
			wantErr: true,
		},
		{
			name:    "both term forms",
			flags:   flags{term: "a", args: []string{"b"}, maxDepth: -1},
			wantErr: true,
		},
		{
			name:    "negative min depth",
			flags:   flags{args: []string{"x"}, minDepth: -1, maxDepth: -1},
			wantErr: true,
		},
		{
			name:    "min greater than max",
			flags:   flags{args: []string{"x"}, minDepth: 3, maxDepth: 2},
			wantErr: true,
		},
		{
			name:  "min equals max",
			flags: flags{args: []string{"x"}, minDepth: 2, maxDepth: 2},
		},
		{
			name:    "dry run with silent",
			flags:   flags{args: []string{"x"}, maxDepth: -1, dryRun: true, silent: true},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searchTerm = tt.flags.term
			minDepth = tt.flags.minDepth
			maxDepth = tt.flags.maxDepth
			dryRun = tt.flags.dryRun
			silent = tt.flags.silent
			t.Cleanup(func() {
				searchTerm = ""
				minDepth = 0
				maxDepth = -1
				dryRun = false
				silent = false
			})

			err := validate(rootCmd, tt.flags.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("validate() expected error, got nil")
				}
				if !search.IsConfigError(err) {
					t.Errorf("validate() error %v is not a ConfigError", err)
				}
				return
			}
			if err != nil {
				t.Errorf("validate() unexpected error: %v", err)
			}
		})
	}
}

func TestUnknownFlagIsConfigError(t *testing.T) {
	rootCmd.SetArgs([]string{"--no-such-flag"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("Execute() expected error for unknown flag, got nil")
	}
	if !search.IsConfigError(err) {
		t.Errorf("Execute() error %v is not a ConfigError", err)
	}
}

func TestTooManyArgsIsConfigError(t *testing.T) {
	rootCmd.SetArgs([]string{"one", "two"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("Execute() expected error for extra positional args, got nil")
	}
	if !search.IsConfigError(err) {
		t.Errorf("Execute() error %v is not a ConfigError", err)
	}
}

func TestBuildFilter(t *testing.T) {
	nameGlobs = []string{"*.go"}
	nameRegexes = []string{`_test\.go$`}
	extensions = []string{"go"}
	t.Cleanup(func() {
		nameGlobs = nil
		nameRegexes = nil
		extensions = nil
	})

	f, err := buildFilter()
	if err != nil {
		t.Fatalf("buildFilter() error = %v", err)
	}
	if len(f.NameRegexps) != 1 {
		t.Errorf("NameRegexps = %d, want 1", len(f.NameRegexps))
	}
	if len(f.Extensions) != 1 || f.Extensions[0] != ".go" {
		t.Errorf("Extensions = %v, want [.go]", f.Extensions)
	}
}

func TestBuildFilterBadRegex(t *testing.T) {
	nameRegexes = []string{`(`}
	t.Cleanup(func() { nameRegexes = nil })

	if _, err := buildFilter(); err == nil {
		t.Error("buildFilter() expected error for bad regex")
	}
}
