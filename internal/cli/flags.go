package cli

import "pixcheck/internal/config"

// Flags holds command-line flags
type Flags struct {
	Queue         bool
	Threshold     float64
	ParallelLimit int
	OnlyFailed    bool
	JUnitPath     string
	OpenFailures  bool
	HistoryDSN    string
	ConfigFile    string
}

// ToConfigFlags converts CLI flags and positional patterns to config flags.
// changed reports whether the user set a flag; numeric flags left at their
// cobra default do not override the project file.
func (f *Flags) ToConfigFlags(patterns []string, changed func(name string) bool) config.Flags {
	cf := config.Flags{
		Patterns:     append([]string(nil), patterns...),
		Queue:        f.Queue,
		OnlyFailed:   f.OnlyFailed,
		JUnitPath:    f.JUnitPath,
		OpenFailures: f.OpenFailures,
		HistoryDSN:   f.HistoryDSN,
		ConfigFile:   f.ConfigFile,
	}
	if changed("threshold") {
		threshold := f.Threshold
		cf.Threshold = &threshold
	}
	if changed("parallel-limit") {
		limit := f.ParallelLimit
		cf.ParallelLimit = &limit
	}
	return cf
}

// NormalizeArgs maps the --info alias to --help
func NormalizeArgs(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if a == "--info" {
			a = "--help"
		}
		out[i] = a
	}
	return out
}
