package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"kibble-ration/internal/config"
	"kibble-ration/internal/model"
)

// stringList collects a repeatable string flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// ParseFlags parses command-line arguments and returns a RunnerConfig.
// Returns nil config and prints help if no arguments or --help is provided.
func ParseFlags() (*RunnerConfig, error) {
	if len(os.Args) < 2 {
		return nil, nil // No args = use GUI
	}

	if os.Args[1] == "help" || os.Args[1] == "--help" || os.Args[1] == "-h" {
		PrintUsage()
		return nil, nil
	}

	cfg := &RunnerConfig{
		ConfigPath: config.DefaultPath,
		SplittingCount: -1,
		Remove:         -1,
	}

	var quantities, edits stringList

	fs := flag.NewFlagSet("kibble-ration", flag.ContinueOnError)

	fs.StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "Path to the YAML config file")

	// Ration edits
	fs.IntVar(&cfg.SplittingCount, "n", -1, "Number of feedings per day")
	fs.IntVar(&cfg.SplittingCount, "count", -1, "Number of feedings per day")
	fs.StringVar(&cfg.Splittings, "s", "", "Comma-separated feeding weights")
	fs.StringVar(&cfg.Splittings, "splittings", "", "Comma-separated feeding weights")
	fs.Var(&quantities, "q", "Food as quantity:distribution (repeatable)")
	fs.Var(&quantities, "quantity", "Food as quantity:distribution (repeatable)")
	fs.Var(&edits, "set", "Field edit as path=value (repeatable)")
	fs.IntVar(&cfg.Add, "add", 0, "Append N default foods")
	fs.IntVar(&cfg.Remove, "remove", -1, "Remove the food at this index")
	fs.BoolVar(&cfg.Reset, "reset", false, "Reset to the default ration first")

	// Output flags
	fs.StringVar(&cfg.OutputPath, "o", "", "Export file (.csv, .txt or .xlsx)")
	fs.StringVar(&cfg.OutputPath, "output", "", "Export file (.csv, .txt or .xlsx)")
	fs.BoolVar(&cfg.JSON, "json", false, "Print the snapshot as JSON")
	fs.IntVar(&cfg.History, "history", 0, "Print the last N saved snapshots (sqlite backend)")
	fs.BoolVar(&cfg.NoSave, "no-save", false, "Do not persist the edits")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil
		}
		return nil, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected argument %q\n\n", fs.Arg(0))
		PrintUsage()
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	countSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "n" || f.Name == "count" {
			countSet = true
		}
	})
	if countSet && cfg.SplittingCount < 0 {
		return nil, fmt.Errorf("-n must not be negative, got %d", cfg.SplittingCount)
	}

	if cfg.Splittings != "" {
		weights, err := ParseSplittings(cfg.Splittings)
		if err != nil {
			return nil, err
		}
		cfg.Weights = weights
		if cfg.SplittingCount < 0 {
			cfg.SplittingCount = len(weights)
		}
		if cfg.SplittingCount != len(weights) {
			return nil, fmt.Errorf("-s has %d weights but -n is %d", len(weights), cfg.SplittingCount)
		}
	}

	for _, q := range quantities {
		dq, err := ParseQuantity(q)
		if err != nil {
			return nil, err
		}
		cfg.Quantities = append(cfg.Quantities, dq)
	}
	cfg.Edits = edits

	return cfg, nil
}

// ParseSplittings parses "1,2,1" into weights.
func ParseSplittings(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q in -s", part)
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseQuantity parses "quantity:distribution", e.g. "120:70". The
// distribution defaults to 100 when omitted.
func ParseQuantity(s string) (model.DailyQuantity, error) {
	qs, ds, hasDist := strings.Cut(s, ":")
	q, err := strconv.ParseFloat(strings.TrimSpace(qs), 64)
	if err != nil {
		return model.DailyQuantity{}, fmt.Errorf("invalid quantity %q in -q", s)
	}
	d := model.DefaultDistribution
	if hasDist {
		d, err = strconv.ParseFloat(strings.TrimSpace(ds), 64)
		if err != nil {
			return model.DailyQuantity{}, fmt.Errorf("invalid distribution %q in -q", s)
		}
	}
	return model.DailyQuantity{Quantity: q, Distribution: d}, nil
}

// PrintUsage prints the help message.
func PrintUsage() {
	fmt.Fprintf(os.Stderr, `Kibble Ration Calculator

Usage: kibble-ration [flags]
       kibble-ration help    (show this message)
       kibble-ration         (no flags: open the GUI)

RATION EDITS (applied in this order to the stored ration):
  -reset                   Start again from the default ration
  -n, -count <num>         Feedings per day
  -s, -splittings <list>   Feeding weights, e.g. 1,2,1 (sets -n when omitted)
  -q, -quantity <q:d>      Food quantity in grams and distribution in %%,
                           repeatable; replaces the food list
  -add <num>               Append default foods (100 g, 100 %%)
  -remove <index>          Remove the food at index (0-based)
  -set <path=value>        Edit one field, repeatable, e.g.
                           dailyQuantities.0.distribution=70

OUTPUT (with no edits the stored ration is printed as is):
  -json                    Also print the snapshot as JSON
  -history <num>           List the last saved snapshots (sqlite backend)
  -o, -output <file>       Export the split table (.csv, .txt, .xlsx)
  -no-save                 Do not persist the edits
  -v, -verbose             Verbose output
  -config <file>           YAML config (default: kibble-ration.yaml)

EXAMPLES:
  # Three feedings, the middle one twice as large
  kibble-ration -s 1,2,1 -q 250

  # Two foods, 70 %% / 30 %%
  kibble-ration -q 180:70 -q 90:30 -o results/ration.xlsx

  # Change one field of the stored ration
  kibble-ration -set splittings.1=1.5

`)
}
