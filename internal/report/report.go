// Package report encodes finished simulation readouts for whoever consumes
// them downstream (a plotting script, a notebook, a terminal).
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/talgya/wealth-sim/internal/engine"
)

// Format selects an encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for a format name ParseFormat does not know.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
	}
}

// Trial is the readout of a single model run.
type Trial struct {
	Agents int          `json:"agents" yaml:"agents"`
	Steps  int          `json:"steps" yaml:"steps"`
	Seed   int64        `json:"seed" yaml:"seed"`
	Wealth []uint64     `json:"wealth" yaml:"wealth"`
	Stats  engine.Stats `json:"stats" yaml:"stats"`
}

// Distribution is the readout of a batch of trials.
type Distribution struct {
	RunID     string       `json:"run_id" yaml:"run_id"`
	Agents    int          `json:"agents" yaml:"agents"`
	Steps     int          `json:"steps" yaml:"steps"`
	Trials    int          `json:"trials" yaml:"trials"`
	Seed      int64        `json:"seed" yaml:"seed"`
	Stats     engine.Stats `json:"stats" yaml:"stats"`
	Histogram []engine.Bin `json:"histogram" yaml:"histogram"`
	Wealth    []uint64     `json:"wealth,omitempty" yaml:"wealth,omitempty"`
}

// NewDistribution builds the readout of sample. The raw wealth samples are
// included only when withSamples is set.
func NewDistribution(sample *engine.Sample, withSamples bool) Distribution {
	d := Distribution{
		RunID:     sample.RunID,
		Agents:    sample.Agents,
		Steps:     sample.Steps,
		Trials:    sample.Trials,
		Seed:      sample.Seed,
		Stats:     sample.Stats(),
		Histogram: sample.Histogram(),
	}
	if withSamples {
		d.Wealth = sample.Wealth
	}
	return d
}

// Write encodes v to w in format. v must be a Trial or a Distribution for
// the text format; JSON and YAML accept anything.
func Write(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatText:
		return writeText(w, v)
	default:
		return fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

func writeText(w io.Writer, v any) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	switch r := v.(type) {
	case Trial:
		fmt.Fprintln(tw, "AGENT\tWEALTH")
		for i, wealth := range r.Wealth {
			fmt.Fprintf(tw, "%d\t%d\n", i, wealth)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, statsLine(r.Stats))
		return err

	case Distribution:
		fmt.Fprintln(tw, "WEALTH\tAGENTS\t")
		for _, b := range r.Histogram {
			fmt.Fprintf(tw, "%d\t%d\t%s\n", b.Wealth, b.Count, bar(b.Count, r.Stats.Population))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, statsLine(r.Stats))
		return err

	default:
		return fmt.Errorf("no text encoding for %T", v)
	}
}

func statsLine(st engine.Stats) string {
	return fmt.Sprintf("population=%d total_wealth=%d max_wealth=%d broke=%d gini=%.3f",
		st.Population, st.TotalWealth, st.MaxWealth, st.Broke, st.Gini)
}

// bar draws count as a share of total, at most 40 cells wide.
func bar(count, total int) string {
	const width = 40
	if total <= 0 || count <= 0 {
		return ""
	}
	n := count * width / total
	if n == 0 {
		n = 1
	}
	return strings.Repeat("#", n)
}
