package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/dspcore/dsp/window"
)

var (
	winType     string
	winParam    float64
	winPeriodic bool
	winList     bool
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Window coefficients, or a table of every window family",
	Long: `Print the coefficients of one window of length --n, or with --list the
coherent gain and equivalent noise bandwidth of every family.

Examples:
  dspdump window --type kaiser --param 8.6 --n 64
  dspdump window --list --n 4096 --periodic`,
	RunE: runE(runWindow),
}

func init() {
	windowCmd.Flags().StringVar(&winType, "type", "hann", "window family")
	windowCmd.Flags().Float64Var(&winParam, "param", -1, "shape parameter of parametric families (negative uses the default)")
	windowCmd.Flags().BoolVar(&winPeriodic, "periodic", false, "periodic (DFT-even) form")
	windowCmd.Flags().BoolVar(&winList, "list", false, "analyse every family")

	rootCmd.AddCommand(windowCmd)
}

func windowOptions() []window.Option {
	var opts []window.Option
	if winParam >= 0 {
		opts = append(opts, window.WithAlpha(winParam))
	}

	if winPeriodic {
		opts = append(opts, window.WithPeriodic())
	}

	return opts
}

func runWindow(cmd *cobra.Command) error {
	if err := requirePositive("n", length); err != nil {
		return err
	}

	if winList {
		return listWindows(cmd)
	}

	wt, err := window.Parse(winType)
	if err != nil {
		return &argError{err: err}
	}

	w, err := window.New(wt, length, windowOptions()...)
	if err != nil {
		return err
	}

	cg, _ := window.CoherentGain(w)
	enbw, _ := window.EquivalentNoiseBandwidth(w)

	r := newReport(cmd, "w")
	r.Meta["type"] = wt.String()
	r.Meta["length"] = length
	r.Meta["periodic"] = winPeriodic
	r.Meta["coherent_gain"] = cg
	r.Meta["enbw_bins"] = enbw

	if info := window.Info(wt); info.Parametric {
		p := info.DefaultParam
		if winParam >= 0 {
			p = winParam
		}

		r.Meta["param"] = p
	}

	r.addReal(w)

	return emit(cmd, r)
}

type windowRow struct {
	name string
	cg   float64
	enbw float64
}

func analyzeWindows() ([]windowRow, error) {
	var rows []windowRow

	for t := window.TypeRectangular; window.Info(t).Name != ""; t++ {
		w, err := window.New(t, length, windowOptions()...)
		if err != nil {
			return nil, err
		}

		cg, err := window.CoherentGain(w)
		if err != nil {
			return nil, err
		}

		enbw, err := window.EquivalentNoiseBandwidth(w)
		if err != nil {
			return nil, err
		}

		rows = append(rows, windowRow{name: window.Info(t).Name, cg: cg, enbw: enbw})
	}

	return rows, nil
}

func listWindows(cmd *cobra.Command) error {
	rows, err := analyzeWindows()
	if err != nil {
		return err
	}

	if format == string(formatText) {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintf(tw, "Window\tSize\tCoherent Gain\tENBW [bins]\n")
		_, _ = fmt.Fprintf(tw, "------\t----\t-------------\t-----------\n")

		for _, row := range rows {
			_, _ = fmt.Fprintf(tw, "%s\t%d\t%.6f\t%.4f\n", row.name, length, row.cg, row.enbw)
		}

		return tw.Flush()
	}

	r := newReport(cmd, "index", "coherent_gain", "enbw_bins")
	names := make([]string, len(rows))

	for i, row := range rows {
		names[i] = row.name
		r.Rows = append(r.Rows, []float64{float64(i), row.cg, row.enbw})
	}

	r.Meta["families"] = names
	r.Meta["length"] = length

	return emit(cmd, r)
}
