package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"
)

// outputFormat selects how a report is rendered.
type outputFormat string

const (
	formatText    outputFormat = "text"
	formatCSV     outputFormat = "csv"
	formatJSON    outputFormat = "json"
	formatYAML    outputFormat = "yaml"
	formatMsgpack outputFormat = "msgpack"
)

func parseFormat(s string) (outputFormat, error) {
	switch f := outputFormat(s); f {
	case formatText, formatCSV, formatJSON, formatYAML, formatMsgpack:
		return f, nil
	default:
		return "", argErrorf("unsupported output format %q", s)
	}
}

// report is the result of one command. Rows hold numeric output with one
// value per column; Meta holds scalar facts about the run.
type report struct {
	Command string         `json:"command" yaml:"command" msgpack:"command"`
	Meta    map[string]any `json:"meta,omitempty" yaml:"meta,omitempty" msgpack:"meta,omitempty"`
	Columns []string       `json:"columns,omitempty" yaml:"columns,omitempty" msgpack:"columns,omitempty"`
	Rows    [][]float64    `json:"rows,omitempty" yaml:"rows,omitempty" msgpack:"rows,omitempty"`
}

func newReport(cmd *cobra.Command, columns ...string) *report {
	return &report{
		Command: cmd.Name(),
		Meta:    map[string]any{},
		Columns: columns,
	}
}

func (r *report) addReal(x []float64) {
	for _, v := range x {
		r.Rows = append(r.Rows, []float64{v})
	}
}

func (r *report) addComplex(x []complex128) {
	for _, v := range x {
		r.Rows = append(r.Rows, []float64{real(v), imag(v)})
	}
}

// addMatrix appends rows·cols values laid out row-major.
func (r *report) addMatrix(x []float64, cols int) {
	for i := 0; i+cols <= len(x); i += cols {
		r.Rows = append(r.Rows, append([]float64(nil), x[i:i+cols]...))
	}
}

func emit(cmd *cobra.Command, r *report) error {
	f, err := parseFormat(format)
	if err != nil {
		return err
	}

	return writeReport(cmd.OutOrStdout(), f, r)
}

func writeReport(w io.Writer, f outputFormat, r *report) error {
	switch f {
	case formatText:
		return writeText(w, r)
	case formatCSV:
		return writeCSV(w, r)
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("format json: %w", err)
		}

		return nil
	case formatYAML:
		data, err := yaml.Marshal(r)
		if err != nil {
			return fmt.Errorf("format yaml: %w", err)
		}

		_, err = w.Write(data)

		return err
	case formatMsgpack:
		data, err := msgpack.Marshal(r)
		if err != nil {
			return fmt.Errorf("format msgpack: %w", err)
		}

		_, err = w.Write(data)

		return err
	default:
		return argErrorf("unsupported output format %q", f)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// writeText prints meta as "key: value" lines, commented out with "# "
// when numeric rows follow, and then one comma-separated row per line.
func writeText(w io.Writer, r *report) error {
	prefix := ""
	if len(r.Rows) > 0 {
		prefix = "# "
	}

	for _, k := range sortedKeys(r.Meta) {
		if _, err := fmt.Fprintf(w, "%s%s: %v\n", prefix, k, r.Meta[k]); err != nil {
			return err
		}
	}

	buf := make([]byte, 0, 64)
	for _, row := range r.Rows {
		buf = buf[:0]
		for i, v := range row {
			if i > 0 {
				buf = append(buf, ',')
			}

			buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
		}

		buf = append(buf, '\n')
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}

	return nil
}

// writeCSV writes the column header and rows. A report without rows is
// written as key,value pairs.
func writeCSV(w io.Writer, r *report) error {
	cw := csv.NewWriter(w)

	if len(r.Rows) == 0 {
		_ = cw.Write([]string{"key", "value"})
		for _, k := range sortedKeys(r.Meta) {
			_ = cw.Write([]string{k, fmt.Sprint(r.Meta[k])})
		}
	} else {
		if len(r.Columns) > 0 {
			_ = cw.Write(r.Columns)
		}

		rec := make([]string, 0, len(r.Columns))
		for _, row := range r.Rows {
			rec = rec[:0]
			for _, v := range row {
				rec = append(rec, formatFloat(v))
			}

			_ = cw.Write(rec)
		}
	}

	cw.Flush()

	return cw.Error()
}
