// Package export writes sweep results in machine-readable formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/kilianp07/ecoamp/core/sweep"
)

// Format names an output encoding of a sweep.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTable, FormatJSON, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// WriteJSON writes the sweep result to w in JSON format.
func WriteJSON(w io.Writer, res sweep.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteCSV writes one row per evaluated point. The header carries the
// parameter and metric names; rejected points leave the metric empty.
func WriteCSV(w io.Writer, res sweep.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{res.Param, res.Metric, "error"}); err != nil {
		return err
	}
	for _, p := range res.Points {
		rec := []string{strconv.FormatFloat(p.Value, 'f', -1, 64), "", p.Err}
		if p.Err == "" {
			rec[1] = strconv.FormatFloat(p.Result, 'f', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
