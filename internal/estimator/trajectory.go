package estimator

import (
	"fmt"
	"io"
)

// WriteRows writes one row per outer iteration, P whitespace-separated
// numbers per row, matching the "<prefix>_<rank>.txt" layout from
// SPEC_FULL.md §6. Theta and dzA trajectories share this format, so both
// are written through the same helper.
func WriteRows(w io.Writer, rows [][]float64) error {
	for _, row := range rows {
		for k, v := range row {
			if k > 0 {
				if _, err := io.WriteString(w, " "); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "%.10g", v); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
