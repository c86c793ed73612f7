// Per-quarter history snapshots and CSV export. The engine appends one
// Snapshot per turn; nothing in the engine ever reads them back.

package sim

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Snapshot records the end-of-quarter position for charting.
type Snapshot struct {
	Quarter   int
	Cash      float64
	Valuation float64
	Revenue   float64 // aggregate across streams
	MixLabel  string  // contract mix, e.g. "T80/O20" (contract-mix variant only)
}

// WriteHistoryCSV writes snapshots as CSV with a header row.
func WriteHistoryCSV(w io.Writer, history []Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"quarter", "cash", "valuation", "revenue", "mix"}); err != nil {
		return fmt.Errorf("writing history header: %w", err)
	}
	for _, s := range history {
		row := []string{
			fmt.Sprintf("%d", s.Quarter),
			fmt.Sprintf("%.4f", s.Cash),
			fmt.Sprintf("%.4f", s.Valuation),
			fmt.Sprintf("%.4f", s.Revenue),
			s.MixLabel,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing history row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
