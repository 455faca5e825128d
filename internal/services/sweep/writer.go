package sweep

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/vadiminshakov/capindex/internal/domain"
)

// ExcludedMarker is written in place of a return when an asset produced no
// usable metric for an entry date. Downstream consumers expect the full
// column set on every row, so columns are never dropped.
const ExcludedMarker = "excluded"

// entryColumn is the header of the leading entry-date column.
const entryColumn = "market_entry"

// WriteCSV renders the matrix as `market_entry,index,<asset...>` rows with
// returns rounded to two decimals.
func WriteCSV(w io.Writer, matrix *domain.ReturnMatrix) error {
	cw := csv.NewWriter(w)
	header := append([]string{entryColumn}, matrix.Columns...)
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "write matrix header")
	}
	for _, row := range matrix.Rows {
		record := make([]string, 0, len(row.Cells)+1)
		record = append(record, row.EntryDate.Format(domain.DateFormat))
		for _, cell := range row.Cells {
			if cell.Excluded {
				record = append(record, ExcludedMarker)
				continue
			}
			record = append(record, fmt.Sprintf("%.2f", cell.Return))
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "write matrix row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush matrix")
}
