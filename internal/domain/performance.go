package domain

import "time"

// IndexColumn is the reserved matrix column name for the index itself.
const IndexColumn = "index"

// Performance bundles the metrics derived from one valuation trajectory.
type Performance struct {
	TotalReturnPct float64
	Sharpe         float64
	MaxDrawdownPct float64
}

// ReturnCell is one matrix cell: either a total return percentage or an
// explicit exclusion (asset had too little usable data for that entry date).
type ReturnCell struct {
	Return   float64
	Excluded bool
}

// ReturnRow is the outcome of one independent simulation run.
type ReturnRow struct {
	EntryDate time.Time
	Cells     []ReturnCell
}

// ReturnMatrix collects one row per candidate entry date. Columns are fixed
// for the whole sweep: the index first, then every constituent in input order.
type ReturnMatrix struct {
	Columns []string // without the leading entry-date column
	Rows    []ReturnRow
}
