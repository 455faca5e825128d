// Command capindex backtests a market-cap-weighted cryptocurrency index
// against its constituents held alone.
//
// Usage:
//
//	capindex normalize --raw-dir data/raw --normalized-dir data/normalized --start-date 2018-01-01
//	capindex backtest --config config.yaml
//	capindex sweep --config config.yaml
//	capindex stats --input returns.csv --markdown
//	capindex chart --config config.yaml --output comparison.png
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "capindex: %v\n", err)
		os.Exit(1)
	}
}
