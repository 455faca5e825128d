// Package normalize prepares raw CoinGecko exports for the simulator:
// every series is rewritten to start at a common date, with zero-valued
// rows fabricated for days before the asset first traded.
package normalize

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vadiminshakov/capindex/internal/domain"
)

const rawDateFormat = "2006-01-02 15:04:05 UTC"

// Normalizer pads raw CSVs so all series share a start date.
type Normalizer struct {
	rawDir        string
	normalizedDir string
	logger        *zap.Logger
}

// New creates a Normalizer reading from rawDir and writing to normalizedDir.
func New(rawDir, normalizedDir string, logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{rawDir: rawDir, normalizedDir: normalizedDir, logger: logger}
}

// Run normalizes every *.csv file in the raw directory. Output rows always
// carry plain dates; padded rows carry 0.0 for price, market cap and volume,
// which the weighting exclusion rules treat as "not yet listed".
func (n *Normalizer) Run(startDate time.Time) error {
	startDate = domain.Day(startDate)
	if err := os.MkdirAll(n.normalizedDir, 0o755); err != nil {
		return errors.Wrap(err, "create normalized dir")
	}

	entries, err := os.ReadDir(n.rawDir)
	if err != nil {
		return errors.Wrap(err, "read raw dir")
	}

	var processed int
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		if err := n.normalizeFile(entry.Name(), startDate); err != nil {
			return errors.Wrapf(err, "normalize %s", entry.Name())
		}
		processed++
	}
	if processed == 0 {
		return errors.Errorf("no csv files found in %s", n.rawDir)
	}
	return nil
}

func (n *Normalizer) normalizeFile(name string, startDate time.Time) error {
	f, err := os.Open(filepath.Join(n.rawDir, name))
	if err != nil {
		return errors.Wrap(err, "open raw file")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return errors.Wrap(err, "read raw csv")
	}
	if len(rows) < 2 {
		return errors.New("file has no data rows")
	}

	firstDate, err := parseRawDate(rows[1][0])
	if err != nil {
		return err
	}

	out := make([][]string, 0, len(rows))
	out = append(out, rows[0])
	for day := startDate; day.Before(firstDate); day = day.AddDate(0, 0, 1) {
		out = append(out, []string{day.Format(domain.DateFormat), "0.0", "0.0", "0.0"})
	}
	padded := len(out) - 1
	for _, row := range rows[1:] {
		day, err := parseRawDate(row[0])
		if err != nil {
			return err
		}
		rewritten := append([]string{day.Format(domain.DateFormat)}, row[1:]...)
		out = append(out, rewritten)
	}

	dst, err := os.Create(filepath.Join(n.normalizedDir, name))
	if err != nil {
		return errors.Wrap(err, "create normalized file")
	}
	defer dst.Close()

	writer := csv.NewWriter(dst)
	if err := writer.WriteAll(out); err != nil {
		return errors.Wrap(err, "write normalized csv")
	}

	n.logger.Info("normalized series",
		zap.String("file", name),
		zap.Int("padded_days", padded),
		zap.Time("first_raw_date", firstDate))
	return nil
}

func parseRawDate(field string) (time.Time, error) {
	field = strings.TrimSpace(field)
	if t, err := time.Parse(rawDateFormat, field); err == nil {
		return domain.Day(t), nil
	}
	t, err := time.Parse(domain.DateFormat, field)
	if err != nil {
		return time.Time{}, errors.Errorf("invalid raw date %q", field)
	}
	return domain.Day(t), nil
}
