package reconcile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Source provides one provider's exported data files for a ticker.
type Source interface {
	// Historical returns the daily OHLC and volume table.
	Historical(ticker string) (*Table, error)
	// Dividends returns the per-share dividend table.
	Dividends(ticker string) (*Table, error)
	// Fundamentals returns the raw fundamentals document.
	Fundamentals(ticker string) ([]byte, error)
	// Statement returns one financial statement section as a table.
	// Section names use the underscore form, e.g. "Income_Statement".
	Statement(ticker, section string) (*Table, error)
}

// DirSource reads a provider's export directory laid out as
// historical_ohlc_{ticker}.csv, dividends_{ticker}.csv,
// fundamentals_{ticker}.json and {section}_{ticker}.csv.
type DirSource struct {
	dir     string
	rewrite func(ticker string) string
}

// NewEODHDSource reads EODHD exports from dir. Tickers are used as
// given, with their exchange suffix.
func NewEODHDSource(dir string) *DirSource {
	return &DirSource{dir: dir, rewrite: func(t string) string { return t }}
}

// NewComparatorSource reads comparator exports from dir. The comparator
// names its files with its own ticker convention, so EODHD exchange
// suffixes are rewritten: ".US" is dropped and ".LSE" becomes ".L".
func NewComparatorSource(dir string) *DirSource {
	return &DirSource{dir: dir, rewrite: func(t string) string {
		t = strings.TrimSuffix(t, ".US")
		if s, ok := strings.CutSuffix(t, ".LSE"); ok {
			return s + ".L"
		}
		return t
	}}
}

func (s *DirSource) Historical(ticker string) (*Table, error) {
	return s.readCSV("historical_ohlc_" + s.rewrite(ticker) + ".csv")
}

func (s *DirSource) Dividends(ticker string) (*Table, error) {
	return s.readCSV("dividends_" + s.rewrite(ticker) + ".csv")
}

func (s *DirSource) Fundamentals(ticker string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.dir, "fundamentals_"+s.rewrite(ticker)+".json"))
}

func (s *DirSource) Statement(ticker, section string) (*Table, error) {
	return s.readCSV(strings.ToLower(section) + "_" + s.rewrite(ticker) + ".csv")
}

func (s *DirSource) readCSV(name string) (*Table, error) {
	path := filepath.Join(s.dir, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ReadCSVTable(f)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %q: %w", path, err)
	}
	return t, nil
}
