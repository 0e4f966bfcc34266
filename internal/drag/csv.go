package drag

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ReadCSV parses a two-column "Mach,Cd" table. The header row is required.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV: %w", ErrInvalidTable, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%w: empty drag table file", ErrInvalidTable)
	}

	header := records[0]
	if strings.ToLower(header[0]) != "mach" || strings.ToLower(header[1]) != "cd" {
		return nil, fmt.Errorf("%w: invalid header %v, expected: Mach,Cd", ErrInvalidTable, header)
	}

	mach := make([]float64, 0, len(records)-1)
	cd := make([]float64, 0, len(records)-1)
	for i, record := range records[1:] {
		m, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid mach at line %d: %v", ErrInvalidTable, i+2, err)
		}
		c, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid cd at line %d: %v", ErrInvalidTable, i+2, err)
		}
		mach = append(mach, m)
		cd = append(cd, c)
	}

	return NewTable(mach, cd)
}

// LoadFile reads a drag table from a CSV file on disk.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open drag table: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}
