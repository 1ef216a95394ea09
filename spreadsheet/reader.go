package spreadsheet

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"hermannm.dev/wrap"
)

// Row-by-row access to the first sheet of a tabular source. The first row is the header.
type Reader interface {
	ReadHeaderRow() (row []string, err error)
	// Row numbers start at 1 for the header row. done is true once the source is exhausted.
	ReadRow() (row []string, rowNumber int, done bool, err error)
	// How numeric cells in date columns are to be read.
	SerialDates() SerialDateSystem
	Close() error
}

type Format uint8

const (
	FormatCSV Format = iota + 1
	FormatXLSX
)

// The epoch that numeric date cells count days from, if any.
type SerialDateSystem uint8

const (
	// Numeric date cells are not dates.
	NoSerialDates SerialDateSystem = iota
	// Excel's default system, counting from 1899-12-30.
	Excel1900
	// Counting from 1904-01-01, used by workbooks saved with the 1904 date system.
	Excel1904
)

func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv", ".tsv", ".txt":
		return FormatCSV, nil
	default:
		return 0, fmt.Errorf("unsupported spreadsheet file extension '%s'", ext)
	}
}

// Opens the spreadsheet at path with a reader chosen by file extension. If the file does not
// exist, the returned error matches fs.ErrNotExist.
func Open(path string) (Reader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, wrap.Errorf(err, "failed to access spreadsheet '%s'", path)
	}
	if info.IsDir() {
		return nil, wrap.Errorf(fs.ErrNotExist, "spreadsheet path '%s' is a directory", path)
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatXLSX:
		return openExcel(path)
	case FormatCSV:
		file, err := os.Open(path)
		if err != nil {
			return nil, wrap.Errorf(err, "failed to open CSV file '%s'", path)
		}

		reader, err := NewCSVReader(file)
		if err != nil {
			file.Close()
			return nil, err
		}
		reader.closer = file
		return reader, nil
	}

	return nil, errors.New("unreachable spreadsheet format")
}

// Reader over rows already held in memory, as returned by excelize.
type rowsReader struct {
	rows        [][]string
	currentRow  int
	serialDates SerialDateSystem
}

func (reader *rowsReader) ReadRow() (row []string, rowNumber int, done bool, err error) {
	if reader.currentRow >= len(reader.rows) {
		return nil, 0, true, nil
	}

	row = reader.rows[reader.currentRow]
	reader.currentRow++
	return row, reader.currentRow, false, nil
}

func (reader *rowsReader) ReadHeaderRow() ([]string, error) {
	return readHeaderRow(reader)
}

func (reader *rowsReader) SerialDates() SerialDateSystem {
	return reader.serialDates
}

func (reader *rowsReader) Close() error {
	return nil
}

func readHeaderRow(reader Reader) ([]string, error) {
	row, rowNumber, done, err := reader.ReadRow()
	if done {
		return nil, errors.New("spreadsheet ended before header row")
	}
	if err != nil {
		return nil, err
	}
	if rowNumber != 1 {
		return nil, errors.New("tried to read header row after reading previous rows")
	}

	header := make([]string, len(row))
	copy(header, row)
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return header, nil
}
