package spreadsheet

import (
	"encoding/csv"
	"errors"
	"io"

	"hermannm.dev/wrap"
)

const maxRowsToCheckForDelimiter = 20

type CSVReader struct {
	inner      *csv.Reader
	file       io.ReadSeeker
	closer     io.Closer
	currentRow int
}

func NewCSVReader(csvFile io.ReadSeeker) (*CSVReader, error) {
	delimiter, err := DeduceFieldDelimiter(
		csvFile,
		maxRowsToCheckForDelimiter,
		DefaultDelimitersToCheck,
	)
	if err != nil {
		return nil, wrap.Error(err, "failed to deduce CSV field delimiter")
	}

	return &CSVReader{inner: newCSVParser(csvFile, delimiter), file: csvFile}, nil
}

func newCSVParser(source io.Reader, delimiter rune) *csv.Reader {
	parser := csv.NewReader(source)
	parser.Comma = delimiter
	// Rows of any length are accepted here, fields past the end count as blank
	parser.FieldsPerRecord = -1
	parser.ReuseRecord = true
	return parser
}

func (reader *CSVReader) ReadRow() (row []string, rowNumber int, done bool, err error) {
	row, err = reader.inner.Read()
	switch {
	case errors.Is(err, io.EOF):
		return nil, 0, true, nil
	case err != nil:
		return nil, 0, false, err
	}

	reader.currentRow++
	return row, reader.currentRow, false, nil
}

func (reader *CSVReader) ReadHeaderRow() ([]string, error) {
	return readHeaderRow(reader)
}

func (reader *CSVReader) ResetReadPosition() error {
	if _, err := reader.file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	reader.currentRow = 0
	reader.inner = newCSVParser(reader.file, reader.inner.Comma)
	return nil
}

func (*CSVReader) SerialDates() SerialDateSystem {
	return NoSerialDates
}

func (reader *CSVReader) Close() error {
	if reader.closer == nil {
		return nil
	}
	return reader.closer.Close()
}
