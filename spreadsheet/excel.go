package spreadsheet

import (
	"errors"

	"github.com/xuri/excelize/v2"
	"hermannm.dev/wrap"
)

func openExcel(path string) (Reader, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, wrap.Errorf(err, "failed to open Excel workbook '%s'", path)
	}
	defer file.Close()

	sheet := file.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("no worksheet found in Excel workbook")
	}

	props, err := file.GetWorkbookProps()
	if err != nil {
		return nil, wrap.Error(err, "failed to read Excel workbook properties")
	}
	dateSystem := Excel1900
	if props.Date1904 != nil && *props.Date1904 {
		dateSystem = Excel1904
	}

	// Raw values keep dates as serial numbers instead of whatever display format the cell has
	rows, err := file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, wrap.Errorf(err, "failed to read rows of worksheet '%s'", sheet)
	}

	return &rowsReader{rows: rows, serialDates: dateSystem}, nil
}
