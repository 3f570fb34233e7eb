package attendance

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const reportSheet = "Attendance"

var reportHeader = []interface{}{"Date", "Student Name", "Student ID", "Status", "Time", "Remarks"}

// WriteReport writes `records` to w as an XLSX workbook, one row per record after a header row.
func WriteReport(w io.Writer, records []AttendanceRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return errors.Wrap(err, "naming report sheet")
	}
	if err := f.SetSheetRow(reportSheet, "A1", &reportHeader); err != nil {
		return errors.Wrap(err, "writing report header")
	}
	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{rec.Date, rec.StudentName, rec.StudentID, rec.Status, rec.Time, rec.Remarks}
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return errors.Wrapf(err, "writing report row %d", i+2)
		}
	}
	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "writing report")
	}
	return nil
}

// ReadReport parses a workbook written by WriteReport. Rows without a student id are skipped.
func ReadReport(r io.Reader) ([]AttendanceRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "opening report")
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("report does not contain any sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "reading rows of sheet %s", sheet)
	}

	records := make([]AttendanceRecord, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		cols := make([]string, len(reportHeader))
		copy(cols, row)
		if cols[2] == "" {
			continue
		}
		records = append(records, AttendanceRecord{
			Date:        cols[0],
			StudentName: cols[1],
			StudentID:   cols[2],
			Status:      cols[3],
			Time:        cols[4],
			Remarks:     cols[5],
		})
	}
	return records, nil
}

// Summary counts records per status.
func Summary(records []AttendanceRecord) map[string]int {
	counts := make(map[string]int)
	for _, rec := range records {
		counts[rec.Status]++
	}
	return counts
}
