package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"course-admin-go/internal/classes"
	"course-admin-go/internal/courses"
	"course-admin-go/internal/model"
	"course-admin-go/internal/table"
	"github.com/xuri/excelize/v2"
)

type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

const dateLayout = "02/01/2006 15:04"

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", CSV:
		return CSV, nil
	case XLSX:
		return XLSX, nil
	}
	return "", fmt.Errorf("unsupported export format: %q", s)
}

func (f Format) ContentType() string {
	if f == XLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Sheet is a table flattened to display strings, header first.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

func header(columns []table.Column) []string {
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		out = append(out, c.Title)
	}
	return out
}

func CourseSheet(list []model.Course, location *time.Location) Sheet {
	s := Sheet{Name: "Cursos", Header: header(courses.Columns)}
	for _, c := range list {
		private := "Não"
		if c.Private {
			private = "Sim"
		}
		s.Rows = append(s.Rows, []string{
			c.Title,
			c.Start.In(location).Format(dateLayout),
			c.End.In(location).Format(dateLayout),
			private,
		})
	}
	return s
}

func ClassSheet(course model.Course, rows []classes.Row) Sheet {
	s := Sheet{Name: "Turmas de " + course.Title, Header: header(classes.Columns)}
	for _, r := range rows {
		s.Rows = append(s.Rows, []string{
			strconv.Itoa(r.Vacancies),
			r.Room,
			r.Shift,
			r.Time,
			r.Instructor,
		})
	}
	return s
}

func Write(w io.Writer, format Format, s Sheet) error {
	switch format {
	case CSV:
		return writeCSV(w, s)
	case XLSX:
		return writeXLSX(w, s)
	}
	return fmt.Errorf("unsupported export format: %q", format)
}

func writeCSV(w io.Writer, s Sheet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(s.Header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	if err := cw.WriteAll(s.Rows); err != nil {
		return fmt.Errorf("writing csv rows: %w", err)
	}
	return nil
}

// Excel caps sheet names at 31 characters and forbids a few symbols.
func sheetName(name string) string {
	name = strings.Trim(strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '-'
		}
		return r
	}, name), "'")
	if name == "" {
		name = "Planilha"
	}
	r := []rune(name)
	if len(r) > 31 {
		r = r[:31]
	}
	return string(r)
}

func writeXLSX(w io.Writer, s Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	name := sheetName(s.Name)
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]interface{}, 0, len(s.Header))
	for _, h := range s.Header {
		header = append(header, h)
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("writing xlsx header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(s.Header), 1)
	if err != nil {
		return fmt.Errorf("locating header cell: %w", err)
	}
	if err := f.SetCellStyle(name, "A1", last, bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, row := range s.Rows {
		cells := make([]interface{}, 0, len(row))
		for _, v := range row {
			cells = append(cells, v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("locating row %d: %w", i, err)
		}
		if err := f.SetSheetRow(name, cell, &cells); err != nil {
			return fmt.Errorf("writing xlsx row %d: %w", i, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing xlsx: %w", err)
	}
	return nil
}
