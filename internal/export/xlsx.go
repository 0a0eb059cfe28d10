package export

import (
	"lexdraft/internal/domain"

	"github.com/xuri/excelize/v2"
)

const listSheet = "Documents"

var listHeadings = []string{"Title", "Status", "Template", "Created", "Updated"}

// ExportList renders a dashboard listing as a spreadsheet, one row per document
func (e *Exporter) ExportList(docs []domain.Document) (*File, error) {
	data, err := renderList(docs)
	if err != nil {
		return nil, &Error{Format: FormatXLSX, Err: err}
	}
	return &File{
		Name:        FileName("documents", e.now(), FormatXLSX),
		ContentType: contentTypeXLSX,
		Bytes:       data,
	}, nil
}

func renderList(docs []domain.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", listSheet); err != nil {
		return nil, err
	}

	for col, h := range listHeadings {
		if err := setCell(f, col+1, 1, h); err != nil {
			return nil, err
		}
	}

	for i, d := range docs {
		row := i + 2
		values := []any{
			d.Title,
			string(d.Status),
			d.TemplateID,
			d.CreatedAt.UTC().Format("2006-01-02 15:04"),
			d.UpdatedAt.UTC().Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			if err := setCell(f, col+1, row, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(listSheet, cell, value)
}
