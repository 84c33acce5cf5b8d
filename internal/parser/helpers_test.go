package parser

import (
	"github.com/anhkhoinguyen1310/class-roster/internal/model"
)

// sheetOf 按行文本构造工作表（测试用）
func sheetOf(name string, rows ...[]string) *model.Sheet {
	s := &model.Sheet{Name: name}
	for _, row := range rows {
		cells := make([]model.Cell, len(row))
		for i, text := range row {
			cells[i] = model.Cell{Text: text}
		}
		s.Rows = append(s.Rows, cells)
	}
	return s
}

func sourceOf(sheets ...*model.Sheet) *model.Source {
	return &model.Source{Filename: "test.xlsx", Sheets: sheets}
}
