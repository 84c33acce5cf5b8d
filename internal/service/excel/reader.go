package excel

import (
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/anhkhoinguyen1310/class-roster/internal/model"
)

// Reader Excel 读取器：把工作簿读成只读的行列模型
type Reader struct{}

// NewReader 创建读取器
func NewReader() *Reader {
	return &Reader{}
}

// 常见日期写法（显示文本层面识别，JSON 导出时转 ISO-8601）
var dateLayouts = []string{
	"2006-01-02",
	"01-02-06",
	"1/2/06",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"2006-01-02 15:04:05",
}

// Read 读取整个工作簿
// 打不开按 SourceUnreadable 整体失败，空表不算错误
func (r *Reader) Read(reader io.Reader, filename string) (*model.Source, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, model.NewFailure(model.FailureSourceUnreadable, "open workbook: %v", err)
	}
	defer f.Close()

	src := &model.Source{Filename: filename}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			// 单表读取失败只丢该表
			continue
		}

		sheet := &model.Sheet{Name: name}
		for _, row := range rows {
			cells := make([]model.Cell, len(row))
			for i, text := range row {
				cells[i] = model.Cell{Text: text}
				if d, ok := parseDateText(text); ok {
					cells[i].Date = &d
				}
			}
			sheet.Rows = append(sheet.Rows, cells)
		}
		src.Sheets = append(src.Sheets, sheet)
	}

	if len(src.Sheets) == 0 {
		return nil, model.NewFailure(model.FailureSourceUnreadable, "workbook has no readable sheets")
	}
	return src, nil
}

// parseDateText 尝试按常见日期写法解析单元格文本
func parseDateText(text string) (time.Time, bool) {
	if len(text) < 6 {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, text); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}
