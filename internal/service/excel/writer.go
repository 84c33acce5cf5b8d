package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/anhkhoinguyen1310/class-roster/internal/model"
	"github.com/anhkhoinguyen1310/class-roster/internal/roster"
)

// CleanedSheetName 规范输出表名
const CleanedSheetName = "Cleaned Data"

// Writer 结果导出器
type Writer struct{}

// NewWriter 创建导出器
func NewWriter() *Writer {
	return &Writer{}
}

// WriteCanonical 导出规范三列表：Supervisor, PersonName, Group
func (w *Writer) WriteCanonical(records []model.Record) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", CleanedSheetName)

	headers := []string{"Supervisor", "PersonName", "Group"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(CleanedSheetName, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	f.SetRowStyle(CleanedSheetName, 1, 1, headerStyle)

	for i, r := range records {
		row := i + 2
		f.SetCellValue(CleanedSheetName, fmt.Sprintf("A%d", row), r.Supervisor)
		f.SetCellValue(CleanedSheetName, fmt.Sprintf("B%d", row), r.PersonName)
		f.SetCellValue(CleanedSheetName, fmt.Sprintf("C%d", row), r.Group)
	}

	f.SetColWidth(CleanedSheetName, "A", "C", 22)
	return f, nil
}

// WriteGrouped 按班级分表导出
// 每组一张表：两列表头 + 人员行 + "Supervisor:" / "SecondaryRole:" 页脚
func (w *Writer) WriteGrouped(groups []roster.ClassGroup) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	used := map[string]bool{}
	for _, g := range groups {
		sheetName := groupSheetName(g.Name, used)
		used[sheetName] = true
		if _, err := f.NewSheet(sheetName); err != nil {
			return nil, fmt.Errorf("create sheet %q: %w", sheetName, err)
		}

		f.SetCellValue(sheetName, "A1", "PersonName")
		f.SetCellValue(sheetName, "B1", "Group")
		f.SetRowStyle(sheetName, 1, 1, headerStyle)

		row := 2
		for _, person := range g.People {
			f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), person)
			f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), g.Name)
			row++
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), footerLine("Supervisor", g.Supervisor))
		row++
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), footerLine("SecondaryRole", g.SecondaryRole))

		f.SetColWidth(sheetName, "A", "B", 22)
	}

	// 默认表只在没有任何分组时保留
	if len(groups) > 0 {
		f.DeleteSheet("Sheet1")
	}
	return f, nil
}

// groupSheetName 生成合法且不重复的表名（"Class " 前缀 + 清理后的组名）
func groupSheetName(group string, used map[string]bool) string {
	name := roster.SanitizeSheetName("Class " + group)
	if !used[name] {
		return name
	}
	for i := 2; ; i++ {
		suffix := fmt.Sprintf(" %d", i)
		candidate := roster.SanitizeSheetName("Class " + group)
		if runes := []rune(candidate); len(runes)+len(suffix) > 31 {
			candidate = string(runes[:31-len(suffix)])
		}
		candidate += suffix
		if !used[candidate] {
			return candidate
		}
	}
}

// footerLine 页脚行文本（值为空时只留标签）
func footerLine(label, value string) string {
	if value == "" {
		return label + ":"
	}
	return label + ": " + value
}
