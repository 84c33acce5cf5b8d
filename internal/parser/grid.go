package parser

import (
	"sort"
	"strings"

	"github.com/anhkhoinguyen1310/class-roster/internal/model"
)

// GridTransformer 矩阵表重整器
// 班级在列（首行），角色标签在行（第 0 列 teacher / student N），
// 重整为与 STANDARD 提取相同的逐条记录
type GridTransformer struct{}

// NewGridTransformer 创建重整器
func NewGridTransformer() *GridTransformer {
	return &GridTransformer{}
}

// Transform 重整为记录列表
func (t *GridTransformer) Transform(sheet *model.Sheet) []model.Record {
	if sheet.RowCount() == 0 {
		return nil
	}

	// 首行：各列班级名（第 0 列是标签列）
	header := sheet.RowText(0)
	groups := map[int]string{}
	for col := 1; col < len(header); col++ {
		if header[col] != "" {
			groups[col] = header[col]
		}
	}
	if len(groups) == 0 {
		return nil
	}
	cols := make([]int, 0, len(groups))
	for col := range groups {
		cols = append(cols, col)
	}
	sort.Ints(cols)

	// 每列可有多行 teacher，最终以 " / " 连接
	teachers := map[int][]string{}
	type personCell struct {
		col  int
		name string
	}
	var people []personCell

	for row := 1; row < sheet.RowCount(); row++ {
		label := strings.ToLower(sheet.Text(row, 0))
		switch {
		case strings.Contains(label, "teacher"):
			for _, col := range cols {
				if v := sheet.Text(row, col); v != "" {
					teachers[col] = append(teachers[col], v)
				}
			}
		case strings.Contains(label, "student"):
			for _, col := range cols {
				if v := sheet.Text(row, col); v != "" {
					people = append(people, personCell{col: col, name: v})
				}
			}
		}
	}

	records := make([]model.Record, 0, len(people))
	for _, p := range people {
		records = append(records, model.Record{
			PersonName:  CleanName(p.name),
			Group:       groups[p.col],
			Supervisor:  CleanSupervisor(strings.Join(teachers[p.col], " / ")),
			SourceSheet: sheet.Name,
		})
	}
	return records
}
