package parser

import (
	"github.com/anhkhoinguyen1310/class-roster/internal/model"
)

// ROCLHeaderMatch ROCL 固定列布局的字段匹配
// 列固定：0=全名 1=班级 2=教师；withAdvisor 时 3=顾问
// 首行若像表头（第 0 列命中姓名词表）则跳过，否则从第 0 行取数
func ROCLHeaderMatch(sheet *model.Sheet, withAdvisor bool) HeaderMatch {
	fields := FieldIndices{
		FieldPersonFull: 0,
		FieldGroup:      1,
		FieldSupervisor: 2,
	}
	if withAdvisor {
		fields[FieldSecondaryRole] = 3
	}

	row := -1
	if sheet.RowCount() > 0 {
		first := NormalizeHeader(sheet.Text(0, 0))
		for _, p := range headerPatterns[FieldPersonFull] {
			if first == p {
				row = 0
				break
			}
		}
	}
	return HeaderMatch{Row: row, Fields: fields}
}
