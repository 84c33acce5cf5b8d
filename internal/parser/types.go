package parser

import (
	"github.com/anhkhoinguyen1310/class-roster/internal/model"
)

// Field 规范字段名
type Field string

const (
	FieldPersonFull    Field = "person_full"    // 学生全名
	FieldPersonFirst   Field = "person_first"   // 学生名
	FieldPersonLast    Field = "person_last"    // 学生姓
	FieldGroup         Field = "group"          // 班级
	FieldSupervisor    Field = "supervisor"     // 教师
	FieldSecondaryRole Field = "secondary_role" // 顾问
)

// FieldIndices 规范字段 → 列索引（0 基）；缺失的字段不在表中
type FieldIndices map[Field]int

// Has 字段是否解析到列
func (fi FieldIndices) Has(f Field) bool {
	_, ok := fi[f]
	return ok
}

// HasUsableName 是否解析到可用姓名（全名，或 姓+名 成对）
func (fi FieldIndices) HasUsableName() bool {
	if fi.Has(FieldPersonFull) {
		return true
	}
	return fi.Has(FieldPersonFirst) && fi.Has(FieldPersonLast)
}

// Metadata 从标题行提取的缺省值
// 仅当对应列值为空时才使用
type Metadata struct {
	GroupDefault      string `json:"groupDefault,omitempty"`
	SupervisorDefault string `json:"supervisorDefault,omitempty"`
}

// HeaderMatch 表头行候选匹配结果
type HeaderMatch struct {
	Row    int          `json:"row"` // 表头行索引（0 基）；-1 表示固定列兜底
	Fields FieldIndices `json:"fields"`
	Score  int          `json:"score"`
}

// headerPatterns 各字段的表头匹配词表（先精确后包含，均为小写比较）
var headerPatterns = map[Field][]string{
	FieldPersonFull: {
		"name", "student name", "student", "full name",
		"studentname", "student name(s)", "pupil",
	},
	FieldPersonFirst: {
		"first name", "first", "student first name", "given name",
	},
	FieldPersonLast: {
		"last name", "last", "surname", "student last name", "family name",
	},
	FieldGroup: {
		"class", "class id", "section", "grade",
		"class section", "class section id", "homeroom",
	},
	FieldSupervisor: {
		"teacher", "instructor", "teacher name", "homeroom teacher",
	},
	FieldSecondaryRole: {
		"advisor", "adviser", "counselor",
	},
}

// SheetDiagnostic 单个工作表的提取诊断（仅供检查，不影响结果正确性）
type SheetDiagnostic struct {
	SheetName string           `json:"sheetName"`
	Class     model.SheetClass `json:"class"`
	Evidence  string           `json:"evidence,omitempty"`
	HeaderRow int              `json:"headerRow"` // -1 = 无表头行
	Fields    map[string]int   `json:"fields,omitempty"`
	Metadata  *Metadata        `json:"metadata,omitempty"`
	Records   int              `json:"records"`
	Skipped   int              `json:"skippedRows"`
	Status    string           `json:"status"` // extracted/schedule/skipped/error
	Errors    []string         `json:"errors,omitempty"`
}

// Result 一次规范化运行的结果
type Result struct {
	Records  []model.Record    `json:"records"`
	Sheets   []SheetDiagnostic `json:"sheets"`
	Schedule ScheduleMap       `json:"schedule,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
}
