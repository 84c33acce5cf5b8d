package model

import (
	"strings"
	"time"
)

// SheetClass 工作表类型（用于输入容错识别）
type SheetClass string

const (
	// SheetClassSchedule 课程表：班级 → 教师 对照表
	SheetClassSchedule SheetClass = "schedule"
	// SheetClassGrid 矩阵表：班级为列，教师/学生为行
	SheetClassGrid SheetClass = "grid"
	// SheetClassStandard 标准表：一行一条记录
	SheetClassStandard SheetClass = "standard"
	// SheetClassSkip 非数据表（说明页等），跳过
	SheetClassSkip SheetClass = "skip"
)

// SheetClassification 单个工作表的识别结果
type SheetClassification struct {
	SheetName string     `json:"sheetName"`
	Class     SheetClass `json:"class"`
	Evidence  string     `json:"evidence"` // 诊断用，下游不依赖
}

// Cell 单元格标量值
// Text 为展示文本；日期单元格额外携带解析后的时间（JSON 导出使用 ISO-8601）
type Cell struct {
	Text string     `json:"text"`
	Date *time.Time `json:"date,omitempty"`
}

// Sheet 一个工作表：有序行、每行有序单元格
// 读入后不再修改
type Sheet struct {
	Name string   `json:"name"`
	Rows [][]Cell `json:"rows"`
}

// RowCount 行数
func (s *Sheet) RowCount() int {
	return len(s.Rows)
}

// Text 指定位置的单元格文本（去除首尾空格；越界返回空串）
func (s *Sheet) Text(row, col int) string {
	if row < 0 || row >= len(s.Rows) {
		return ""
	}
	r := s.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col].Text)
}

// RowText 整行文本（逐格去除首尾空格）
func (s *Sheet) RowText(row int) []string {
	if row < 0 || row >= len(s.Rows) {
		return nil
	}
	out := make([]string, len(s.Rows[row]))
	for i, c := range s.Rows[row] {
		out[i] = strings.TrimSpace(c.Text)
	}
	return out
}

// Source 一个工作簿：有序的命名工作表集合（只读）
type Source struct {
	Filename string   `json:"filename"`
	Sheets   []*Sheet `json:"sheets"`
}

// SheetByName 按名称查找工作表
func (s *Source) SheetByName(name string) *Sheet {
	for _, sh := range s.Sheets {
		if sh.Name == name {
			return sh
		}
	}
	return nil
}
