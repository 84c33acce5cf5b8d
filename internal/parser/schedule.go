package parser

import (
	"sort"
	"strings"

	"github.com/anhkhoinguyen1310/class-roster/internal/model"
)

// ScheduleMap 班级代码 → 教师 查找表
// 组合代码（"8.3 / 8.1"）整体与各拆分项都会入表，指向同一教师
type ScheduleMap map[string]string

// ScheduleMapBuilder 课程表解析器
type ScheduleMapBuilder struct{}

// NewScheduleMapBuilder 创建解析器
func NewScheduleMapBuilder() *ScheduleMapBuilder {
	return &ScheduleMapBuilder{}
}

// Build 解析 SCHEDULE 表为查找表
// 定位同时含 class 与 teacher 词的表头行，取各自首次出现的列
func (b *ScheduleMapBuilder) Build(sheet *model.Sheet) ScheduleMap {
	headerRow, classCol, teacherCol := b.findHeader(sheet)
	if headerRow < 0 {
		return ScheduleMap{}
	}

	m := ScheduleMap{}
	for row := headerRow + 1; row < sheet.RowCount(); row++ {
		classText := sheet.Text(row, classCol)
		teacherText := sheet.Text(row, teacherCol)
		if classText == "" || teacherText == "" {
			continue
		}
		// 重复表头行
		if strings.EqualFold(classText, "class") {
			continue
		}

		teacher := normalizeScheduleTeacher(teacherText)
		if teacher == "" {
			continue
		}

		m[classText] = teacher
		if strings.Contains(classText, "/") {
			for _, part := range strings.Split(classText, "/") {
				part = strings.TrimSpace(part)
				if part != "" {
					m[part] = teacher
				}
			}
		}
	}
	return m
}

// findHeader 定位表头行及 class/teacher 列
func (b *ScheduleMapBuilder) findHeader(sheet *model.Sheet) (row, classCol, teacherCol int) {
	for r := 0; r < sheet.RowCount(); r++ {
		classCol, teacherCol = -1, -1
		for c, text := range sheet.RowText(r) {
			token := strings.ToLower(text)
			if classCol < 0 && strings.Contains(token, "class") {
				classCol = c
			}
			if teacherCol < 0 && strings.Contains(token, "teacher") {
				teacherCol = c
			}
		}
		if classCol >= 0 && teacherCol >= 0 {
			return r, classCol, teacherCol
		}
	}
	return -1, -1, -1
}

// normalizeScheduleTeacher 课程表内教师文本清理：换行转 ", "，折叠双空格
func normalizeScheduleTeacher(s string) string {
	s = strings.ReplaceAll(s, "\n", ", ")
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return strings.TrimSpace(s)
}

// Lookup 先精确查，未命中再按年级前缀兜底
func (m ScheduleMap) Lookup(group string) string {
	if teacher, ok := m[group]; ok {
		return teacher
	}
	return m.lookupByGrade(group)
}

// lookupByGrade 年级前缀兜底：取查询串中第一段数字作为年级，
// 收集所有 "<grade>." 前缀或等于 "<grade>" 的键，去重后以 " / " 连接
// 键按字典序遍历，保证结果确定
func (m ScheduleMap) lookupByGrade(group string) string {
	grade := firstDigitRun(group)
	if grade == "" {
		return ""
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	seen := map[string]bool{}
	var teachers []string
	for _, k := range keys {
		if k == grade || strings.HasPrefix(k, grade+".") {
			t := m[k]
			if t != "" && !seen[t] {
				seen[t] = true
				teachers = append(teachers, t)
			}
		}
	}
	return strings.Join(teachers, " / ")
}
