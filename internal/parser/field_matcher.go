package parser

import (
	"strings"

	"github.com/anhkhoinguyen1310/class-roster/internal/model"
)

// HeaderFieldMatcher 表头字段匹配器
// 在前 10 行中定位表头行，并把列标签映射到规范字段槽位
type HeaderFieldMatcher struct{}

// NewHeaderFieldMatcher 创建匹配器
func NewHeaderFieldMatcher() *HeaderFieldMatcher {
	return &HeaderFieldMatcher{}
}

// 质量评分用的精确词表
var (
	scoreFullNameExact = map[string]bool{
		"name": true, "student name": true, "student": true, "full name": true,
	}
	scoreSupervisorExact = map[string]bool{"teacher": true}
	scoreGroupExact      = map[string]bool{
		"class": true, "class id": true, "section": true,
	}
)

// Match 定位表头行并解析字段列
// 无任何候选时回退固定列假设：0=全名 1=班级 2=教师，无表头行（Row = -1）
func (m *HeaderFieldMatcher) Match(sheet *model.Sheet) HeaderMatch {
	best := HeaderMatch{Row: -1, Score: -1}

	limit := sheet.RowCount()
	if limit > 10 {
		limit = 10
	}
	for row := 0; row < limit; row++ {
		cells := sheet.RowText(row)
		if len(cells) == 0 {
			continue
		}
		normalized := make([]string, len(cells))
		for i, c := range cells {
			normalized[i] = NormalizeHeader(c)
		}

		fields := matchRowFields(normalized)
		if !fields.HasUsableName() {
			continue
		}

		score := scoreCandidate(fields, normalized)
		// 同分保留更早的行
		if score > best.Score {
			best = HeaderMatch{Row: row, Fields: fields, Score: score}
		}
	}

	if best.Row >= 0 {
		// 全名与 姓+名 同时命中时，优先 姓+名，丢弃全名列
		if best.Fields.Has(FieldPersonFirst) && best.Fields.Has(FieldPersonLast) {
			delete(best.Fields, FieldPersonFull)
		}
		return best
	}

	// 空表没有列可供假设，映射失败交由上层处理
	if sheet.RowCount() == 0 {
		return HeaderMatch{Row: -1, Fields: FieldIndices{}}
	}

	// 固定列兜底
	return HeaderMatch{
		Row: -1,
		Fields: FieldIndices{
			FieldPersonFull: 0,
			FieldGroup:      1,
			FieldSupervisor: 2,
		},
	}
}

// matchRowFields 单行两遍匹配：先精确相等，再词表子串包含，取首个命中列
func matchRowFields(normalized []string) FieldIndices {
	fields := FieldIndices{}
	for field, patterns := range headerPatterns {
		if idx, ok := matchField(normalized, patterns); ok {
			fields[field] = idx
		}
	}
	return fields
}

// matchField 先精确后包含的两遍匹配
func matchField(normalized []string, patterns []string) (int, bool) {
	for col, text := range normalized {
		if text == "" {
			continue
		}
		for _, p := range patterns {
			if text == p {
				return col, true
			}
		}
	}
	for col, text := range normalized {
		if text == "" {
			continue
		}
		for _, p := range patterns {
			if strings.Contains(text, p) {
				return col, true
			}
		}
	}
	return 0, false
}

// scoreCandidate 表头行质量评分：
// 全名列文本精确命中 +2；教师列精确 "teacher" +2；班级列精确命中 +1
func scoreCandidate(fields FieldIndices, normalized []string) int {
	score := 0
	if idx, ok := fields[FieldPersonFull]; ok && idx < len(normalized) && scoreFullNameExact[normalized[idx]] {
		score += 2
	}
	if idx, ok := fields[FieldSupervisor]; ok && idx < len(normalized) && scoreSupervisorExact[normalized[idx]] {
		score += 2
	}
	if idx, ok := fields[FieldGroup]; ok && idx < len(normalized) && scoreGroupExact[normalized[idx]] {
		score += 1
	}
	return score
}
