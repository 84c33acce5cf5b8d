package parser

import (
	"regexp"
	"strings"

	"github.com/anhkhoinguyen1310/class-roster/internal/model"
)

// MetadataExtractor 标题行元数据提取器
// 扫描前 10 行第 0 列的自由文本，识别列外声明的班级/教师
type MetadataExtractor struct{}

// NewMetadataExtractor 创建提取器
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

// 三种标题写法，按优先级逐行匹配：
//  1. "Class 6.1 / Teacher(s): Ms Smith"  同时给出班级和教师
//  2. "Teacher: Ms Smith"                 仅教师
//  3. "Class: 6.1"                        仅班级
var (
	metaClassTeacherRe = regexp.MustCompile(`(?i)^class\s+([^/]+?)\s*/\s*teachers?\s*[:\-]?\s*(.+)$`)
	metaTeacherRe      = regexp.MustCompile(`(?i)^teachers?\s*[:\-]\s*(.*)$`)
	metaClassRe        = regexp.MustCompile(`(?i)^class\s*[:\-]\s*(.*)$`)
)

// Extract 提取元数据
// 同一字段后出现的匹配覆盖先出现的（last-wins，与逐行扫描行为一致）
func (e *MetadataExtractor) Extract(sheet *model.Sheet) Metadata {
	meta := Metadata{}

	limit := sheet.RowCount()
	if limit > 10 {
		limit = 10
	}
	for row := 0; row < limit; row++ {
		text := sheet.Text(row, 0)
		if text == "" {
			continue
		}

		if m := metaClassTeacherRe.FindStringSubmatch(text); m != nil {
			meta.GroupDefault = strings.TrimSpace(m[1])
			meta.SupervisorDefault = strings.TrimSpace(m[2])
			continue
		}
		if m := metaTeacherRe.FindStringSubmatch(text); m != nil {
			meta.SupervisorDefault = strings.TrimSpace(m[1])
			continue
		}
		if m := metaClassRe.FindStringSubmatch(text); m != nil {
			meta.GroupDefault = strings.TrimSpace(m[1])
		}
	}

	return meta
}

// isMetadataText 文本是否命中任一标题写法（用于数据行过滤，避免把页脚当学生）
func isMetadataText(text string) bool {
	return metaClassTeacherRe.MatchString(text) ||
		metaTeacherRe.MatchString(text) ||
		metaClassRe.MatchString(text)
}
