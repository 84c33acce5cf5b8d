package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/anhkhoinguyen1310/class-roster/internal/model"
)

// SheetClassifier 工作表类型识别器
// 规则按固定顺序求值，先命中先返回：SKIP → SCHEDULE → GRID → STANDARD
type SheetClassifier struct{}

// NewSheetClassifier 创建识别器
func NewSheetClassifier() *SheetClassifier {
	return &SheetClassifier{}
}

// skipNameKeywords 非数据表名称关键词（小写包含匹配）
var skipNameKeywords = []string{
	"instructions", "notes", "readme", "info", "help",
	"template", "example", "summary", "cover",
}

// scheduleKeywords 课程表相关关键词
var scheduleKeywords = []string{"time", "schedule", "transition", "photo"}

var (
	studentLabelRe = regexp.MustCompile(`^student\s*\d+`)
	groupCodeRe    = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// Classify 识别工作表类型
func (c *SheetClassifier) Classify(sheet *model.Sheet) model.SheetClassification {
	result := model.SheetClassification{SheetName: sheet.Name}

	// 表名含非数据关键词，直接跳过（内容无关）
	lowerName := strings.ToLower(sheet.Name)
	for _, kw := range skipNameKeywords {
		if strings.Contains(lowerName, kw) {
			result.Class = model.SheetClassSkip
			result.Evidence = fmt.Sprintf("sheet name contains %q", kw)
			return result
		}
	}

	if ev, ok := c.looksLikeSchedule(sheet); ok {
		result.Class = model.SheetClassSchedule
		result.Evidence = ev
		return result
	}

	if ev, ok := c.looksLikeGrid(sheet); ok {
		result.Class = model.SheetClassGrid
		result.Evidence = ev
		return result
	}

	result.Class = model.SheetClassStandard
	return result
}

// looksLikeSchedule 课程表判定：前 10 行出现 class 与 teacher 两类词，
// 且（含课程表关键词 或 总行数 < 20）
func (c *SheetClassifier) looksLikeSchedule(sheet *model.Sheet) (string, bool) {
	hasClass := false
	hasTeacher := false
	hasScheduleKeyword := false

	limit := sheet.RowCount()
	if limit > 10 {
		limit = 10
	}
	for row := 0; row < limit; row++ {
		for _, cell := range sheet.RowText(row) {
			token := strings.ToLower(cell)
			if token == "" {
				continue
			}
			if strings.Contains(token, "class") {
				hasClass = true
			}
			if strings.Contains(token, "teacher") {
				hasTeacher = true
			}
			if ContainsAny(token, scheduleKeywords) {
				hasScheduleKeyword = true
			}
		}
	}

	if !hasClass || !hasTeacher {
		return "", false
	}
	if hasScheduleKeyword {
		return "class+teacher tokens with schedule keyword", true
	}
	if sheet.RowCount() < 20 {
		return fmt.Sprintf("class+teacher tokens in short sheet (%d rows)", sheet.RowCount()), true
	}
	return "", false
}

// looksLikeGrid 矩阵表判定：
// 首行第 1~4 列中 ≥2 个班级标识；或 2~10 行的第 0 列同时出现 teacher 标签和 ≥3 个 "student N" 标签
func (c *SheetClassifier) looksLikeGrid(sheet *model.Sheet) (string, bool) {
	groupCells := 0
	for col := 1; col < 5; col++ {
		if isGroupIndicator(sheet.Text(0, col)) {
			groupCells++
		}
	}
	if groupCells >= 2 {
		return fmt.Sprintf("%d group labels in first row", groupCells), true
	}

	teacherLabels := 0
	studentLabels := 0
	limit := sheet.RowCount()
	if limit > 10 {
		limit = 10
	}
	for row := 1; row < limit; row++ {
		label := strings.ToLower(sheet.Text(row, 0))
		if label == "" {
			continue
		}
		if strings.Contains(label, "teacher") {
			teacherLabels++
		}
		if studentLabelRe.MatchString(label) {
			studentLabels++
		}
	}
	if teacherLabels > 0 && studentLabels >= 3 {
		return fmt.Sprintf("column 0 has teacher label and %d student labels", studentLabels), true
	}
	return "", false
}

// isGroupIndicator 是否班级/年级标识（如 "Class A" / "Grade 6" / "6.1"）
func isGroupIndicator(text string) bool {
	token := strings.ToLower(strings.TrimSpace(text))
	if token == "" {
		return false
	}
	if strings.Contains(token, "class") || strings.Contains(token, "grade") || strings.Contains(token, "section") {
		return true
	}
	return groupCodeRe.MatchString(token)
}
