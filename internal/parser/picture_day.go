package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/anhkhoinguyen1310/class-roster/internal/model"
)

// PictureDayExtractor Picture Day 多表格式提取器
// 年级分表（首列=名，次列=姓，第三列=年级）+ 课程表，学生按年级
// 轮转分配到班级；无可分配班级时以年级作为班级、教师留空
type PictureDayExtractor struct {
	classifier *SheetClassifier
	schedules  *ScheduleMapBuilder
}

// NewPictureDayExtractor 创建提取器
func NewPictureDayExtractor() *PictureDayExtractor {
	return &PictureDayExtractor{
		classifier: NewSheetClassifier(),
		schedules:  NewScheduleMapBuilder(),
	}
}

// gradeSheetKeywords 年级表名称特征
var gradeSheetKeywords = []string{"6th", "7th", "8th", "grade"}

// pdStudent 去重后的学生（sheet 为首次出现的来源表）
type pdStudent struct {
	name  string
	grade string
	sheet string
}

// Extract 提取整个工作簿
func (e *PictureDayExtractor) Extract(src *model.Source) *Result {
	result := &Result{Schedule: ScheduleMap{}}

	// 先收集课程表，再扫年级表
	var gradeSheets []*model.Sheet
	for _, sheet := range src.Sheets {
		cls := e.classifier.Classify(sheet)
		diag := SheetDiagnostic{SheetName: sheet.Name, Class: cls.Class, Evidence: cls.Evidence, HeaderRow: 0}

		switch {
		case cls.Class == model.SheetClassSchedule:
			m := e.schedules.Build(sheet)
			for k, v := range m {
				result.Schedule[k] = v
			}
			diag.Status = "schedule"
			diag.Records = len(m)
		case cls.Class == model.SheetClassSkip:
			diag.Status = "skipped"
		case isGradeSheetName(sheet.Name):
			gradeSheets = append(gradeSheets, sheet)
			diag.Status = "extracted"
		default:
			diag.Status = "skipped"
			diag.Errors = []string{"not a grade sheet"}
		}
		result.Sheets = append(result.Sheets, diag)
	}

	students := e.collectStudents(gradeSheets)
	records := e.assignClasses(students, result.Schedule)
	result.Records = records

	// 回填各年级表的记录数
	for i := range result.Sheets {
		if result.Sheets[i].Status == "extracted" {
			result.Sheets[i].Records = countBySheet(records, result.Sheets[i].SheetName)
		}
	}
	if len(records) == 0 {
		result.Warnings = append(result.Warnings, "normalization produced 0 records")
	}
	return result
}

// isGradeSheetName 表名是否年级表
func isGradeSheetName(name string) bool {
	return ContainsAny(strings.ToLower(name), gradeSheetKeywords)
}

// collectStudents 收集学生并按 姓|名|年级 去重（不区分大小写）
func (e *PictureDayExtractor) collectStudents(sheets []*model.Sheet) []pdStudent {
	seen := map[string]bool{}
	var students []pdStudent

	for _, sheet := range sheets {
		// 首行为表头，数据从第 1 行起；固定列：0=名 1=姓 2=年级
		for row := 1; row < sheet.RowCount(); row++ {
			first := CleanName(sheet.Text(row, 0))
			last := CleanName(sheet.Text(row, 1))
			grade := sheet.Text(row, 2)
			if first == "" || last == "" {
				continue
			}

			key := fmt.Sprintf("%s|%s|%s", strings.ToUpper(first), strings.ToUpper(last), grade)
			if seen[key] {
				continue
			}
			seen[key] = true

			students = append(students, pdStudent{
				name:  strings.TrimSpace(first + " " + last),
				grade: grade,
				sheet: sheet.Name,
			})
		}
	}
	return students
}

// assignClasses 按年级轮转分配班级
func (e *PictureDayExtractor) assignClasses(students []pdStudent, schedule ScheduleMap) []model.Record {
	classesByGrade := bucketClassesByGrade(schedule)

	// 按年级分桶，保持遇到顺序
	byGrade := map[string][]int{}
	var gradeOrder []string
	for i, s := range students {
		g := normalizeGradeKey(s.grade)
		if _, ok := byGrade[g]; !ok {
			gradeOrder = append(gradeOrder, g)
		}
		byGrade[g] = append(byGrade[g], i)
	}

	records := make([]model.Record, 0, len(students))
	for _, g := range gradeOrder {
		classes := classesByGrade[g]
		for n, idx := range byGrade[g] {
			s := students[idx]
			group := s.grade
			teacher := ""
			if len(classes) > 0 {
				group = classes[n%len(classes)]
				teacher = schedule[group]
			}
			records = append(records, model.Record{
				PersonName:  s.name,
				Group:       group,
				Supervisor:  CleanSupervisor(teacher),
				SourceSheet: s.sheet,
			})
		}
	}
	return records
}

// bucketClassesByGrade 课程表键按年级归桶（"8.1" → "8"），桶内排序保证轮转确定
func bucketClassesByGrade(schedule ScheduleMap) map[string][]string {
	buckets := map[string][]string{}
	for class := range schedule {
		// 组合键（含 "/"）已拆分入表，这里跳过整体键
		if strings.Contains(class, "/") {
			continue
		}
		grade := firstDigitRun(class)
		if grade == "" {
			continue
		}
		buckets[grade] = append(buckets[grade], class)
	}
	for g := range buckets {
		sort.Strings(buckets[g])
	}
	return buckets
}

// normalizeGradeKey 学生年级文本归一（"6th Grade" / "6 " → "6"）
func normalizeGradeKey(grade string) string {
	if d := firstDigitRun(grade); d != "" {
		return d
	}
	return strings.TrimSpace(grade)
}

// countBySheet 统计来源表的记录数
func countBySheet(records []model.Record, sheetName string) int {
	n := 0
	for _, r := range records {
		if r.SourceSheet == sheetName {
			n++
		}
	}
	return n
}
