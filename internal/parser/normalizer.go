package parser

import (
	"regexp"
	"strings"

	"github.com/anhkhoinguyen1310/class-roster/internal/model"
)

// RecordNormalizer 标准表记录规范化器
// 按字段列 + 元数据缺省 +（可选）课程表，把数据行转为规范记录
type RecordNormalizer struct{}

// NewRecordNormalizer 创建规范化器
func NewRecordNormalizer() *RecordNormalizer {
	return &RecordNormalizer{}
}

// 页脚行（"Advisor:" / "SecondaryRole:"），与标题写法一样要丢弃
var footerRoleRe = regexp.MustCompile(`(?i)^(advisors?|secondaryrole)\s*[:\-]`)

// isFooterText 是否标题/页脚模式行
func isFooterText(text string) bool {
	return isMetadataText(text) || footerRoleRe.MatchString(text)
}

// Normalize 逐行生成规范记录；缺姓名的行丢弃（非空姓名约束）
// 返回记录与丢弃的行数
func (n *RecordNormalizer) Normalize(sheet *model.Sheet, match HeaderMatch, meta Metadata, schedule ScheduleMap) ([]model.Record, int) {
	startRow := match.Row + 1 // 无表头行时 Row = -1，数据从第 0 行起

	var records []model.Record
	skipped := 0
	for row := startRow; row < sheet.RowCount(); row++ {
		rec, ok := n.normalizeRow(sheet, row, match.Fields, meta, schedule)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped
}

// normalizeRow 单行规范化
func (n *RecordNormalizer) normalizeRow(sheet *model.Sheet, row int, fields FieldIndices, meta Metadata, schedule ScheduleMap) (model.Record, bool) {
	name := n.resolveName(sheet, row, fields)
	if name == "" || isFooterText(name) {
		return model.Record{}, false
	}

	group := n.fieldText(sheet, row, fields, FieldGroup)
	if group == "" {
		group = meta.GroupDefault
	}
	if group == "" {
		group = sheet.Name
	}

	supervisor := n.fieldText(sheet, row, fields, FieldSupervisor)
	if supervisor == "" {
		supervisor = meta.SupervisorDefault
	}
	if supervisor == "" && schedule != nil {
		supervisor = schedule.Lookup(group)
	}

	return model.Record{
		PersonName:    CleanName(name),
		Group:         strings.TrimSpace(group),
		Supervisor:    CleanSupervisor(supervisor),
		SecondaryRole: CleanName(n.fieldText(sheet, row, fields, FieldSecondaryRole)),
		SourceSheet:   sheet.Name,
	}, true
}

// resolveName 解析姓名：姓+名 成对优先于全名；各段去空格后以单空格连接
func (n *RecordNormalizer) resolveName(sheet *model.Sheet, row int, fields FieldIndices) string {
	if fields.Has(FieldPersonFirst) && fields.Has(FieldPersonLast) {
		first := n.fieldText(sheet, row, fields, FieldPersonFirst)
		last := n.fieldText(sheet, row, fields, FieldPersonLast)
		return strings.TrimSpace(first + " " + last)
	}
	return n.fieldText(sheet, row, fields, FieldPersonFull)
}

// fieldText 取字段列单元格文本（字段缺失或越界返回空串）
func (n *RecordNormalizer) fieldText(sheet *model.Sheet, row int, fields FieldIndices, f Field) string {
	idx, ok := fields[f]
	if !ok {
		return ""
	}
	return sheet.Text(row, idx)
}
