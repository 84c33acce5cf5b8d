package parser

import (
	"fmt"
	"strings"

	"github.com/anhkhoinguyen1310/class-roster/internal/model"
)

// Options 一次规范化运行的选项
type Options struct {
	Mode model.ProcessingMode
}

// Pipeline 规范化管线
// 两遍处理：先识别所有表并汇总课程表，再逐表提取；
// 单表出错只影响该表，其余表照常产出
type Pipeline struct {
	classifier *SheetClassifier
	metadata   *MetadataExtractor
	matcher    *HeaderFieldMatcher
	schedules  *ScheduleMapBuilder
	grid       *GridTransformer
	normalizer *RecordNormalizer
	pictureDay *PictureDayExtractor
}

// NewPipeline 创建管线
func NewPipeline() *Pipeline {
	return &Pipeline{
		classifier: NewSheetClassifier(),
		metadata:   NewMetadataExtractor(),
		matcher:    NewHeaderFieldMatcher(),
		schedules:  NewScheduleMapBuilder(),
		grid:       NewGridTransformer(),
		normalizer: NewRecordNormalizer(),
		pictureDay: NewPictureDayExtractor(),
	}
}

// Normalize 规范化整个工作簿
func (p *Pipeline) Normalize(src *model.Source, opts Options) (*Result, error) {
	if src == nil || len(src.Sheets) == 0 {
		return nil, model.NewFailure(model.FailureSourceUnreadable, "workbook has no sheets")
	}

	var result *Result
	switch opts.Mode {
	case model.ModePictureDay:
		result = p.pictureDay.Extract(src)
	case model.ModeROCL:
		result = p.normalizeFixed(src, false)
	case model.ModeROCLAdvisor:
		result = p.normalizeFixed(src, true)
	default:
		result = p.normalizeUniversal(src)
	}

	if len(result.Records) == 0 && len(result.Warnings) == 0 {
		result.Warnings = append(result.Warnings, "normalization produced 0 records")
	}
	return result, nil
}

// normalizeUniversal 通用模式
// 第一遍：识别所有表并汇总课程表；第二遍：按类型逐表提取
func (p *Pipeline) normalizeUniversal(src *model.Source) *Result {
	result := &Result{Schedule: ScheduleMap{}}

	classes := make([]model.SheetClassification, len(src.Sheets))
	for i, sheet := range src.Sheets {
		classes[i] = p.classifier.Classify(sheet)
		if classes[i].Class == model.SheetClassSchedule {
			for k, v := range p.schedules.Build(sheet) {
				result.Schedule[k] = v
			}
		}
	}

	for i, sheet := range src.Sheets {
		cls := classes[i]
		diag := SheetDiagnostic{SheetName: sheet.Name, Class: cls.Class, Evidence: cls.Evidence, HeaderRow: -1}

		switch cls.Class {
		case model.SheetClassSkip:
			diag.Status = "skipped"
		case model.SheetClassSchedule:
			diag.Status = "schedule"
		case model.SheetClassGrid:
			records := p.grid.Transform(sheet)
			result.Records = append(result.Records, records...)
			diag.Status = "extracted"
			diag.Records = len(records)
		default:
			p.extractStandard(sheet, result, &diag)
		}
		result.Sheets = append(result.Sheets, diag)
	}
	return result
}

// extractStandard STANDARD 表提取：元数据 + 表头匹配 + 逐行规范化
// 列映射失败的表降级为跳过，不中断整个运行
func (p *Pipeline) extractStandard(sheet *model.Sheet, result *Result, diag *SheetDiagnostic) {
	meta := p.metadata.Extract(sheet)
	match := p.matcher.Match(sheet)
	if !match.Fields.HasUsableName() {
		diag.Status = "skipped"
		diag.Errors = append(diag.Errors, model.NewFailure(model.FailureColumnMapping, "no usable name column").Error())
		return
	}

	records, skipped := p.normalizer.Normalize(sheet, match, meta, result.Schedule)
	result.Records = append(result.Records, records...)

	diag.Status = "extracted"
	diag.HeaderRow = match.Row
	diag.Fields = fieldIndicesForDiag(match.Fields)
	if meta != (Metadata{}) {
		diag.Metadata = &meta
	}
	diag.Records = len(records)
	diag.Skipped = skipped
	if len(records) == 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("sheet %q produced 0 records", sheet.Name))
	}
}

// normalizeFixed ROCL 固定列模式（withAdvisor 时多一列顾问）
// 列布局已知，不做内容识别，只按名称跳过非数据表
func (p *Pipeline) normalizeFixed(src *model.Source, withAdvisor bool) *Result {
	result := &Result{Schedule: ScheduleMap{}}

	for _, sheet := range src.Sheets {
		diag := SheetDiagnostic{SheetName: sheet.Name, Class: model.SheetClassStandard, HeaderRow: -1}

		if ContainsAny(strings.ToLower(sheet.Name), skipNameKeywords) {
			diag.Class = model.SheetClassSkip
			diag.Status = "skipped"
			result.Sheets = append(result.Sheets, diag)
			continue
		}

		match := ROCLHeaderMatch(sheet, withAdvisor)
		records, skipped := p.normalizer.Normalize(sheet, match, Metadata{}, nil)
		result.Records = append(result.Records, records...)
		diag.Status = "extracted"
		diag.HeaderRow = match.Row
		diag.Fields = fieldIndicesForDiag(match.Fields)
		diag.Records = len(records)
		diag.Skipped = skipped
		result.Sheets = append(result.Sheets, diag)
	}
	return result
}

// fieldIndicesForDiag 字段映射转诊断用的字符串键
func fieldIndicesForDiag(fields FieldIndices) map[string]int {
	out := make(map[string]int, len(fields))
	for f, idx := range fields {
		out[string(f)] = idx
	}
	return out
}
