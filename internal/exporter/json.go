package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/anhkhoinguyen1310/class-roster/internal/model"
	"github.com/anhkhoinguyen1310/class-roster/internal/parser"
)

// Diagnostics 诊断导出：中间提取结果 + 最终记录
// 仅供人工检查，正确性不依赖它；日期统一 ISO-8601（RFC 3339）
type Diagnostics struct {
	Filename    string                   `json:"filename"`
	Mode        model.ProcessingMode     `json:"mode"`
	GeneratedAt time.Time                `json:"generatedAt"`
	Sheets      []parser.SheetDiagnostic `json:"sheets"`
	Schedule    parser.ScheduleMap       `json:"schedule,omitempty"`
	Records     []model.Record           `json:"records"`
	Warnings    []string                 `json:"warnings,omitempty"`
	Source      *model.Source            `json:"source,omitempty"`
}

// JSONExporter 诊断 JSON 导出器
type JSONExporter struct {
	// IncludeSource 是否连原始行列一起导出（文件会明显变大）
	IncludeSource bool
}

// NewJSONExporter 创建导出器
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export 组装诊断对象
func (e *JSONExporter) Export(src *model.Source, mode model.ProcessingMode, result *parser.Result) *Diagnostics {
	d := &Diagnostics{
		Filename:    src.Filename,
		Mode:        mode,
		GeneratedAt: time.Now(),
		Sheets:      result.Sheets,
		Schedule:    result.Schedule,
		Records:     result.Records,
		Warnings:    result.Warnings,
	}
	if e.IncludeSource {
		d.Source = src
	}
	return d
}

// WriteFile 导出到 JSON 文件
func (e *JSONExporter) WriteFile(path string, src *model.Source, mode model.ProcessingMode, result *parser.Result) error {
	data, err := json.MarshalIndent(e.Export(src, mode, result), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal diagnostics: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write diagnostics: %w", err)
	}
	return nil
}
