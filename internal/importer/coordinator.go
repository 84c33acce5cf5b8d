package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/anhkhoinguyen1310/class-roster/internal/exporter"
	"github.com/anhkhoinguyen1310/class-roster/internal/model"
	"github.com/anhkhoinguyen1310/class-roster/internal/parser"
	"github.com/anhkhoinguyen1310/class-roster/internal/roster"
	"github.com/anhkhoinguyen1310/class-roster/internal/service/excel"
	"github.com/anhkhoinguyen1310/class-roster/internal/store"
)

// Coordinator 清洗运行协调器
// 读取上传的工作簿 → 规范化 → 写出结果文件 → 记录运行历史
type Coordinator struct {
	store    *store.Store
	reader   *excel.Reader
	writer   *excel.Writer
	pipeline *parser.Pipeline
	grouper  *roster.Grouper
}

// NewCoordinator 创建协调器
func NewCoordinator(st *store.Store) *Coordinator {
	return &Coordinator{
		store:    st,
		reader:   excel.NewReader(),
		writer:   excel.NewWriter(),
		pipeline: parser.NewPipeline(),
		grouper:  roster.NewGrouper(),
	}
}

// RunOptions 运行选项
type RunOptions struct {
	FilePath   string
	Filename   string               // 原始上传文件名（FilePath 是临时文件）
	Mode       model.ProcessingMode // 处理模式
	Grouped    bool                 // 按班级分表导出
	ExportJSON bool                 // 额外导出诊断 JSON
	OutputDir  string               // 输出目录，为空时用系统临时目录
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`    // start/info/warning/error/done
	Message   string      `json:"message"` // 事件消息
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// RunSummary 运行结果摘要（done 事件携带）
type RunSummary struct {
	RunID      string                   `json:"runId"`
	Filename   string                   `json:"filename"`
	Mode       model.ProcessingMode     `json:"mode"`
	Records    int                      `json:"records"`
	Sheets     []parser.SheetDiagnostic `json:"sheets"`
	Warnings   []string                 `json:"warnings,omitempty"`
	OutputPath string                   `json:"-"`
	JSONPath   string                   `json:"-"`
	DurationMS int64                    `json:"durationMs"`
}

// Run 执行一次清洗运行，返回进度通道
func (c *Coordinator) Run(opts RunOptions) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		c.doRun(opts, progressChan)
	}()

	return progressChan
}

// doRun 执行运行逻辑
func (c *Coordinator) doRun(opts RunOptions, progressChan chan ProgressEvent) {
	startTime := time.Now()
	filename := opts.Filename
	if filename == "" {
		filename = filepath.Base(opts.FilePath)
	}

	c.sendProgress(progressChan, ProgressEvent{
		Type:    "start",
		Message: "开始清洗工作簿",
		Data: map[string]string{
			"filename": filename,
			"mode":     string(opts.Mode),
		},
		Timestamp: time.Now(),
	})

	f, err := os.Open(opts.FilePath)
	if err != nil {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "error",
			Message:   fmt.Sprintf("打开文件失败: %v", err),
			Timestamp: time.Now(),
		})
		return
	}
	defer f.Close()

	src, err := c.reader.Read(f, filename)
	if err != nil {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "error",
			Message:   fmt.Sprintf("读取工作簿失败: %v", err),
			Timestamp: time.Now(),
		})
		return
	}

	c.sendProgress(progressChan, ProgressEvent{
		Type:    "info",
		Message: fmt.Sprintf("发现 %d 个工作表", len(src.Sheets)),
		Data: map[string]interface{}{
			"total_sheets": len(src.Sheets),
		},
		Timestamp: time.Now(),
	})

	result, err := c.pipeline.Normalize(src, parser.Options{Mode: opts.Mode})
	if err != nil {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "error",
			Message:   fmt.Sprintf("规范化失败: %v", err),
			Timestamp: time.Now(),
		})
		return
	}

	for _, diag := range result.Sheets {
		c.sendProgress(progressChan, ProgressEvent{
			Type:    "info",
			Message: fmt.Sprintf("工作表 %q: %s, %d 条记录", diag.SheetName, diag.Status, diag.Records),
			Data: map[string]interface{}{
				"sheet_name": diag.SheetName,
				"class":      diag.Class,
				"status":     diag.Status,
				"records":    diag.Records,
			},
			Timestamp: time.Now(),
		})
	}
	for _, warning := range result.Warnings {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "warning",
			Message:   warning,
			Timestamp: time.Now(),
		})
	}

	outputPath, err := c.writeOutput(opts, result)
	if err != nil {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "error",
			Message:   fmt.Sprintf("写出结果失败: %v", err),
			Timestamp: time.Now(),
		})
		return
	}

	jsonPath := ""
	if opts.ExportJSON {
		jsonPath = outputPath + ".json"
		if err := exporter.NewJSONExporter().WriteFile(jsonPath, src, opts.Mode, result); err != nil {
			c.sendProgress(progressChan, ProgressEvent{
				Type:      "warning",
				Message:   fmt.Sprintf("诊断 JSON 导出失败: %v", err),
				Timestamp: time.Now(),
			})
			jsonPath = ""
		}
	}

	duration := time.Since(startTime)
	runID := c.logRun(filename, opts.Mode, result, duration, progressChan)

	c.sendProgress(progressChan, ProgressEvent{
		Type:    "done",
		Message: fmt.Sprintf("清洗完成: %d 条记录", len(result.Records)),
		Data: &RunSummary{
			RunID:      runID,
			Filename:   filename,
			Mode:       opts.Mode,
			Records:    len(result.Records),
			Sheets:     result.Sheets,
			Warnings:   result.Warnings,
			OutputPath: outputPath,
			JSONPath:   jsonPath,
			DurationMS: duration.Milliseconds(),
		},
		Timestamp: time.Now(),
	})
}

// writeOutput 写出结果工作簿，返回文件路径
func (c *Coordinator) writeOutput(opts RunOptions, result *parser.Result) (string, error) {
	outDir := opts.OutputDir
	if outDir == "" {
		outDir = os.TempDir()
	}
	outputPath := filepath.Join(outDir, fmt.Sprintf("roster_cleaned_%d_%d.xlsx", time.Now().UnixNano(), os.Getpid()))

	if opts.Grouped {
		groups := c.grouper.Group(result.Records)
		out, err := c.writer.WriteGrouped(groups)
		if err != nil {
			return "", err
		}
		defer out.Close()
		return outputPath, out.SaveAs(outputPath)
	}

	out, err := c.writer.WriteCanonical(result.Records)
	if err != nil {
		return "", err
	}
	defer out.Close()
	return outputPath, out.SaveAs(outputPath)
}

// logRun 写运行历史；失败不影响运行结果
func (c *Coordinator) logRun(filename string, mode model.ProcessingMode, result *parser.Result, duration time.Duration, progressChan chan ProgressEvent) string {
	if c.store == nil {
		return ""
	}

	skipped := 0
	for _, d := range result.Sheets {
		if d.Status == "skipped" {
			skipped++
		}
	}

	runID, err := c.store.InsertRun(store.Run{
		Filename:      filename,
		Mode:          string(mode),
		RecordCount:   len(result.Records),
		SheetCount:    len(result.Sheets),
		SkippedSheets: skipped,
		WarningCount:  len(result.Warnings),
		DurationMS:    duration.Milliseconds(),
	})
	if err != nil {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "warning",
			Message:   fmt.Sprintf("记录运行历史失败: %v", err),
			Timestamp: time.Now(),
		})
		return ""
	}
	return runID
}

// sendProgress 发送进度事件（通道满时丢弃）
func (c *Coordinator) sendProgress(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
	}
}
