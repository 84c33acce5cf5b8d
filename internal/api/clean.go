package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anhkhoinguyen1310/class-roster/internal/importer"
	"github.com/anhkhoinguyen1310/class-roster/internal/model"
)

// Clean 清洗上传的工作簿 (SSE 流式响应)
// POST /api/clean
// 表单字段：file（必填）、mode、grouped、exportJson
func (h *Handler) Clean(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的表单数据"})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}
	uploadedFile := files[0]

	tempDir := os.TempDir()
	tempFilePath := filepath.Join(tempDir, fmt.Sprintf("roster_upload_%d_%s", time.Now().UnixNano(), filepath.Base(uploadedFile.Filename)))
	if err := c.SaveUploadedFile(uploadedFile, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存文件失败"})
		return
	}
	defer os.Remove(tempFilePath)

	mode := model.ParseMode(c.DefaultPostForm("mode", string(model.ModeUniversal)))
	grouped := c.DefaultPostForm("grouped", "false") == "true"
	exportJSON := c.DefaultPostForm("exportJson", "false") == "true"

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "不支持流式响应"})
		return
	}

	send := func(event importer.ProgressEvent) {
		b, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", b)
		flusher.Flush()
	}

	coordinator := importer.NewCoordinator(h.store)
	progressChan := coordinator.Run(importer.RunOptions{
		FilePath:   tempFilePath,
		Filename:   uploadedFile.Filename,
		Mode:       mode,
		Grouped:    grouped,
		ExportJSON: exportJSON,
	})

	for event := range progressChan {
		if event.Type != "done" {
			send(event)
			continue
		}

		// done 事件换成带下载地址的版本；结果文件一次性下载后删除
		summary, ok := event.Data.(*importer.RunSummary)
		if !ok {
			send(event)
			continue
		}

		data := gin.H{
			"runId":      summary.RunID,
			"records":    summary.Records,
			"sheets":     summary.Sheets,
			"warnings":   summary.Warnings,
			"durationMs": summary.DurationMS,
		}
		token := h.downloads.put(summary.OutputPath, downloadFilename(summary.Filename, grouped), 10*time.Minute)
		data["downloadUrl"] = "/api/download/" + token
		if summary.JSONPath != "" {
			jsonToken := h.downloads.put(summary.JSONPath, "diagnostics.json", 10*time.Minute)
			data["diagnosticsUrl"] = "/api/download/" + jsonToken
		}

		send(importer.ProgressEvent{
			Type:      "done",
			Message:   event.Message,
			Data:      data,
			Timestamp: event.Timestamp,
		})
	}
}

// Download 下载结果文件（一次性）
// GET /api/download/:token
func (h *Handler) Download(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 token"})
		return
	}

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接已失效"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "结果文件不存在"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", item.filename))
	c.Header("Content-Type", contentTypeFor(item.filename))
	c.File(item.filePath)

	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}

// downloadFilename 结果文件名（保留上传名主干）
func downloadFilename(uploaded string, grouped bool) string {
	base := uploaded
	if ext := filepath.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	if base == "" {
		base = "roster"
	}
	if grouped {
		return base + "_by_class.xlsx"
	}
	return base + "_cleaned.xlsx"
}

func contentTypeFor(filename string) string {
	if filepath.Ext(filename) == ".json" {
		return "application/json"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
