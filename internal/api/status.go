package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anhkhoinguyen1310/class-roster/internal/model"
)

// Version 应用版本
const Version = "1.2.0"

// GetStatus 系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	runCount := 0
	if h.store != nil {
		if runs, err := h.store.ListRuns(1000); err == nil {
			runCount = len(runs)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"version":       Version,
		"uptimeSeconds": int64(time.Since(h.startedAt).Seconds()),
		"runs":          runCount,
	})
}

// modeInfo 处理模式描述
type modeInfo struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// ListModes 可用处理模式
// GET /api/modes
func (h *Handler) ListModes(c *gin.Context) {
	labels := map[model.ProcessingMode]modeInfo{
		model.ModeUniversal: {
			Label:       "通用",
			Description: "自动识别表头与工作表类型",
		},
		model.ModeROCL: {
			Label:       "ROCL 固定列",
			Description: "固定列花名册：姓名 / 班级 / 教师",
		},
		model.ModeROCLAdvisor: {
			Label:       "ROCL 固定列（含顾问）",
			Description: "固定列花名册，第 4 列为顾问",
		},
		model.ModePictureDay: {
			Label:       "Picture Day",
			Description: "按年级分表 + 拍照课程表，轮转分班",
		},
	}

	modes := make([]modeInfo, 0, len(model.AllModes()))
	for _, m := range model.AllModes() {
		info := labels[m]
		info.ID = string(m)
		modes = append(modes, info)
	}
	c.JSON(http.StatusOK, gin.H{"modes": modes})
}

// ListRuns 最近的运行历史
// GET /api/runs
func (h *Handler) ListRuns(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusOK, gin.H{"runs": []any{}})
		return
	}

	runs, err := h.store.ListRuns(50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取运行历史失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}
