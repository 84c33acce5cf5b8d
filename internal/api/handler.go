package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anhkhoinguyen1310/class-roster/internal/store"
)

// Handler API 处理器
type Handler struct {
	store     *store.Store
	downloads *downloadStore
	startedAt time.Time
}

// NewHandler 创建 API 处理器
func NewHandler(st *store.Store) *Handler {
	return &Handler{
		store:     st,
		downloads: newDownloadStore(),
		startedAt: time.Now(),
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)
	// 可用处理模式
	router.GET("/modes", h.ListModes)

	// 清洗（SSE 进度 + 完成后提供下载地址）
	router.POST("/clean", h.Clean)
	router.GET("/download/:token", h.Download)

	// 按班级分表（同步返回文件）
	router.POST("/split", h.Split)

	// 运行历史
	router.GET("/runs", h.ListRuns)
}
