package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anhkhoinguyen1310/class-roster/internal/model"
	"github.com/anhkhoinguyen1310/class-roster/internal/parser"
	"github.com/anhkhoinguyen1310/class-roster/internal/roster"
	"github.com/anhkhoinguyen1310/class-roster/internal/service/excel"
)

// Split 清洗并按班级分表，同步返回结果文件
// POST /api/split
// 表单字段：file（必填）、mode
func (h *Handler) Split(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取上传文件失败"})
		return
	}
	defer f.Close()

	src, err := excel.NewReader().Read(f, fileHeader.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("读取工作簿失败: %v", err)})
		return
	}

	mode := model.ParseMode(c.DefaultPostForm("mode", string(model.ModeUniversal)))
	result, err := parser.NewPipeline().Normalize(src, parser.Options{Mode: mode})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("规范化失败: %v", err)})
		return
	}

	groups := roster.NewGrouper().Group(result.Records)
	if len(groups) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "未提取到任何班级"})
		return
	}

	out, err := excel.NewWriter().WriteGrouped(groups)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "写出结果失败"})
		return
	}
	defer out.Close()

	buf, err := out.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "写出结果失败"})
		return
	}

	filename := downloadFilename(fileHeader.Filename, true)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
