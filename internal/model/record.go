package model

// Record 规范化后的一条花名册记录
// PersonName 非空是硬性约束：缺少姓名的行在提取阶段即被丢弃
type Record struct {
	PersonName    string `json:"personName"`
	Group         string `json:"group"`
	Supervisor    string `json:"supervisor"`
	SecondaryRole string `json:"secondaryRole,omitempty"`
	SourceSheet   string `json:"sourceSheet"`
}

// ProcessingMode 处理模式（固定枚举，由调用方在入口处传入）
type ProcessingMode string

const (
	// ModeUniversal 自动识别字段的通用模式
	ModeUniversal ProcessingMode = "universal"
	// ModeROCL 固定列花名册：0=姓名 1=班级 2=教师
	ModeROCL ProcessingMode = "rocl"
	// ModeROCLAdvisor 固定列花名册 + 第 3 列顾问
	ModeROCLAdvisor ProcessingMode = "rocl_advisor"
	// ModePictureDay Picture Day 多表格式（按年级分表 + 课程表）
	ModePictureDay ProcessingMode = "picture_day"
)

// AllModes 全部处理模式（/api/modes 返回顺序）
func AllModes() []ProcessingMode {
	return []ProcessingMode{ModeUniversal, ModeROCL, ModeROCLAdvisor, ModePictureDay}
}

// ParseMode 解析处理模式，未知值回退到通用模式
func ParseMode(s string) ProcessingMode {
	switch ProcessingMode(s) {
	case ModeROCL, ModeROCLAdvisor, ModePictureDay:
		return ProcessingMode(s)
	default:
		return ModeUniversal
	}
}
