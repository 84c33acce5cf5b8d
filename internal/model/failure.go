package model

import "fmt"

// FailureKind 运行失败类别
type FailureKind string

const (
	// FailureSourceUnreadable 输入完全无法按表格数据解析，整个运行终止
	FailureSourceUnreadable FailureKind = "source_unreadable"
	// FailureColumnMapping 必要字段无法在任何候选表头行解析，仅该表失败
	FailureColumnMapping FailureKind = "column_mapping"
)

// Failure 结构化失败（类别 + 消息），不产生部分结果
type Failure struct {
	Kind    FailureKind
	Message string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// NewFailure 创建结构化失败
func NewFailure(kind FailureKind, format string, args ...interface{}) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
