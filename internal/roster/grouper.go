package roster

import (
	"sort"
	"strings"

	"github.com/anhkhoinguyen1310/class-roster/internal/model"
)

// ClassGroup 一个班级分组：督导教师 + 去重后的人员名单（按字典序）
type ClassGroup struct {
	Name          string   `json:"name"`
	Supervisor    string   `json:"supervisor"`
	SecondaryRole string   `json:"secondaryRole,omitempty"`
	People        []string `json:"people"`
}

// Grouper 记录分组器
// 人员用集合语义去重：仅按去首尾空格后的精确字符串判等，
// 大小写/内部空白差异视为不同人（规范化由上游清洗负责）
type Grouper struct{}

// NewGrouper 创建分组器
func NewGrouper() *Grouper {
	return &Grouper{}
}

// Group 按班级分组
// 教师先见先得：首个非空值生效，后续冲突值不覆盖
// 返回结果按班级名排序，组内人员按字典序排序
func (g *Grouper) Group(records []model.Record) []ClassGroup {
	type entry struct {
		supervisor    string
		secondaryRole string
		people        map[string]bool
	}
	groups := map[string]*entry{}

	for _, r := range records {
		name := strings.TrimSpace(r.PersonName)
		group := strings.TrimSpace(r.Group)
		if name == "" || group == "" {
			continue
		}

		e, ok := groups[group]
		if !ok {
			e = &entry{supervisor: strings.TrimSpace(r.Supervisor), people: map[string]bool{}}
			groups[group] = e
		}
		if e.supervisor == "" {
			e.supervisor = strings.TrimSpace(r.Supervisor)
		}
		if e.secondaryRole == "" {
			e.secondaryRole = strings.TrimSpace(r.SecondaryRole)
		}
		e.people[name] = true
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]ClassGroup, 0, len(names))
	for _, name := range names {
		e := groups[name]
		people := make([]string, 0, len(e.people))
		for p := range e.people {
			people = append(people, p)
		}
		sort.Strings(people)
		out = append(out, ClassGroup{
			Name:          name,
			Supervisor:    e.supervisor,
			SecondaryRole: e.secondaryRole,
			People:        people,
		})
	}
	return out
}

// sheetNameInvalid Excel 工作表名中的非法字符
const sheetNameInvalid = `\/*?:[]`

// SanitizeSheetName 清理工作表名：非法字符替换为 "-"，截断到 31 字符
// 按字符截断，不能切断多字节字符
func SanitizeSheetName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if strings.ContainsRune(sheetNameInvalid, r) {
			b.WriteRune('-')
		} else {
			b.WriteRune(r)
		}
	}
	if runes := []rune(b.String()); len(runes) > 31 {
		return string(runes[:31])
	}
	return b.String()
}
