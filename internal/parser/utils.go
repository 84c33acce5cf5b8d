package parser

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ContainsAny 检查字符串是否包含任意一个关键词
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// NormalizeHeader 规范化表头文本：去首尾空格、转小写
func NormalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// isUniformCase 判断是否全大写或全小写（无字母视为 false）
func isUniformCase(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return false
	}
	return s == strings.ToUpper(s) || s == strings.ToLower(s)
}

// CleanName 清洗人名：去首尾空格；全大写/全小写转 Title Case；再做姓氏前缀修正
// 幂等：clean(clean(x)) == clean(x)
func CleanName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if isUniformCase(s) {
		s = cases.Title(language.English).String(strings.ToLower(s))
	}

	words := strings.Fields(s)
	for i, w := range words {
		words[i] = fixSurnamePrefix(w)
	}
	return strings.Join(words, " ")
}

// fixSurnamePrefix 姓氏前缀修正：Mc/Mac 后首字母大写，o' 前缀归一为 O'X
// 检查顺序固定：Mc、Mac 先于撇号
func fixSurnamePrefix(w string) string {
	if strings.HasPrefix(w, "Mc") && len(w) > 2 {
		return "Mc" + strings.ToUpper(w[2:3]) + w[3:]
	}
	if strings.HasPrefix(w, "Mac") && len(w) > 3 {
		return "Mac" + strings.ToUpper(w[3:4]) + w[4:]
	}
	if i := strings.Index(w, "'"); i > 0 && i+1 < len(w) {
		if strings.EqualFold(w[:i], "o") {
			return "O'" + strings.ToUpper(w[i+1:i+2]) + w[i+2:]
		}
	}
	return w
}

// CleanSupervisor 清洗教师文本：换行转 ", "，双空格折叠，再按人名规则清洗各段
func CleanSupervisor(s string) string {
	s = strings.ReplaceAll(s, "\n", ", ")
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	parts := strings.Split(s, ",")
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		p = CleanName(p)
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return strings.Join(cleaned, ", ")
}

// firstDigitRun 提取字符串中第一段连续数字
func firstDigitRun(s string) string {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return s[start:i]
		}
	}
	if start >= 0 {
		return s[start:]
	}
	return ""
}
