package service

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	slugDisallowed = regexp.MustCompile(`[^a-z0-9가-힣\s-]`)
	slugSeparators = regexp.MustCompile(`[\s-]+`)
)

// Slugify 将标题转换为 URL 友好的 slug：
// 小写化，移除字母数字、韩文与空白连字符之外的字符，再把连续的空白或连字符折叠成单个连字符。
func Slugify(title string) string {
	lowered := strings.ToLower(strings.TrimSpace(title))
	cleaned := slugDisallowed.ReplaceAllString(lowered, "")
	collapsed := slugSeparators.ReplaceAllString(cleaned, "-")
	return strings.Trim(collapsed, "-")
}

// uniqueSlug 在基础 slug 后追加数据库分配的数字 ID，保证全局唯一。
// 标题被清洗为空时退化为纯 ID。
func uniqueSlug(base string, id uint) string {
	if base == "" {
		return fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("%s-%d", base, id)
}
