package service

import (
	"log"
	"strings"
	"unicode/utf8"
)

// 草稿响应是一整篇 Markdown，全文进日志只会淹没别的条目，只留开头一段定位问题
const aiLogSnippetRunes = 400

// logAIExchange 记录一次草稿/关键词交互，用于追查模型输出不符合 JSON 约定的情况。
func logAIExchange(kind, phase, content string) {
	trimmed := strings.TrimSpace(content)
	total := utf8.RuneCountInString(trimmed)

	switch {
	case total == 0:
		log.Printf("inklog-ai %s/%s: 空内容", kind, phase)
	case total > aiLogSnippetRunes:
		log.Printf("inklog-ai %s/%s: %s …共 %d 字符", kind, phase, string([]rune(trimmed)[:aiLogSnippetRunes]), total)
	default:
		log.Printf("inklog-ai %s/%s: %s", kind, phase, trimmed)
	}
}
