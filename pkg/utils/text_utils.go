package utils

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 将文本按指定宽度自动换行
//
// 参数:
//   - textStr: 要换行的文本（已有的换行符保留）
//   - font: 字体
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 换行规则:
//   - 在空格处断行
//   - 单词超过最大宽度时强制断开
func WrapText(textStr string, font *text.GoTextFace, maxWidth float64) []string {
	if textStr == "" || font == nil || maxWidth <= 0 {
		return []string{textStr}
	}

	var lines []string
	for _, paragraph := range strings.Split(textStr, "\n") {
		lines = append(lines, wrapParagraph(paragraph, font, maxWidth)...)
	}
	return lines
}

// wrapParagraph 对不含换行符的一段文字换行
func wrapParagraph(paragraph string, font *text.GoTextFace, maxWidth float64) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, word := range words {
		// 单词本身超宽：先结束当前行，再按字符切开
		for MeasureText(word, font) > maxWidth {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			head, tail := splitRunesAtWidth(word, font, maxWidth)
			lines = append(lines, head)
			word = tail
		}
		if word == "" {
			continue
		}

		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if MeasureText(candidate, font) > maxWidth {
			lines = append(lines, current)
			current = word
		} else {
			current = candidate
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// splitRunesAtWidth 在不超过 maxWidth 的最后一个字符处切开（至少保留一个字符）
func splitRunesAtWidth(word string, font *text.GoTextFace, maxWidth float64) (string, string) {
	runes := []rune(word)
	n := 1
	for n < len(runes) && MeasureText(string(runes[:n+1]), font) <= maxWidth {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}
