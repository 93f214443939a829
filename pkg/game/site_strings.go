package game

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/decker502/fallgate/pkg/embedded"
)

// SiteStrings 页面文案管理器
// 从 data/strings/<lang>.txt 加载本地化文本，支持通过键快速查询
type SiteStrings struct {
	strings map[string]string // 键 -> 文本映射
}

// StringsPath 返回某个语言的文案文件路径
func StringsPath(language string) string {
	return "data/strings/" + language + ".txt"
}

// LoadSiteStrings 从嵌入资源加载文案
//
// 参数：
//   - filePath: 文案文件路径（如 "data/strings/fi.txt"）
//
// 返回：
//   - *SiteStrings: 文案管理器实例
//   - error: 如果文件读取或解析失败
func LoadSiteStrings(filePath string) (*SiteStrings, error) {
	file, err := embedded.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open strings file %s: %w", filePath, err)
	}
	defer file.Close()

	ss, err := ParseSiteStrings(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read strings file %s: %w", filePath, err)
	}
	return ss, nil
}

// ParseSiteStrings 解析文案
//
// 文件格式：
//
//	[KEY]
//	第一行
//	第二行
//
// 值可以跨多行，遇到空行或下一个键时结束。以 # 开头的行是注释。
func ParseSiteStrings(r io.Reader) (*SiteStrings, error) {
	ss := &SiteStrings{
		strings: make(map[string]string),
	}

	scanner := bufio.NewScanner(r)
	var currentKey string
	var lines []string

	flush := func() {
		if currentKey != "" && len(lines) > 0 {
			ss.strings[currentKey] = strings.Join(lines, "\n")
		}
		currentKey = ""
		lines = nil
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		if trimmed == "" {
			flush()
			continue
		}

		// 检查是否为键定义（格式：[KEY]）
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			flush()
			currentKey = strings.TrimSpace(trimmed[1 : len(trimmed)-1])
			continue
		}

		if currentKey != "" {
			lines = append(lines, line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ss, nil
}

// GetString 根据键获取文本
// 键不存在时返回 "[key]"（调试用）
func (ss *SiteStrings) GetString(key string) string {
	if ss == nil {
		return "[" + key + "]"
	}
	if text, ok := ss.strings[key]; ok {
		return text
	}
	return "[" + key + "]"
}

// GetStringOr 根据键获取文本，不存在时返回 fallback
func (ss *SiteStrings) GetStringOr(key, fallback string) string {
	if ss == nil {
		return fallback
	}
	if text, ok := ss.strings[key]; ok {
		return text
	}
	return fallback
}

// Len 已加载的键数量
func (ss *SiteStrings) Len() int {
	if ss == nil {
		return 0
	}
	return len(ss.strings)
}
