package utils

import (
	"strings"
	"testing"
)

// TestWrapText 测试文本换行功能
func TestWrapText(t *testing.T) {
	font := DefaultFace(14)
	if font == nil {
		t.Fatal("default face unavailable")
	}

	tests := []struct {
		name      string
		input     string
		maxWidth  float64
		wantLines int // 0 表示只检查至少 2 行
	}{
		{
			name:      "短文本不换行",
			input:     "Kokeile",
			maxWidth:  1000,
			wantLines: 1,
		},
		{
			name:      "空文本",
			input:     "",
			maxWidth:  100,
			wantLines: 1,
		},
		{
			name:     "长文本在空格处断行",
			input:    "Asennamme, korjaamme ja kiinnitämme kaapit niin, ettei niitä tarvitse pelätä.",
			maxWidth: 150,
		},
		{
			name:      "保留原有换行",
			input:     "first line\nsecond",
			maxWidth:  1000,
			wantLines: 2,
		},
		{
			name:     "超长单词强制断开",
			input:    "laskutusjärjestelmäpalvelu",
			maxWidth: 60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := WrapText(tt.input, font, tt.maxWidth)

			if tt.wantLines > 0 && len(lines) != tt.wantLines {
				t.Errorf("WrapText(%q) = %d lines %q, want %d", tt.input, len(lines), lines, tt.wantLines)
			}
			if tt.wantLines == 0 && len(lines) < 2 {
				t.Errorf("WrapText(%q) = %q, want at least 2 lines", tt.input, lines)
			}
			for _, line := range lines {
				if MeasureText(line, font) > tt.maxWidth {
					t.Errorf("line %q exceeds max width %.0f", line, tt.maxWidth)
				}
			}
			// 断行不丢字符
			joined := strings.ReplaceAll(strings.Join(lines, ""), " ", "")
			want := strings.ReplaceAll(strings.ReplaceAll(tt.input, "\n", ""), " ", "")
			if joined != want {
				t.Errorf("wrapped text lost characters: %q vs %q", joined, want)
			}
		})
	}
}

// TestWrapText_NilFont 没有字体时原样返回
func TestWrapText_NilFont(t *testing.T) {
	got := WrapText("one two", nil, 10)
	if len(got) != 1 || got[0] != "one two" {
		t.Errorf("WrapText with nil font = %q", got)
	}
}
