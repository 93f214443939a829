package utils

import "testing"

// TestPointInRect 测试点击命中检测
func TestPointInRect(t *testing.T) {
	tests := []struct {
		name   string
		px, py int
		want   bool
	}{
		{"内部", 150, 120, true},
		{"左上角", 100, 100, true},
		{"右下角", 300, 160, true},
		{"左侧外部", 99, 120, false},
		{"下方外部", 150, 161, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInRect(tt.px, tt.py, 100, 100, 200, 60); got != tt.want {
				t.Errorf("PointInRect(%d, %d) = %v, 期望 %v", tt.px, tt.py, got, tt.want)
			}
		})
	}
}
