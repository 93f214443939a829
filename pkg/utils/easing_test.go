package utils

import (
	"math"
	"testing"
)

// TestEaseInQuad 测试二次方缓入
func TestEaseInQuad(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"中点", 0.5, 0.25},
		{"终点", 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseInQuad(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseInQuad(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

// TestEaseOutCubic 测试三次方缓出
func TestEaseOutCubic(t *testing.T) {
	if EaseOutCubic(0) != 0 || EaseOutCubic(1) != 1 {
		t.Error("EaseOutCubic 端点错误")
	}
	if EaseOutCubic(0.5) <= 0.5 {
		t.Errorf("EaseOutCubic(0.5) = %v, 缓出曲线中点应大于 0.5", EaseOutCubic(0.5))
	}
}

// TestLerpAndClamp 测试插值与限幅
func TestLerpAndClamp(t *testing.T) {
	if got := Lerp(10, 20, 0.5); got != 15 {
		t.Errorf("Lerp(10, 20, 0.5) = %v, 期望 15", got)
	}
	if got := Clamp(-1, 0, 1); got != 0 {
		t.Errorf("Clamp(-1) = %v, 期望 0", got)
	}
	if got := Clamp(2, 0, 1); got != 1 {
		t.Errorf("Clamp(2) = %v, 期望 1", got)
	}
	if got := Clamp(0.3, 0, 1); got != 0.3 {
		t.Errorf("Clamp(0.3) = %v, 期望 0.3", got)
	}
}
