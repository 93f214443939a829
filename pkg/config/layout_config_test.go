package config

import "testing"

// TestCabinetFitsWindow 柜子倒地后仍在屏幕内
func TestCabinetFitsWindow(t *testing.T) {
	pivotX := float64(GameWindowWidth)/2 + CabinetWidth/2
	if pivotX+CabinetHeight > GameWindowWidth {
		t.Errorf("fallen cabinet reaches x=%.0f, window width %d", pivotX+CabinetHeight, GameWindowWidth)
	}
	if CabinetFloorY-CabinetHeight < 0 {
		t.Errorf("upright cabinet top %.0f above the window", CabinetFloorY-CabinetHeight)
	}
	if GameOverTextY <= CabinetFloorY || GameOverTextY >= GameWindowHeight {
		t.Errorf("GameOverTextY = %d, want between floor %.0f and window bottom %d", GameOverTextY, CabinetFloorY, GameWindowHeight)
	}
}

// TestLandingPageScrolls 默认区块数超过一屏
func TestLandingPageScrolls(t *testing.T) {
	sections := len(DefaultSiteConfig().Sections)
	if float64(sections)*SectionHeight <= GameWindowHeight {
		t.Errorf("%d sections of %.0fpx fit in one screen, page would not scroll", sections, SectionHeight)
	}
	cfg := DefaultSiteConfig()
	if cfg.Widget.Height > SectionHeight-2*SectionPadding {
		t.Errorf("widget height %.0f does not fit in a section", cfg.Widget.Height)
	}
}
