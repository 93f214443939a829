package embedded

import (
	"testing"
	"testing/fstest"
)

func initTestFS(t *testing.T) {
	t.Helper()
	Init(fstest.MapFS{
		"data/config/fallgate.yaml": {Data: []byte("language: fi\n")},
		"data/strings/fi.txt":       {Data: []byte("[WIDGET_BUTTON]\nKokeile\n")},
	})
	t.Cleanup(func() { Init(nil) })
}

// TestNotInitialized 未初始化时返回错误
func TestNotInitialized(t *testing.T) {
	Init(nil)
	if IsInitialized() {
		t.Fatal("expected not initialized")
	}
	if _, err := ReadFile("data/config/fallgate.yaml"); err == nil {
		t.Error("expected error before Init")
	}
}

// TestReadFile 验证读取与路径标准化
func TestReadFile(t *testing.T) {
	initTestFS(t)

	data, err := ReadFile("./data/config/fallgate.yaml")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "language: fi\n" {
		t.Errorf("unexpected content %q", data)
	}

	if _, err := ReadFile("assets/images/cabinet.png"); err == nil {
		t.Error("expected error for unknown prefix")
	}
}

// TestExists 验证文件存在检测
func TestExists(t *testing.T) {
	initTestFS(t)

	if !Exists("data/strings/fi.txt") {
		t.Error("fi.txt should exist")
	}
	if Exists("data/strings/sv.txt") {
		t.Error("sv.txt should not exist")
	}
}
