//go:build !android

package utils

// PrepareStorage 非 Android 平台由 gdata 自行创建目录，返回空路径
func PrepareStorage(appName string) (string, error) {
	return "", nil
}
