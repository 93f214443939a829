//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// make prepare-mobile 会把根目录的 data/config 和 data/strings 复制到此目录。
package mobile

import "embed"

//go:embed data/config data/strings
var dataFS embed.FS
