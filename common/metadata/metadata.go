/*
Copyright London Stock Exchange 2016 All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metadata

import (
	"fmt"
	"runtime"
)

// 由 Makefile 定义并通过ldflags传入的变量
var (
	// Version 表示程序的版本号
	Version = "latest"

	// CommitSHA 表示程序的提交哈希值
	CommitSHA = "development build"
)

// GetInfo 返回 bid 的版本信息, 用于 --version 输出
func GetInfo() string {
	return fmt.Sprintf("%s\n Commit SHA: %s\n Go version: %s\n OS/Arch: %s/%s\n",
		Version, CommitSHA, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
