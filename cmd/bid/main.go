/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// 该main函数是bid二进制文件的运行入口
package main

import (
	"os"

	"github.com/YECHAFLY/fabric-test/internal/bid"
	"github.com/YECHAFLY/fabric-test/internal/pkg/failure"
)

func main() {
	// 失败时已打印用法或错误诊断, 因此仅需按错误类别退出
	os.Exit(failure.ExitCode(bid.Cmd(nil).Execute()))
}
