/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fileutil

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// AppendToFile 以追加方式打开 filePath (不存在则创建), 用一次 Write 写入 content 并关闭.
// O_APPEND 保证多个独立进程并发追加时各自的记录不会互相覆盖.
func AppendToFile(filePath string, content []byte, perm os.FileMode) error {
	file, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, perm)
	if err != nil {
		return errors.Wrapf(err, "打开文件时出错: %s", filePath)
	}
	_, err = file.Write(content)
	if err != nil {
		file.Close()
		return errors.Wrapf(err, "追加写入文件时出错: %s", filePath)
	}
	if err := file.Close(); err != nil {
		return errors.Wrapf(err, "关闭文件时出错: %s", filePath)
	}
	return nil
}

// CreateParentDirIfMissing 确保 filePath 所在的父目录存在
func CreateParentDirIfMissing(filePath string) error {
	dir := filepath.Dir(filePath)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "创建目录时出错: %s", dir)
	}
	return nil
}

// FileExists 报告 path 是否是已存在的普通文件, 存在时同时返回文件大小.
// path 是目录时返回错误.
func FileExists(path string) (bool, int64, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, errors.Wrapf(err, "检查文件 [%s] 是否存在时出错", path)
	}
	if info.IsDir() {
		return false, 0, errors.Errorf("路径 [%s] 是一个目录", path)
	}
	return true, info.Size(), nil
}

// DirExists 报告目录是否存在, path 存在但不是目录时返回错误
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "检查文件 [%s] 是否存在时出错", path)
	}
	if !info.IsDir() {
		return false, errors.Errorf("路径 [%s] 存在但不是目录", path)
	}
	return true, nil
}
