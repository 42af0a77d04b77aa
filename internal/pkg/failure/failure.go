/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package failure 定义 bid 客户端的错误分类, 调用方按类别而不是按消息文本判断失败原因.
package failure

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Kind 是错误的类别
type Kind int

const (
	// Unknown 表示不是由本包构造的错误
	Unknown Kind = iota
	// Argument 调用参数缺失或格式错误, 在任何 I/O 之前检测
	Argument
	// UnknownOrganization 组织标签无法识别
	UnknownOrganization
	// CredentialNotFound 钱包中没有该用户的已注册身份
	CredentialNotFound
	// Configuration 配置或钱包内容无法读取/解析
	Configuration
	// Connection 连接配置文件错误或网络不可达
	Connection
	// Binding 通道或合约不存在
	Binding
	// Submission 交易被拒绝或提交失败
	Submission
)

var kindNames = map[Kind]string{
	Unknown:             "Unknown",
	Argument:            "ArgumentError",
	UnknownOrganization: "UnknownOrganizationError",
	CredentialNotFound:  "CredentialNotFoundError",
	Configuration:       "ConfigurationError",
	Connection:          "ConnectionError",
	Binding:             "BindingError",
	Submission:          "SubmissionError",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error 携带错误类别和原始错误. 原始错误由 github.com/pkg/errors 构造, 因此带有堆栈.
type Error struct {
	Kind  Kind
	cause error
}

func (e *Error) Error() string {
	return e.cause.Error()
}

// Unwrap 返回原始错误
func (e *Error) Unwrap() error { return e.cause }

// Cause 兼容 errors.Cause
func (e *Error) Cause() error { return e.cause }

// Format 实现 fmt.Formatter, %+v 时打印类别和原始错误的堆栈
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "%s: %+v", e.Kind, e.cause)
			return
		}
		fallthrough
	case 's':
		io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

// New 创建指定类别的错误
func New(kind Kind, message string) error {
	return &Error{Kind: kind, cause: errors.New(message)}
}

// Errorf 创建指定类别的格式化错误
func Errorf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, cause: errors.Errorf(format, args...)}
}

// Wrap 为 err 附加消息和类别. err 为 nil 时返回 nil.
func Wrap(err error, kind Kind, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, cause: errors.Wrap(err, message)}
}

// Wrapf 为 err 附加格式化消息和类别. err 为 nil 时返回 nil.
func Wrapf(err error, kind Kind, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, cause: errors.Wrapf(err, format, args...)}
}

// KindOf 返回错误链中最外层 *Error 的类别, 没有则返回 Unknown
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// Is 报告 err 是否属于 kind 类别
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// IsUsage 报告 err 是否是应打印用法的调用错误
func IsUsage(err error) bool {
	switch KindOf(err) {
	case Argument, UnknownOrganization:
		return true
	}
	return false
}

// ExitCode 将错误映射为进程退出码, 只有入口调用它.
//
//	0 成功
//	1 用法错误 (参数缺失, 未知组织)
//	2 身份或配置错误
//	3 连接或合约绑定错误
//	4 交易提交错误, 以及其他未分类的错误
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if IsUsage(err) {
		return 1
	}
	switch KindOf(err) {
	case CredentialNotFound, Configuration:
		return 2
	case Connection, Binding:
		return 3
	default:
		return 4
	}
}
