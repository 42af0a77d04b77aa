/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"time"

	"github.com/spf13/viper"
)

// Options 网关客户端在每个阶段等待 peer 响应的最长时间
type Options struct {
	// EvaluateTimeout 评估(查询)交易的超时时间
	EvaluateTimeout time.Duration
	// EndorseTimeout 等待背书响应的超时时间
	EndorseTimeout time.Duration
	// SubmitTimeout 将背书后的交易提交给排序服务的超时时间
	SubmitTimeout time.Duration
	// CommitStatusTimeout 等待交易提交状态的超时时间
	CommitStatusTimeout time.Duration
}

// 默认的网关配置, 与 fabric-samples 应用的设置一致
var defaultOptions = Options{
	EvaluateTimeout:     5 * time.Second,
	EndorseTimeout:      15 * time.Second,
	SubmitTimeout:       5 * time.Second,
	CommitStatusTimeout: 1 * time.Minute,
}

// DefaultOptions 返回默认的网关超时配置
func DefaultOptions() Options {
	return defaultOptions
}

// GetOptions 函数获取网关配置选项, 未设置的键使用默认值。
//
// 参数：
//   - v: *viper.Viper: 用于获取配置值的viper实例
//
// 返回值：
//   - Options: 网关配置选项
func GetOptions(v *viper.Viper) Options {
	options := DefaultOptions()
	if v.IsSet("network.timeouts.evaluate") {
		options.EvaluateTimeout = v.GetDuration("network.timeouts.evaluate")
	}
	if v.IsSet("network.timeouts.endorse") {
		options.EndorseTimeout = v.GetDuration("network.timeouts.endorse")
	}
	if v.IsSet("network.timeouts.submit") {
		options.SubmitTimeout = v.GetDuration("network.timeouts.submit")
	}
	if v.IsSet("network.timeouts.commitStatus") {
		options.CommitStatusTimeout = v.GetDuration("network.timeouts.commitStatus")
	}

	return options
}
