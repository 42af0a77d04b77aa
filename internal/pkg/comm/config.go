/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package comm 建立到网关 peer 的 gRPC 客户端连接.
package comm

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"
)

// 与 peer 服务端默认值一致的消息大小上限
const (
	DefaultMaxRecvMsgSize = 100 * 1024 * 1024
	DefaultMaxSendMsgSize = 100 * 1024 * 1024
)

var (
	// DefaultKeepaliveOptions 与 peer 的 keepalive 策略匹配, 更频繁的 ping 会被 peer 断开
	DefaultKeepaliveOptions = KeepaliveOptions{
		ClientInterval: time.Minute,
		ClientTimeout:  20 * time.Second,
	}

	// DefaultConnectionTimeout 未设置 DialTimeout 时的拨号超时
	DefaultConnectionTimeout = 5 * time.Second
)

// KeepaliveOptions 客户端 keepalive 设置
type KeepaliveOptions struct {
	// ClientInterval 连接空闲多久后发送 ping
	ClientInterval time.Duration
	// ClientTimeout 等待 ping 响应的时间, 超时后关闭连接
	ClientTimeout time.Duration
}

// ClientConfig 是到网关 peer 的 gRPC 连接参数.
// AsyncConnect 为 true 时 Dial 不等待连接建立.
type ClientConfig struct {
	SecOpts        SecureOptions
	KaOpts         KeepaliveOptions
	DialTimeout    time.Duration
	AsyncConnect   bool
	MaxRecvMsgSize int
	MaxSendMsgSize int
}

// DialOptions 返回 keepalive, 阻塞拨号, 消息大小和传输凭证的拨号选项
func (cc ClientConfig) DialOptions() ([]grpc.DialOption, error) {
	ka := cc.KaOpts
	if ka == (KeepaliveOptions{}) {
		ka = DefaultKeepaliveOptions
	}
	opts := []grpc.DialOption{
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                ka.ClientInterval,
			Timeout:             ka.ClientTimeout,
			PermitWithoutStream: true,
		}),
	}

	// 阻塞拨号时, 连接被拒绝这样的错误立即返回, 不等到超时
	if !cc.AsyncConnect {
		opts = append(opts, grpc.WithBlock(), grpc.FailOnNonTempDialError(true))
	}

	opts = append(opts, grpc.WithDefaultCallOptions(
		grpc.MaxCallRecvMsgSize(orDefault(cc.MaxRecvMsgSize, DefaultMaxRecvMsgSize)),
		grpc.MaxCallSendMsgSize(orDefault(cc.MaxSendMsgSize, DefaultMaxSendMsgSize)),
	))

	creds, err := cc.SecOpts.TransportCredentials()
	if err != nil {
		return nil, err
	}
	return append(opts, grpc.WithTransportCredentials(creds)), nil
}

// Dial 连接 address, 在 DialTimeout 内没有建立连接时返回错误
func (cc ClientConfig) Dial(address string) (*grpc.ClientConn, error) {
	opts, err := cc.DialOptions()
	if err != nil {
		return nil, err
	}

	timeout := cc.DialTimeout
	if timeout <= 0 {
		timeout = DefaultConnectionTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	conn, err := grpc.DialContext(ctx, address, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "创建到 %s 的 gRPC 新连接失败", address)
	}
	return conn, nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
