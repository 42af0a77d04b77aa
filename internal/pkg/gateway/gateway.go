/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package gateway 管理 bid 客户端与 Fabric 网关 peer 之间的一次会话.
package gateway

import (
	"sync"

	"github.com/YECHAFLY/fabric-test/internal/pkg/comm"
	"github.com/YECHAFLY/fabric-test/internal/pkg/failure"
	"github.com/YECHAFLY/fabric-test/internal/pkg/gateway/config"
	"github.com/YECHAFLY/fabric-test/internal/pkg/identity"
	"github.com/YECHAFLY/fabric-test/internal/pkg/profile"
	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"google.golang.org/grpc"
)

var logger = flogging.MustGetLogger("bid.gateway")

// State 是会话的生命周期状态, 只能向前推进
type State int

const (
	Unconnected State = iota
	Connected
	Bound
	Closed
)

func (s State) String() string {
	switch s {
	case Unconnected:
		return "Unconnected"
	case Connected:
		return "Connected"
	case Bound:
		return "Bound"
	case Closed:
		return "Closed"
	}
	return "Unknown"
}

//go:generate counterfeiter -o mocks/client.go --fake-name Client . Client

// Client 是连接到网关 peer 的客户端, Verify 在绑定前确认通道和链码存在
type Client interface {
	Verify(channelName, contractName string) error
	Contract(channelName, contractName string) Contract
	Close() error
}

//go:generate counterfeiter -o mocks/contract.go --fake-name Contract . Contract

// Contract 是通道上已部署的智能合约
type Contract interface {
	CreateTransaction(name string) (Transaction, error)
}

//go:generate counterfeiter -o mocks/transaction.go --fake-name Transaction . Transaction

// Transaction 是一个待提交的交易, Submit 在交易提交到账本后返回结果
type Transaction interface {
	Submit(args ...string) ([]byte, error)
}

type (
	dialFunc      func(cc comm.ClientConfig, address string) (*grpc.ClientConn, error)
	newClientFunc func(conn *grpc.ClientConn, signer identity.SignerIdentity, options config.Options) (Client, error)
)

var (
	// DialFnc 建立到网关 peer 的 gRPC 连接
	DialFnc dialFunc = func(cc comm.ClientConfig, address string) (*grpc.ClientConn, error) {
		return cc.Dial(address)
	}
	// NewClientFnc 在 gRPC 连接上创建网关客户端
	NewClientFnc newClientFunc = newGatewayClient
)

// Options 会话的连接选项
type Options struct {
	// AsLocalhost 将 peer 主机名替换为 localhost, 用于访问本机 docker 中的测试网络
	AsLocalhost bool
	// Client gRPC 连接设置, TLS 根证书和服务名由连接配置文件填充
	Client comm.ClientConfig
	// Timeouts 网关客户端各阶段的超时, 零值时使用默认值
	Timeouts config.Options
}

// Session 是一次网关会话, 由 Connect 建立, Close 释放.
type Session struct {
	mutex    sync.Mutex
	state    State
	profile  *profile.NetworkConfig
	endpoint *profile.PeerEndpoint
	conn     *grpc.ClientConn
	client   Client
}

// Connect 使用凭证连接连接配置文件中客户端组织的网关 peer。
// 输入参数：
//   - nc：连接配置文件
//   - signer：用户身份和签名
//   - options：连接选项
//
// 返回值：
//   - *Session：处于 Connected 状态的会话
//   - error：Connection 类别的错误
func Connect(nc *profile.NetworkConfig, signer identity.SignerIdentity, options Options) (*Session, error) {
	if nc == nil {
		return nil, failure.New(failure.Connection, "没有连接配置文件")
	}
	if signer == nil || signer.Identity() == nil {
		return nil, failure.New(failure.Connection, "没有用户身份, 无法连接网关")
	}

	endpoint, err := nc.GatewayPeer(options.AsLocalhost)
	if err != nil {
		return nil, failure.Wrap(err, failure.Connection, "连接配置文件无效")
	}

	cc := options.Client
	cc.SecOpts.UseTLS = endpoint.UseTLS
	if endpoint.UseTLS {
		cc.SecOpts.ServerRootCAs = [][]byte{endpoint.TLSRootCert}
		cc.SecOpts.ServerNameOverride = endpoint.ServerNameOverride
	}

	logger.Debugf("连接网关 peer %s, tls=%t", endpoint, endpoint.UseTLS)
	conn, err := DialFnc(cc, endpoint.Address)
	if err != nil {
		return nil, failure.Wrapf(err, failure.Connection, "无法连接网关 peer %s", endpoint)
	}

	timeouts := options.Timeouts
	if timeouts == (config.Options{}) {
		timeouts = config.DefaultOptions()
	}
	client, err := NewClientFnc(conn, signer, timeouts)
	if err != nil {
		conn.Close()
		return nil, failure.Wrapf(err, failure.Connection, "无法连接网关 peer %s", endpoint)
	}

	logger.Infof("已作为 %s 连接到网关 peer %s", signer.Identity().MspID(), endpoint)
	return &Session{
		state:    Connected,
		profile:  nc,
		endpoint: endpoint,
		conn:     conn,
		client:   client,
	}, nil
}

// State 返回会话当前状态
func (s *Session) State() State {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.state
}

// Endpoint 返回会话连接的网关 peer
func (s *Session) Endpoint() *profile.PeerEndpoint {
	return s.endpoint
}

// BindContract 将会话绑定到通道上的合约, 每个会话只能绑定一次.
// 先检查连接配置文件的 channels 部分, 再由网关 peer 确认通道和链码定义.
func (s *Session) BindContract(channelName, contractName string) (Contract, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.state != Connected {
		return nil, failure.Errorf(failure.Binding, "会话处于 %s 状态, 不能绑定合约", s.state)
	}
	if channelName == "" {
		return nil, failure.New(failure.Binding, "通道名称不能为空")
	}
	if contractName == "" {
		return nil, failure.New(failure.Binding, "合约名称不能为空")
	}
	if err := s.profile.CheckContract(channelName, contractName); err != nil {
		return nil, failure.Wrap(err, failure.Binding, "无法绑定合约")
	}
	if err := s.client.Verify(channelName, contractName); err != nil {
		return nil, failure.Wrap(err, failure.Binding, "无法绑定合约")
	}

	contract := s.client.Contract(channelName, contractName)
	s.state = Bound
	logger.Debugf("已绑定通道 %s 上的合约 %s", channelName, contractName)
	return contract, nil
}

// Close 依次关闭网关客户端和 gRPC 连接, 重复调用无效果.
func (s *Session) Close() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.state == Closed {
		return
	}
	s.state = Closed

	if s.client != nil {
		if err := s.client.Close(); err != nil {
			logger.Warnf("关闭网关客户端失败: %s", err)
		}
	}
	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			logger.Warnf("关闭到 %s 的连接失败: %s", s.endpoint, err)
		}
	}
	logger.Debug("网关会话已关闭")
}
