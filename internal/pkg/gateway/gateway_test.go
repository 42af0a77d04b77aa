/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package gateway_test

import (
	"errors"
	"testing"
	"time"

	"github.com/YECHAFLY/fabric-test/common/crypto/tlsgen"
	"github.com/YECHAFLY/fabric-test/internal/pkg/comm"
	"github.com/YECHAFLY/fabric-test/internal/pkg/failure"
	"github.com/YECHAFLY/fabric-test/internal/pkg/gateway"
	"github.com/YECHAFLY/fabric-test/internal/pkg/gateway/config"
	"github.com/YECHAFLY/fabric-test/internal/pkg/gateway/mocks"
	"github.com/YECHAFLY/fabric-test/internal/pkg/identity"
	"github.com/YECHAFLY/fabric-test/internal/pkg/profile"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
)

const plainProfile = `
name: test-network-org1
client:
  organization: Org1
organizations:
  Org1:
    mspid: Org1MSP
    peers:
    - peer0.org1.example.com
peers:
  peer0.org1.example.com:
    url: grpc://peer0.org1.example.com:7051
channels:
  mychannel:
    chaincodes:
    - auction
`

const tlsProfile = `
client:
  organization: Org2
organizations:
  Org2:
    mspid: Org2MSP
    peers:
    - peer0.org2.example.com
peers:
  peer0.org2.example.com:
    url: grpcs://peer0.org2.example.com:9051
    tlsCACerts:
      pem: ORG2CA
    grpcOptions:
      ssl-target-name-override: peer0.org2.example.com
`

func newCredential(t *testing.T) *identity.Credential {
	ca, err := tlsgen.NewCA("Org1")
	require.NoError(t, err)
	kp, err := ca.NewUserCertKeyPair("bidder")
	require.NoError(t, err)
	cred, err := identity.NewCredential("Org1MSP", kp.Cert, kp.Key)
	require.NoError(t, err)
	return cred
}

func parseProfile(t *testing.T, data string) *profile.NetworkConfig {
	nc, err := profile.Parse([]byte(data))
	require.NoError(t, err)
	return nc
}

// fakeNetwork 替换拨号和网关客户端构造函数, 记录调用参数
type fakeNetwork struct {
	client   *mocks.Client
	conn     *grpc.ClientConn
	config   comm.ClientConfig
	address  string
	timeouts config.Options
	dialErr  error
	newErr   error
}

func installFakeNetwork(t *testing.T) *fakeNetwork {
	fn := &fakeNetwork{client: &mocks.Client{}}
	origDial, origNewClient := gateway.DialFnc, gateway.NewClientFnc
	t.Cleanup(func() {
		gateway.DialFnc, gateway.NewClientFnc = origDial, origNewClient
	})

	gateway.DialFnc = func(cc comm.ClientConfig, address string) (*grpc.ClientConn, error) {
		fn.config, fn.address = cc, address
		if fn.dialErr != nil {
			return nil, fn.dialErr
		}
		conn, err := grpc.Dial("passthrough:///"+address, grpc.WithTransportCredentials(insecure.NewCredentials()))
		require.NoError(t, err)
		fn.conn = conn
		return conn, nil
	}
	gateway.NewClientFnc = func(conn *grpc.ClientConn, signer identity.SignerIdentity, options config.Options) (gateway.Client, error) {
		fn.timeouts = options
		if fn.newErr != nil {
			return nil, fn.newErr
		}
		return fn.client, nil
	}
	return fn
}

func TestConnect(t *testing.T) {
	fn := installFakeNetwork(t)

	session, err := gateway.Connect(parseProfile(t, plainProfile), newCredential(t), gateway.Options{AsLocalhost: true})
	require.NoError(t, err)
	require.Equal(t, gateway.Connected, session.State())
	require.Equal(t, "localhost:7051", fn.address)
	require.False(t, fn.config.SecOpts.UseTLS)
	require.Equal(t, "peer0.org1.example.com", session.Endpoint().Name)
	require.Equal(t, config.DefaultOptions(), fn.timeouts)

	session.Close()
	require.Equal(t, gateway.Closed, session.State())
}

func TestConnectTLS(t *testing.T) {
	fn := installFakeNetwork(t)

	options := gateway.Options{
		Client:   comm.ClientConfig{DialTimeout: 3 * time.Second},
		Timeouts: config.Options{EndorseTimeout: time.Second},
	}
	session, err := gateway.Connect(parseProfile(t, tlsProfile), newCredential(t), options)
	require.NoError(t, err)
	defer session.Close()

	require.Equal(t, "peer0.org2.example.com:9051", fn.address)
	require.Equal(t, 3*time.Second, fn.config.DialTimeout)
	require.True(t, fn.config.SecOpts.UseTLS)
	require.Equal(t, [][]byte{[]byte("ORG2CA")}, fn.config.SecOpts.ServerRootCAs)
	require.Equal(t, "peer0.org2.example.com", fn.config.SecOpts.ServerNameOverride)
	require.Equal(t, time.Second, fn.timeouts.EndorseTimeout)
}

func TestConnectFailures(t *testing.T) {
	fn := installFakeNetwork(t)
	cred := newCredential(t)

	_, err := gateway.Connect(nil, cred, gateway.Options{})
	require.True(t, failure.Is(err, failure.Connection))

	_, err = gateway.Connect(parseProfile(t, plainProfile), nil, gateway.Options{})
	require.True(t, failure.Is(err, failure.Connection))
	require.EqualError(t, err, "没有用户身份, 无法连接网关")

	_, err = gateway.Connect(parseProfile(t, "name: empty\n"), cred, gateway.Options{})
	require.True(t, failure.Is(err, failure.Connection))
	require.Contains(t, err.Error(), "连接配置文件缺少 client.organization")

	fn.dialErr = errors.New("connection refused")
	_, err = gateway.Connect(parseProfile(t, plainProfile), cred, gateway.Options{})
	require.True(t, failure.Is(err, failure.Connection))
	require.EqualError(t, err, "无法连接网关 peer peer0.org1.example.com (peer0.org1.example.com:7051): connection refused")

	fn.dialErr = nil
	fn.newErr = errors.New("bad identity")
	_, err = gateway.Connect(parseProfile(t, plainProfile), cred, gateway.Options{})
	require.True(t, failure.Is(err, failure.Connection))
	require.Equal(t, connectivity.Shutdown, fn.conn.GetState())
}

func TestBindContract(t *testing.T) {
	fn := installFakeNetwork(t)
	contract := &mocks.Contract{}
	fn.client.ContractReturns(contract)

	session, err := gateway.Connect(parseProfile(t, plainProfile), newCredential(t), gateway.Options{})
	require.NoError(t, err)
	defer session.Close()

	got, err := session.BindContract("mychannel", "auction")
	require.NoError(t, err)
	require.Equal(t, contract, got)
	require.Equal(t, gateway.Bound, session.State())
	require.Equal(t, 1, fn.client.ContractCallCount())
	channelName, contractName := fn.client.ContractArgsForCall(0)
	require.Equal(t, "mychannel", channelName)
	require.Equal(t, "auction", contractName)
	require.Equal(t, 1, fn.client.VerifyCallCount())
	channelName, contractName = fn.client.VerifyArgsForCall(0)
	require.Equal(t, "mychannel", channelName)
	require.Equal(t, "auction", contractName)

	_, err = session.BindContract("mychannel", "auction")
	require.True(t, failure.Is(err, failure.Binding))
	require.EqualError(t, err, "会话处于 Bound 状态, 不能绑定合约")
}

func TestBindContractFailures(t *testing.T) {
	installFakeNetwork(t)

	tests := []struct {
		name        string
		channelName string
		contract    string
		errMsg      string
	}{
		{name: "empty channel", contract: "auction", errMsg: "通道名称不能为空"},
		{name: "empty contract", channelName: "mychannel", errMsg: "合约名称不能为空"},
		{name: "unknown channel", channelName: "nochannel", contract: "auction", errMsg: "无法绑定合约: 连接配置文件中没有通道 nochannel"},
		{name: "unknown contract", channelName: "mychannel", contract: "basic", errMsg: "无法绑定合约: 通道 mychannel 上没有链码 basic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := gateway.Connect(parseProfile(t, plainProfile), newCredential(t), gateway.Options{})
			require.NoError(t, err)
			defer session.Close()

			_, err = session.BindContract(tt.channelName, tt.contract)
			require.True(t, failure.Is(err, failure.Binding))
			require.EqualError(t, err, tt.errMsg)
			require.Equal(t, gateway.Connected, session.State())
		})
	}
}

func TestBindContractRejectedByGateway(t *testing.T) {
	fn := installFakeNetwork(t)
	fn.client.VerifyReturns(errors.New("通道 mychannel 上没有定义链码 auction"))

	// 测试网络的连接配置文件没有 channels 部分, 由网关 peer 确认
	nc := parseProfile(t, tlsProfile)
	session, err := gateway.Connect(nc, newCredential(t), gateway.Options{})
	require.NoError(t, err)
	defer session.Close()

	_, err = session.BindContract("mychannel", "auction")
	require.True(t, failure.Is(err, failure.Binding))
	require.EqualError(t, err, "无法绑定合约: 通道 mychannel 上没有定义链码 auction")
	require.Equal(t, gateway.Connected, session.State())
	require.Equal(t, 0, fn.client.ContractCallCount())
}

func TestCloseIsIdempotent(t *testing.T) {
	fn := installFakeNetwork(t)
	fn.client.CloseReturns(errors.New("already closed"))

	session, err := gateway.Connect(parseProfile(t, plainProfile), newCredential(t), gateway.Options{})
	require.NoError(t, err)

	session.Close()
	session.Close()
	require.Equal(t, 1, fn.client.CloseCallCount())
	require.Equal(t, connectivity.Shutdown, fn.conn.GetState())
	require.Equal(t, gateway.Closed, session.State())

	_, err = session.BindContract("mychannel", "auction")
	require.True(t, failure.Is(err, failure.Binding))
}

func TestStateString(t *testing.T) {
	require.Equal(t, "Unconnected", gateway.Unconnected.String())
	require.Equal(t, "Connected", gateway.Connected.String())
	require.Equal(t, "Bound", gateway.Bound.String())
	require.Equal(t, "Closed", gateway.Closed.String())
	require.Equal(t, "Unknown", gateway.State(42).String())
}
