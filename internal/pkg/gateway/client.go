/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package gateway

import (
	"github.com/YECHAFLY/fabric-test/internal/pkg/gateway/commit"
	"github.com/YECHAFLY/fabric-test/internal/pkg/gateway/config"
	"github.com/YECHAFLY/fabric-test/internal/pkg/identity"
	"github.com/hyperledger/fabric-gateway/pkg/client"
	"github.com/hyperledger/fabric-protos-go-apiv2/peer/lifecycle"
	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
)

// 绑定合约时用于查询通道和链码定义的系统链码
const (
	qsccName      = "qscc"
	lifecycleName = "_lifecycle"
)

// gatewayClient 使用 fabric-gateway 客户端实现 Client
type gatewayClient struct {
	gateway *client.Gateway
}

func newGatewayClient(conn *grpc.ClientConn, signer identity.SignerIdentity, options config.Options) (Client, error) {
	gw, err := client.Connect(
		signer.Identity(),
		client.WithSign(signer.Sign),
		client.WithClientConnection(conn),
		client.WithEvaluateTimeout(options.EvaluateTimeout),
		client.WithEndorseTimeout(options.EndorseTimeout),
		client.WithSubmitTimeout(options.SubmitTimeout),
		client.WithCommitStatusTimeout(options.CommitStatusTimeout),
	)
	if err != nil {
		return nil, errors.Wrap(err, "创建网关客户端失败")
	}
	return &gatewayClient{gateway: gw}, nil
}

func (c *gatewayClient) Contract(channelName, contractName string) Contract {
	network := c.gateway.GetNetwork(channelName)
	return &contract{
		channelName: channelName,
		contract:    network.GetContract(contractName),
	}
}

// Verify 通过网关 peer 查询通道信息和链码定义, 确认通道和链码存在
func (c *gatewayClient) Verify(channelName, contractName string) error {
	network := c.gateway.GetNetwork(channelName)

	_, err := network.GetContract(qsccName).Evaluate("GetChainInfo", client.WithArguments(channelName))
	if err != nil {
		return describe(err, "通道 "+channelName+" 不可用")
	}

	args, err := proto.Marshal(&lifecycle.QueryChaincodeDefinitionArgs{Name: contractName})
	if err != nil {
		return errors.Wrap(err, "序列化链码定义查询参数失败")
	}
	_, err = network.GetContract(lifecycleName).Evaluate("QueryChaincodeDefinition", client.WithBytesArguments(args))
	if err != nil {
		return describe(err, "通道 "+channelName+" 上没有定义链码 "+contractName)
	}

	logger.Debugf("网关确认通道 %s 上已定义链码 %s", channelName, contractName)
	return nil
}

// Close 只释放网关客户端, gRPC 连接由会话关闭
func (c *gatewayClient) Close() error {
	return c.gateway.Close()
}

type contract struct {
	channelName string
	contract    *client.Contract
}

func (c *contract) CreateTransaction(name string) (Transaction, error) {
	if name == "" {
		return nil, errors.New("交易名称不能为空")
	}
	return &transaction{contract: c, name: name}, nil
}

type transaction struct {
	contract *contract
	name     string
}

// Submit 依次执行背书, 提交到排序服务, 等待提交状态, 返回背书时链码的执行结果
func (t *transaction) Submit(args ...string) ([]byte, error) {
	proposal, err := t.contract.contract.NewProposal(t.name, client.WithArguments(args...))
	if err != nil {
		return nil, errors.Wrapf(err, "创建交易 %s 的提案失败", t.name)
	}
	txID := proposal.TransactionID()
	logger.Debugf("交易 %s 提案已创建, 通道 %s, 交易ID %s", t.name, t.contract.channelName, txID)

	endorsed, err := proposal.Endorse()
	if err != nil {
		return nil, describe(err, "交易 "+txID+" 背书失败")
	}

	submitted, err := endorsed.Submit()
	if err != nil {
		return nil, describe(err, "交易 "+txID+" 提交到排序服务失败")
	}

	status, err := submitted.Status()
	if err != nil {
		return nil, describe(err, "获取交易 "+txID+" 的提交状态失败")
	}
	if err := commit.Check(status); err != nil {
		return nil, err
	}
	logger.Infof("交易 %s 已在区块 %d 中提交", txID, status.BlockNumber)

	return endorsed.Result(), nil
}
