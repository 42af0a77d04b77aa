/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bid

import (
	"github.com/YECHAFLY/fabric-test/internal/pkg/failure"
	"github.com/YECHAFLY/fabric-test/internal/pkg/gateway"
)

// TransactionName 是 auction 链码中提交出价的交易函数
const TransactionName = "Bid"

// Request 是一次出价. 字段原样传给链码, 客户端不做校验.
type Request struct {
	AuctionID  string
	Prices     string
	Quantities string
	Submitter  Identity
}

// Args 返回交易参数: auctionID, prices, quantities, 提交者用户名
func (r Request) Args() []string {
	return []string{r.AuctionID, r.Prices, r.Quantities, r.Submitter.UserName}
}

// Submit 在合约上提交一次 Bid 交易, 返回链码结果. 失败时返回 Submission 错误, 不重试.
func Submit(contract gateway.Contract, request Request) ([]byte, error) {
	if contract == nil {
		return nil, failure.New(failure.Submission, "没有绑定合约")
	}

	tx, err := contract.CreateTransaction(TransactionName)
	if err != nil {
		return nil, failure.Wrapf(err, failure.Submission, "无法创建交易 %s", TransactionName)
	}

	result, err := tx.Submit(request.Args()...)
	if err != nil {
		return nil, failure.Wrapf(err, failure.Submission, "交易 %s 提交失败", TransactionName)
	}
	return result, nil
}
