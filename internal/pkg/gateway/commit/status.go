/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package commit

import (
	"github.com/hyperledger/fabric-gateway/pkg/client"
	"github.com/pkg/errors"
)

// Status 是交易在账本上的提交状态
type Status = client.Status

// Check 报告交易是否已成功提交. 已进入区块但验证失败(例如 MVCC 读冲突)的交易返回错误.
func Check(status *Status) error {
	if status == nil {
		return errors.New("没有收到交易提交状态")
	}
	if !status.Successful {
		return errors.Errorf("交易 %s 在区块 %d 中验证失败, 验证码 %d (%s)",
			status.TransactionID, status.BlockNumber, int32(status.Code), status.Code)
	}
	return nil
}
