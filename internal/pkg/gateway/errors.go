/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package gateway

import (
	"fmt"
	"strings"

	"github.com/hyperledger/fabric-gateway/pkg/client"
	gp "github.com/hyperledger/fabric-protos-go-apiv2/gateway"
	"github.com/pkg/errors"
	"google.golang.org/grpc/status"
)

// describe 为网关返回的错误附加交易信息和每个 peer 的错误详情
func describe(err error, message string) error {
	var sb strings.Builder
	sb.WriteString(message)

	var commitErr *client.CommitError
	if errors.As(err, &commitErr) {
		fmt.Fprintf(&sb, ", 交易 %s 验证码 %d (%s)", commitErr.TransactionID, int32(commitErr.Code), commitErr.Code)
	}

	for _, detail := range status.Convert(err).Details() {
		if d, ok := detail.(*gp.ErrorDetail); ok {
			fmt.Fprintf(&sb, "\n- address: %s; mspId: %s; message: %s", d.GetAddress(), d.GetMspId(), d.GetMessage())
		}
	}

	return errors.Wrap(err, sb.String())
}
