/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package identity provides a set of interfaces for identity-related operations
// and a file system wallet holding the X.509 credentials of registered users.
package identity

import (
	"github.com/hyperledger/fabric-gateway/pkg/identity"
)

// Signer is an interface which wraps the Sign method.
//
// Sign signs message digest bytes and returns the signature or an error on failure.
type Signer interface {
	Sign(digest []byte) ([]byte, error)
}

// Identity 是网关客户端使用的客户端身份, 由 MSP ID 和证书组成
type Identity = identity.Identity

// SignerIdentity 对Sign和Identity方法进行分组。
type SignerIdentity interface {
	Signer
	Identity() Identity
}
