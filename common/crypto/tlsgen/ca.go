/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package tlsgen 为测试生成组织 CA, 注册用户的身份证书和 peer 的 TLS 证书.
package tlsgen

import (
	"crypto"
	"crypto/x509"
	"strings"
)

// CertKeyPair 是 PEM 编码的证书和 PKCS#8 私钥
type CertKeyPair struct {
	Cert []byte
	Key  []byte
	// Signer 是证书对应的私钥
	Signer crypto.Signer
	// X509Cert 是解析后的证书
	X509Cert *x509.Certificate
}

// CA 是一个组织的证书颁发机构
type CA interface {
	// CertBytes 返回 PEM 编码的 CA 证书, 可作为 tlsCACerts 的 pem
	CertBytes() []byte

	// NewUserCertKeyPair 签发注册用户的身份证书, CommonName 为 userID
	NewUserCertKeyPair(userID string) (*CertKeyPair, error)

	// NewPeerCertKeyPair 签发 peer 的 TLS 服务端证书, hosts 写入 SAN
	NewPeerCertKeyPair(hosts ...string) (*CertKeyPair, error)
}

type ca struct {
	org  string
	root *CertKeyPair
}

// NewCA 为组织 org 创建自签名 CA, 例如 NewCA("Org1")
func NewCA(org string) (CA, error) {
	root, err := issue(request{
		commonName: "ca." + strings.ToLower(org) + ".example.com",
		org:        org,
		isCA:       true,
	}, nil)
	if err != nil {
		return nil, err
	}
	return &ca{org: org, root: root}, nil
}

func (c *ca) CertBytes() []byte {
	return c.root.Cert
}

func (c *ca) NewUserCertKeyPair(userID string) (*CertKeyPair, error) {
	return issue(request{commonName: userID, org: c.org, unit: "client"}, c.root)
}

func (c *ca) NewPeerCertKeyPair(hosts ...string) (*CertKeyPair, error) {
	req := request{org: c.org, unit: "peer", hosts: hosts, server: true}
	if len(hosts) > 0 {
		req.commonName = hosts[0]
	}
	return issue(req, c.root)
}
