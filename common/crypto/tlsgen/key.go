/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package tlsgen

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"time"

	"github.com/pkg/errors"
)

// 证书有效期, 测试进程不会运行这么久
const validity = 24 * time.Hour

// request 描述要签发的证书
type request struct {
	commonName string
	org        string
	unit       string
	hosts      []string
	isCA       bool
	server     bool
}

func (r request) template(now time.Time) (*x509.Certificate, error) {
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return nil, errors.Wrap(err, "生成证书序列号失败")
	}

	subject := pkix.Name{CommonName: r.commonName, Organization: []string{r.org}}
	if r.unit != "" {
		subject.OrganizationalUnit = []string{r.unit}
	}
	tmpl := &x509.Certificate{
		SerialNumber: serial,
		Subject:      subject,
		NotBefore:    now.Add(-time.Hour),
		NotAfter:     now.Add(validity),
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}

	switch {
	case r.isCA:
		tmpl.IsCA = true
		tmpl.BasicConstraintsValid = true
		tmpl.KeyUsage |= x509.KeyUsageCertSign | x509.KeyUsageCRLSign
		tmpl.ExtKeyUsage = []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth, x509.ExtKeyUsageServerAuth}
	case r.server:
		tmpl.KeyUsage |= x509.KeyUsageKeyEncipherment
		tmpl.ExtKeyUsage = []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth, x509.ExtKeyUsageClientAuth}
		for _, host := range r.hosts {
			if ip := net.ParseIP(host); ip != nil {
				tmpl.IPAddresses = append(tmpl.IPAddresses, ip)
			} else {
				tmpl.DNSNames = append(tmpl.DNSNames, host)
			}
		}
	default:
		// 用户证书同时用于交易签名和 mutual TLS
		tmpl.ExtKeyUsage = []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth}
	}
	return tmpl, nil
}

// issue 生成 P-256 密钥并签发证书, parent 为 nil 时自签名
func issue(r request, parent *CertKeyPair) (*CertKeyPair, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "生成密钥失败")
	}
	tmpl, err := r.template(time.Now())
	if err != nil {
		return nil, err
	}
	ski := sha256.Sum256(elliptic.Marshal(key.Curve, key.X, key.Y))
	tmpl.SubjectKeyId = ski[:]

	issuer, signer := tmpl, interface{}(key)
	if parent != nil {
		issuer, signer = parent.X509Cert, parent.Signer
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, issuer, &key.PublicKey, signer)
	if err != nil {
		return nil, errors.Wrapf(err, "签发证书 %s 失败", r.commonName)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, errors.Wrap(err, "解析证书失败")
	}
	pkcs8, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, errors.Wrap(err, "编码私钥失败")
	}

	return &CertKeyPair{
		Cert:     pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}),
		Key:      pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: pkcs8}),
		Signer:   key,
		X509Cert: cert,
	}, nil
}
