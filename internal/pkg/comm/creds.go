/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package comm

import (
	"crypto/tls"
	"crypto/x509"

	"github.com/Hyperledger-TWGC/tjfoc-gm/gmtls"
	"github.com/Hyperledger-TWGC/tjfoc-gm/gmtls/gmcredentials"
	x509GM "github.com/Hyperledger-TWGC/tjfoc-gm/x509"
	"github.com/pkg/errors"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// gRPC 要求的 ALPN 协议
var alpnProtoStr = []string{"h2"}

// SecureOptions 是客户端的 TLS 参数, 证书和密钥都是 PEM 编码.
//
// Certificate 和 Key 是 mutual TLS 的客户端证书和私钥, ServerRootCAs 用于校验 peer 证书.
// UseGMTLS 使用国密 (SM2/SM3/SM4) TLS, 仅在 UseTLS 时生效.
// ServerNameOverride 是握手时校验的主机名, 地址被改写为 localhost 时使用.
type SecureOptions struct {
	Certificate        []byte
	Key                []byte
	ServerRootCAs      [][]byte
	UseTLS             bool
	UseGMTLS           bool
	RequireClientCert  bool
	ServerNameOverride string
}

// TransportCredentials 返回明文, 标准 TLS 或国密 TLS 凭证
func (so SecureOptions) TransportCredentials() (credentials.TransportCredentials, error) {
	switch {
	case !so.UseTLS:
		return insecure.NewCredentials(), nil
	case so.UseGMTLS:
		config, err := so.GMTLSConfig()
		if err != nil {
			return nil, err
		}
		return gmcredentials.NewTLS(config), nil
	default:
		config, err := so.TLSConfig()
		if err != nil {
			return nil, err
		}
		return credentials.NewTLS(config), nil
	}
}

// NewTLSConfig 设置 gRPC 需要的 ALPN 协议, 最低版本为 TLS 1.2
func NewTLSConfig(config *tls.Config) *tls.Config {
	if config == nil {
		config = &tls.Config{}
	}
	config.NextProtos = alpnProtoStr
	config.MinVersion = tls.VersionTLS12
	return config
}

// TLSConfig 返回标准 TLS 配置, 未启用 TLS 时返回 nil
func (so SecureOptions) TLSConfig() (*tls.Config, error) {
	if !so.UseTLS {
		return nil, nil
	}
	config := NewTLSConfig(&tls.Config{ServerName: so.ServerNameOverride})

	if len(so.ServerRootCAs) > 0 {
		pool := x509.NewCertPool()
		for _, ca := range so.ServerRootCAs {
			if !pool.AppendCertsFromPEM(ca) {
				return nil, errors.New("将服务器根CA证书添加到证书池时出错")
			}
		}
		config.RootCAs = pool
	}

	if so.RequireClientCert {
		cert, err := so.ClientCertificate()
		if err != nil {
			return nil, errors.WithMessage(err, "无法加载客户端证书")
		}
		config.Certificates = []tls.Certificate{cert}
	}
	return config, nil
}

// ClientCertificate 解析 mutual TLS 使用的客户端证书
func (so SecureOptions) ClientCertificate() (tls.Certificate, error) {
	if so.Key == nil || so.Certificate == nil {
		return tls.Certificate{}, errors.New("使用TLS握手时需要密钥和证书")
	}
	cert, err := tls.X509KeyPair(so.Certificate, so.Key)
	if err != nil {
		return tls.Certificate{}, errors.Wrap(err, "创建密钥对失败")
	}
	return cert, nil
}

// NewGMTLSConfig 设置国密套件, ALPN 协议和 GMSSL 版本
func NewGMTLSConfig(config *gmtls.Config) *gmtls.Config {
	if config == nil {
		config = &gmtls.Config{}
	}
	config.GMSupport = &gmtls.GMSupport{}
	config.CipherSuites = []uint16{gmtls.GMTLS_SM2_WITH_SM4_SM3, gmtls.GMTLS_ECDHE_SM2_WITH_SM4_SM3}
	config.NextProtos = alpnProtoStr
	config.MinVersion = gmtls.VersionGMSSL
	return config
}

// GMTLSConfig 返回国密 TLS 配置, 未启用 TLS 时返回 nil
func (so SecureOptions) GMTLSConfig() (*gmtls.Config, error) {
	if !so.UseTLS {
		return nil, nil
	}
	config := NewGMTLSConfig(&gmtls.Config{ServerName: so.ServerNameOverride})

	if len(so.ServerRootCAs) > 0 {
		pool := x509GM.NewCertPool()
		for _, ca := range so.ServerRootCAs {
			if !pool.AppendCertsFromPEM(ca) {
				return nil, errors.New("将服务器根CA证书添加到国密证书池时出错")
			}
		}
		config.RootCAs = pool
	}

	if so.RequireClientCert {
		if so.Key == nil || so.Certificate == nil {
			return nil, errors.New("使用TLS握手时需要密钥和证书")
		}
		cert, err := gmtls.X509KeyPair(so.Certificate, so.Key)
		if err != nil {
			return nil, errors.Wrap(err, "创建国密密钥对失败")
		}
		config.Certificates = []gmtls.Certificate{cert}
	}
	return config, nil
}
