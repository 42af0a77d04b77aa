/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package profile

import (
	"fmt"
	"net"
	"net/url"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const (
	grpcOptionNameOverride     = "ssl-target-name-override"
	grpcOptionHostnameOverride = "hostnameOverride"
	localhost                  = "localhost"
)

// PeerEndpoint 是网关连接的目标节点
type PeerEndpoint struct {
	Name               string // 连接配置中的节点名称
	Address            string // host:port
	UseTLS             bool   // grpcs:// 或提供了 TLS 根证书
	TLSRootCert        []byte // PEM 编码的 TLS 根证书
	ServerNameOverride string // TLS 握手时校验的主机名
}

func (pe *PeerEndpoint) String() string {
	return fmt.Sprintf("%s (%s)", pe.Name, pe.Address)
}

// GatewayPeer 返回客户端组织的第一个可用节点作为网关节点.
// asLocalhost 为 true 时, 节点主机名被替换为 localhost, 原主机名作为 TLS 服务名, 用于在单机上访问容器网络.
func (nc *NetworkConfig) GatewayPeer(asLocalhost bool) (*PeerEndpoint, error) {
	orgName, org, err := nc.ClientOrganization()
	if err != nil {
		return nil, err
	}

	names := org.Peers
	if len(names) == 0 {
		// 组织没有列出节点时按名称顺序尝试全部节点, 保证结果是确定的
		for name := range nc.Peers {
			names = append(names, name)
		}
		sort.Strings(names)
	}
	if len(names) == 0 {
		return nil, errors.Errorf("组织 %s 没有可用的 peer 节点", orgName)
	}

	for _, name := range names {
		peer, ok := nc.Peers[name]
		if !ok {
			continue
		}
		return nc.endpoint(name, peer, asLocalhost)
	}
	return nil, errors.Errorf("组织 %s 的 peer 节点 %v 未在 peers 中定义", orgName, names)
}

func (nc *NetworkConfig) endpoint(name string, peer PeerConfig, asLocalhost bool) (*PeerEndpoint, error) {
	host, port, scheme, err := splitURL(peer.URL)
	if err != nil {
		return nil, errors.WithMessagef(err, "peer 节点 %s", name)
	}

	rootCert, err := nc.Bytes(peer.TLSCACerts)
	if err != nil {
		return nil, errors.WithMessagef(err, "peer 节点 %s", name)
	}

	pe := &PeerEndpoint{
		Name:               name,
		UseTLS:             scheme == "grpcs" || (scheme == "" && len(rootCert) > 0),
		TLSRootCert:        rootCert,
		ServerNameOverride: stringOption(peer.GRPCOptions, grpcOptionNameOverride),
	}
	if pe.ServerNameOverride == "" {
		pe.ServerNameOverride = stringOption(peer.GRPCOptions, grpcOptionHostnameOverride)
	}
	if pe.UseTLS && len(pe.TLSRootCert) == 0 {
		return nil, errors.Errorf("peer 节点 %s 使用 TLS 但没有配置 tlsCACerts", name)
	}

	if asLocalhost && host != localhost {
		if pe.ServerNameOverride == "" {
			pe.ServerNameOverride = host
		}
		host = localhost
	}
	pe.Address = net.JoinHostPort(host, port)

	return pe, nil
}

// splitURL 解析 grpc://host:port, grpcs://host:port 或 host:port
func splitURL(raw string) (host, port, scheme string, err error) {
	if raw == "" {
		return "", "", "", errors.New("url 为空")
	}
	hostPort := raw
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", "", "", errors.Wrapf(err, "无法解析 url %s", raw)
		}
		scheme = strings.ToLower(u.Scheme)
		if scheme != "grpc" && scheme != "grpcs" {
			return "", "", "", errors.Errorf("不支持的 url 协议 %s", u.Scheme)
		}
		hostPort = u.Host
	}
	host, port, err = net.SplitHostPort(hostPort)
	if err != nil {
		return "", "", "", errors.Wrapf(err, "无法解析 url %s", raw)
	}
	if host == "" || port == "" {
		return "", "", "", errors.Errorf("url %s 缺少主机或端口", raw)
	}
	return host, port, scheme, nil
}

func stringOption(options map[string]interface{}, key string) string {
	if v, ok := options[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
