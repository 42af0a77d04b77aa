/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package profile

import (
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/YECHAFLY/fabric-test/core/config"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// NetworkConfig 是 Hyperledger Fabric 的连接配置文件 (common connection profile, ccp),
// 只包含连接网关 peer 需要的部分. JSON 是 YAML 的子集, 因此 connection-org1.json 和
// connection-org1.yaml 由同一个解析器读取, 其余的段落 (orderers, certificateAuthorities) 被忽略.
type NetworkConfig struct {
	Name          string                          `yaml:"name"`
	Version       string                          `yaml:"version"`
	Client        ClientConfig                    `yaml:"client"`
	Channels      map[string]ChannelNetworkConfig `yaml:"channels"`
	Organizations map[string]OrganizationConfig   `yaml:"organizations"`
	Peers         map[string]PeerConfig           `yaml:"peers"`

	// 配置文件所在目录, 用于解析相对的证书路径
	dir string
}

// ClientConfig 声明客户端所属的组织, 值是 organizations 中的键
type ClientConfig struct {
	Organization string `yaml:"organization"`
}

// ChannelNetworkConfig 是通道上的 peer 和链码. chaincodes 的条目是 "name" 或 "name:version".
type ChannelNetworkConfig struct {
	Peers      map[string]PeerChannelConfig `yaml:"peers"`
	Chaincodes []string                     `yaml:"chaincodes"`
}

// PeerChannelConfig 是 peer 在通道上的角色
type PeerChannelConfig struct {
	EndorsingPeer bool `yaml:"endorsingPeer"`
	LedgerQuery   bool `yaml:"ledgerQuery"`
}

// OrganizationConfig 是组织的 MSP 和 peer 列表
type OrganizationConfig struct {
	MspID string   `yaml:"mspid"`
	Peers []string `yaml:"peers"`
}

// PeerConfig 是 peer 的地址, gRPC 选项和 TLS 根证书
type PeerConfig struct {
	URL         string                 `yaml:"url"`
	GRPCOptions map[string]interface{} `yaml:"grpcOptions"`
	TLSCACerts  TLSConfig              `yaml:"tlsCACerts"`
}

// TLSConfig 是内联的 pem 或证书文件路径, pem 优先
type TLSConfig struct {
	Path string `yaml:"path"`
	Pem  string `yaml:"pem"`
}

// GetConfig 读取并解析连接配置文件, 证书的相对路径以该文件所在目录为基准。
func GetConfig(fileName string) (*NetworkConfig, error) {
	if fileName == "" {
		return nil, errors.New("connectionProfile 连接配置文件名不能为空")
	}

	data, err := ioutil.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "读取 connectionProfile 连接配置文件时出错")
	}

	nc, err := Parse(data)
	if err != nil {
		return nil, errors.WithMessagef(err, "连接配置文件 %s", fileName)
	}
	nc.dir = filepath.Dir(fileName)

	return nc, nil
}

// Parse 解析内存中的连接配置, 相对证书路径按当前目录解析
func Parse(data []byte) (*NetworkConfig, error) {
	nc := &NetworkConfig{}
	if err := yaml.Unmarshal(data, nc); err != nil {
		return nil, errors.Wrap(err, "反序列化 connectionProfile 连接配置时出错")
	}
	return nc, nil
}

// Bytes 返回证书内容, 内联 pem 为空时读取 path (相对于连接配置文件目录)
func (nc *NetworkConfig) Bytes(tc TLSConfig) ([]byte, error) {
	if tc.Pem != "" {
		return []byte(tc.Pem), nil
	}
	if tc.Path == "" {
		return nil, nil
	}
	path := config.TranslatePath(nc.dir, tc.Path)
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "无法加载 TLS 根证书 %s", path)
	}
	return data, nil
}

// ClientOrganization 返回客户端所属组织的配置
func (nc *NetworkConfig) ClientOrganization() (string, OrganizationConfig, error) {
	name := nc.Client.Organization
	if name == "" {
		return "", OrganizationConfig{}, errors.New("连接配置文件缺少 client.organization")
	}
	org, ok := nc.Organizations[name]
	if !ok {
		return "", OrganizationConfig{}, errors.Errorf("连接配置文件中没有组织 %s", name)
	}
	return name, org, nil
}

// CheckContract 验证通道和链码是否在连接配置中声明.
// 没有 channels 段, 或通道没有列出 chaincodes 时不做限制.
func (nc *NetworkConfig) CheckContract(channelName, contractName string) error {
	if len(nc.Channels) == 0 {
		return nil
	}
	channel, ok := nc.Channels[channelName]
	if !ok {
		return errors.Errorf("连接配置文件中没有通道 %s", channelName)
	}
	if len(channel.Chaincodes) == 0 {
		return nil
	}
	for _, cc := range channel.Chaincodes {
		// chaincodes 条目可能是 "name" 或 "name:version"
		if cc == contractName || strings.HasPrefix(cc, contractName+":") {
			return nil
		}
	}
	return errors.Errorf("通道 %s 上没有链码 %s", channelName, contractName)
}
