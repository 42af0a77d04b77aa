/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bid

import (
	"fmt"
	"strings"

	"github.com/YECHAFLY/fabric-test/internal/pkg/failure"
	"github.com/YECHAFLY/fabric-test/internal/pkg/identity"
	"github.com/YECHAFLY/fabric-test/internal/pkg/profile"
)

// Organization 是参与拍卖的组织
type Organization int

const (
	Org1 Organization = iota + 1
	Org2
)

// Organizations 返回全部已知组织
func Organizations() []Organization {
	return []Organization{Org1, Org2}
}

func (o Organization) String() string {
	switch o {
	case Org1:
		return "Org1"
	case Org2:
		return "Org2"
	}
	return fmt.Sprintf("Organization(%d)", int(o))
}

// Key 返回组织在配置 organizations 段中的键
func (o Organization) Key() string {
	return strings.ToLower(o.String())
}

func (o Organization) defaultProfile() string {
	n := int(o)
	return fmt.Sprintf("../../test-network/organizations/peerOrganizations/org%d.example.com/connection-org%d.json", n, n)
}

func (o Organization) defaultWallet() string {
	return fmt.Sprintf("wallet/org%d", int(o))
}

// ParseOrganization 解析组织标签, 不区分大小写
func ParseOrganization(tag string) (Organization, error) {
	for _, org := range Organizations() {
		if strings.EqualFold(tag, org.String()) {
			return org, nil
		}
	}
	return 0, failure.Errorf(failure.UnknownOrganization, "unknown organization %q: Org must be Org1 or Org2", tag)
}

// Identity 是提交出价的参与者
type Identity struct {
	Organization Organization
	UserName     string
}

func (id Identity) String() string {
	return id.UserName + "@" + id.Organization.String()
}

// OrgConfig 组织的连接配置文件和钱包目录
type OrgConfig struct {
	ConnectionProfile string `mapstructure:"connectionProfile"`
	Wallet            string `mapstructure:"wallet"`
}

// OrgTable 是启动时构建一次的组织表
type OrgTable map[Organization]OrgConfig

// NewOrgTable 由配置的 organizations 段构建组织表, 每个已知组织都必须有配置
func NewOrgTable(orgs map[string]OrgConfig) (OrgTable, error) {
	table := OrgTable{}
	for _, org := range Organizations() {
		oc, ok := orgs[org.Key()]
		if !ok {
			return nil, failure.Errorf(failure.Configuration, "配置中缺少组织 %s", org.Key())
		}
		if oc.ConnectionProfile == "" {
			return nil, failure.Errorf(failure.Configuration, "组织 %s 没有配置 connectionProfile", org.Key())
		}
		if oc.Wallet == "" {
			return nil, failure.Errorf(failure.Configuration, "组织 %s 没有配置 wallet", org.Key())
		}
		table[org] = oc
	}
	return table, nil
}

// Resolver 将组织和用户解析为连接配置文件, 钱包和凭证
type Resolver interface {
	ResolveProfile(org Organization) (*profile.NetworkConfig, error)
	WalletPath(org Organization) (string, error)
	ResolveCredential(walletPath, userName string) (*identity.Credential, error)
}

type tableResolver struct {
	table OrgTable
}

// NewResolver 返回基于组织表和文件系统钱包的 Resolver
func NewResolver(table OrgTable) Resolver {
	return &tableResolver{table: table}
}

func (r *tableResolver) orgConfig(org Organization) (OrgConfig, error) {
	oc, ok := r.table[org]
	if !ok {
		return OrgConfig{}, failure.Errorf(failure.UnknownOrganization, "unknown organization %s: Org must be Org1 or Org2", org)
	}
	return oc, nil
}

// ResolveProfile 读取组织的连接配置文件, 文件缺失或无效时返回 Connection 错误
func (r *tableResolver) ResolveProfile(org Organization) (*profile.NetworkConfig, error) {
	oc, err := r.orgConfig(org)
	if err != nil {
		return nil, err
	}
	nc, err := profile.GetConfig(oc.ConnectionProfile)
	if err != nil {
		return nil, failure.Wrapf(err, failure.Connection, "无法加载组织 %s 的连接配置文件", org)
	}
	return nc, nil
}

// WalletPath 返回组织的钱包目录
func (r *tableResolver) WalletPath(org Organization) (string, error) {
	oc, err := r.orgConfig(org)
	if err != nil {
		return "", err
	}
	return oc.Wallet, nil
}

// ResolveCredential 从钱包中读取用户凭证
func (r *tableResolver) ResolveCredential(walletPath, userName string) (*identity.Credential, error) {
	return identity.NewFileSystemWallet(walletPath).Get(userName)
}
