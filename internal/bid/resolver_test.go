/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bid

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/YECHAFLY/fabric-test/common/crypto/tlsgen"
	"github.com/YECHAFLY/fabric-test/internal/pkg/failure"
	"github.com/YECHAFLY/fabric-test/internal/pkg/identity"
	"github.com/stretchr/testify/require"
)

func newCredential(t *testing.T, mspID string) *identity.Credential {
	ca, err := tlsgen.NewCA(strings.TrimSuffix(mspID, "MSP"))
	require.NoError(t, err)
	kp, err := ca.NewUserCertKeyPair("bidder")
	require.NoError(t, err)
	cred, err := identity.NewCredential(mspID, kp.Cert, kp.Key)
	require.NoError(t, err)
	return cred
}

func TestParseOrganization(t *testing.T) {
	tests := []struct {
		tag string
		org Organization
	}{
		{tag: "org1", org: Org1},
		{tag: "Org1", org: Org1},
		{tag: "ORG2", org: Org2},
		{tag: "oRg2", org: Org2},
	}
	for _, tt := range tests {
		org, err := ParseOrganization(tt.tag)
		require.NoError(t, err)
		require.Equal(t, tt.org, org)
	}

	for _, tag := range []string{"org3", "", "org", " org1"} {
		_, err := ParseOrganization(tag)
		require.True(t, failure.Is(err, failure.UnknownOrganization), tag)
		require.Contains(t, err.Error(), "Org must be Org1 or Org2")
	}
}

func TestOrganization(t *testing.T) {
	require.Equal(t, "Org1", Org1.String())
	require.Equal(t, "org2", Org2.Key())
	require.Equal(t, "Organization(9)", Organization(9).String())
	require.Equal(t, "../../test-network/organizations/peerOrganizations/org2.example.com/connection-org2.json", Org2.defaultProfile())
	require.Equal(t, "wallet/org1", Org1.defaultWallet())
	require.Equal(t, "alice@Org2", Identity{Organization: Org2, UserName: "alice"}.String())
}

func TestNewOrgTable(t *testing.T) {
	full := map[string]OrgConfig{
		"org1": {ConnectionProfile: "p1.json", Wallet: "w1"},
		"org2": {ConnectionProfile: "p2.json", Wallet: "w2"},
	}
	table, err := NewOrgTable(full)
	require.NoError(t, err)
	require.Equal(t, OrgConfig{ConnectionProfile: "p2.json", Wallet: "w2"}, table[Org2])

	_, err = NewOrgTable(map[string]OrgConfig{"org1": full["org1"]})
	require.True(t, failure.Is(err, failure.Configuration))
	require.EqualError(t, err, "配置中缺少组织 org2")

	_, err = NewOrgTable(map[string]OrgConfig{"org1": {Wallet: "w1"}, "org2": full["org2"]})
	require.EqualError(t, err, "组织 org1 没有配置 connectionProfile")

	_, err = NewOrgTable(map[string]OrgConfig{"org1": {ConnectionProfile: "p1"}, "org2": full["org2"]})
	require.EqualError(t, err, "组织 org1 没有配置 wallet")
}

func TestResolver(t *testing.T) {
	walletDir := filepath.Join(t.TempDir(), "wallet", "org1")
	require.NoError(t, identity.NewFileSystemWallet(walletDir).Put("bidder", newCredential(t, "Org1MSP")))

	r := NewResolver(OrgTable{
		Org1: {ConnectionProfile: filepath.Join("testdata", "connection-org1.yaml"), Wallet: walletDir},
		Org2: {ConnectionProfile: filepath.Join("testdata", "missing.json"), Wallet: "nowhere"},
	})

	nc, err := r.ResolveProfile(Org1)
	require.NoError(t, err)
	require.Equal(t, "Org1", nc.Client.Organization)

	_, err = r.ResolveProfile(Org2)
	require.True(t, failure.Is(err, failure.Connection))
	require.Contains(t, err.Error(), "无法加载组织 Org2 的连接配置文件")

	_, err = r.ResolveProfile(Organization(7))
	require.True(t, failure.Is(err, failure.UnknownOrganization))

	path, err := r.WalletPath(Org1)
	require.NoError(t, err)
	require.Equal(t, walletDir, path)

	cred, err := r.ResolveCredential(path, "bidder")
	require.NoError(t, err)
	require.Equal(t, "Org1MSP", cred.MSPID)

	_, err = r.ResolveCredential(path, "nobody")
	require.True(t, failure.Is(err, failure.CredentialNotFound))
}
