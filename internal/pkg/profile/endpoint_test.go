/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package profile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGatewayPeerAsLocalhost(t *testing.T) {
	nc, err := GetConfig(filepath.Join("testdata", "connection-org1.json"))
	require.NoError(t, err)

	pe, err := nc.GatewayPeer(true)
	require.NoError(t, err)
	require.Equal(t, "peer0.org1.example.com", pe.Name)
	require.Equal(t, "localhost:7051", pe.Address)
	require.True(t, pe.UseTLS)
	require.Equal(t, "peer0.org1.example.com", pe.ServerNameOverride)
	require.Contains(t, string(pe.TLSRootCert), "TESTCERT")
	require.Equal(t, "peer0.org1.example.com (localhost:7051)", pe.String())
}

func TestGatewayPeerWithoutLocalhost(t *testing.T) {
	nc, err := GetConfig(filepath.Join("testdata", "connection-org2.yaml"))
	require.NoError(t, err)

	pe, err := nc.GatewayPeer(false)
	require.NoError(t, err)
	require.Equal(t, "peer0.org2.example.com:9051", pe.Address)
	require.Empty(t, pe.ServerNameOverride)

	pe, err = nc.GatewayPeer(true)
	require.NoError(t, err)
	require.Equal(t, "localhost:9051", pe.Address)
	require.Equal(t, "peer0.org2.example.com", pe.ServerNameOverride)
}

func TestGatewayPeerFallsBackToPeers(t *testing.T) {
	nc := &NetworkConfig{
		Client:        ClientConfig{Organization: "Org1"},
		Organizations: map[string]OrganizationConfig{"Org1": {}},
		Peers: map[string]PeerConfig{
			"peer1": {URL: "grpc://peer1:7051"},
			"peer0": {URL: "grpc://peer0:7051"},
		},
	}
	pe, err := nc.GatewayPeer(false)
	require.NoError(t, err)
	require.Equal(t, "peer0", pe.Name)
	require.False(t, pe.UseTLS)
}

func TestGatewayPeerErrors(t *testing.T) {
	tests := []struct {
		name   string
		config *NetworkConfig
		errMsg string
	}{
		{
			name:   "no client organization",
			config: &NetworkConfig{},
			errMsg: "连接配置文件缺少 client.organization",
		},
		{
			name: "no peers",
			config: &NetworkConfig{
				Client:        ClientConfig{Organization: "Org1"},
				Organizations: map[string]OrganizationConfig{"Org1": {}},
			},
			errMsg: "组织 Org1 没有可用的 peer 节点",
		},
		{
			name: "undefined peer",
			config: &NetworkConfig{
				Client:        ClientConfig{Organization: "Org1"},
				Organizations: map[string]OrganizationConfig{"Org1": {Peers: []string{"ghost"}}},
			},
			errMsg: "组织 Org1 的 peer 节点 [ghost] 未在 peers 中定义",
		},
		{
			name: "tls without ca",
			config: &NetworkConfig{
				Client:        ClientConfig{Organization: "Org1"},
				Organizations: map[string]OrganizationConfig{"Org1": {Peers: []string{"p"}}},
				Peers:         map[string]PeerConfig{"p": {URL: "grpcs://p:7051"}},
			},
			errMsg: "peer 节点 p 使用 TLS 但没有配置 tlsCACerts",
		},
		{
			name: "bad scheme",
			config: &NetworkConfig{
				Client:        ClientConfig{Organization: "Org1"},
				Organizations: map[string]OrganizationConfig{"Org1": {Peers: []string{"p"}}},
				Peers:         map[string]PeerConfig{"p": {URL: "https://p:7051"}},
			},
			errMsg: "peer 节点 p: 不支持的 url 协议 https",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.config.GatewayPeer(true)
			require.EqualError(t, err, tt.errMsg)
		})
	}
}

func TestSplitURL(t *testing.T) {
	host, port, scheme, err := splitURL("grpcs://peer0.org1.example.com:7051")
	require.NoError(t, err)
	require.Equal(t, "peer0.org1.example.com", host)
	require.Equal(t, "7051", port)
	require.Equal(t, "grpcs", scheme)

	host, port, scheme, err = splitURL("localhost:7051")
	require.NoError(t, err)
	require.Equal(t, "localhost", host)
	require.Equal(t, "7051", port)
	require.Empty(t, scheme)

	_, _, _, err = splitURL("")
	require.EqualError(t, err, "url 为空")

	_, _, _, err = splitURL("grpc://nohostport")
	require.Error(t, err)
}
