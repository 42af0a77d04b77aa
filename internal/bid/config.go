/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bid

import (
	"os"
	"time"

	"github.com/YECHAFLY/fabric-test/common/viperutil"
	"github.com/YECHAFLY/fabric-test/core/config"
	"github.com/YECHAFLY/fabric-test/internal/pkg/comm"
	"github.com/YECHAFLY/fabric-test/internal/pkg/failure"
	gwconfig "github.com/YECHAFLY/fabric-test/internal/pkg/gateway/config"
	"github.com/YECHAFLY/fabric-test/internal/pkg/measure"
	"github.com/spf13/viper"
)

// CmdRoot 环境变量前缀, 例如 BID_NETWORK_CHANNEL
const CmdRoot = "bid"

const (
	defaultChannel  = "mychannel"
	defaultContract = "auction"
)

// Config 是 bid 客户端的全部配置
type Config struct {
	Network       NetworkConfig        `mapstructure:"network"`
	Organizations map[string]OrgConfig `mapstructure:"organizations"`
	Measurement   struct {
		File string `mapstructure:"file"`
	} `mapstructure:"measurement"`
	Logging struct {
		Spec string `mapstructure:"spec"`
	} `mapstructure:"logging"`

	// Timeouts 网关客户端的超时设置, 由 network.timeouts 解析
	Timeouts gwconfig.Options `mapstructure:"-"`
}

// NetworkConfig 网络和连接设置
type NetworkConfig struct {
	Channel   string `mapstructure:"channel"`
	Contract  string `mapstructure:"contract"`
	Discovery struct {
		AsLocalhost bool `mapstructure:"asLocalhost"`
	} `mapstructure:"discovery"`
	Client struct {
		ConnTimeout    time.Duration `mapstructure:"connTimeout"`
		MaxRecvMsgSize int           `mapstructure:"maxRecvMsgSize"`
		MaxSendMsgSize int           `mapstructure:"maxSendMsgSize"`
	} `mapstructure:"client"`
	TLS struct {
		ClientAuthRequired bool `mapstructure:"clientAuthRequired"`
		// GM 使用国密 TLS 连接 peer
		GM bool `mapstructure:"gm"`
		// ClientCert, ClientKey 由 {file: path} 读取的 PEM 内容
		ClientCert string `mapstructure:"clientCert"`
		ClientKey  string `mapstructure:"clientKey"`
	} `mapstructure:"tls"`
}

// setDefaults 设置内置默认值, 没有配置文件时也能直接访问 fabric-samples 的测试网络
func setDefaults(v *viper.Viper) {
	v.SetDefault("network.channel", defaultChannel)
	v.SetDefault("network.contract", defaultContract)
	v.SetDefault("network.discovery.asLocalhost", true)
	v.SetDefault("network.client.connTimeout", "10s")
	v.SetDefault("network.client.maxRecvMsgSize", comm.DefaultMaxRecvMsgSize)
	v.SetDefault("network.client.maxSendMsgSize", comm.DefaultMaxSendMsgSize)
	v.SetDefault("network.tls.clientAuthRequired", false)
	v.SetDefault("network.tls.gm", false)
	v.SetDefault("network.tls.clientCert.file", "")
	v.SetDefault("network.tls.clientKey.file", "")
	for _, org := range Organizations() {
		v.SetDefault("organizations."+org.Key()+".connectionProfile", org.defaultProfile())
		v.SetDefault("organizations."+org.Key()+".wallet", org.defaultWallet())
	}
	v.SetDefault("measurement.file", measure.DefaultFile)
	v.SetDefault("logging.spec", "info:grpc=error")
}

// LoadConfig 读取配置文件(如果存在), 合并默认值和 BID_ 前缀的环境变量.
// configFile 为空时在 BID_CFG_PATH, 当前目录, ./sampleconfig, /etc/hyperledger/bid 中查找 bid.yaml.
func LoadConfig(v *viper.Viper, configFile string) (*Config, error) {
	config.InitViper(v, CmdRoot, config.DefaultConfigName, configFile)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || configFile != "" {
			return nil, failure.Wrap(err, failure.Configuration, "读取配置文件失败")
		}
		logger.Debug("没有找到配置文件, 使用内置默认值")
	}

	conf := &Config{}
	if err := viperutil.EnhancedUnmarshal(v, conf); err != nil {
		return nil, failure.Wrap(err, failure.Configuration, "无法解析配置")
	}
	conf.Timeouts = gwconfig.GetOptions(v)

	// 配置文件中的相对路径以配置文件所在目录为基准
	conf.Measurement.File = config.GetPath(v, "measurement.file")
	for key, org := range conf.Organizations {
		org.ConnectionProfile = config.GetPath(v, "organizations."+key+".connectionProfile")
		org.Wallet = config.GetPath(v, "organizations."+key+".wallet")
		conf.Organizations[key] = org
	}

	return conf, nil
}

// ClientConfig 返回到网关 peer 的 gRPC 连接设置, TLS 根证书由连接配置文件提供
func (c *Config) ClientConfig() (comm.ClientConfig, error) {
	cc := comm.ClientConfig{
		DialTimeout:    c.Network.Client.ConnTimeout,
		MaxRecvMsgSize: c.Network.Client.MaxRecvMsgSize,
		MaxSendMsgSize: c.Network.Client.MaxSendMsgSize,
		KaOpts:         comm.DefaultKeepaliveOptions,
		SecOpts: comm.SecureOptions{
			UseGMTLS:          c.Network.TLS.GM,
			RequireClientCert: c.Network.TLS.ClientAuthRequired,
		},
	}
	if c.Network.TLS.ClientAuthRequired {
		if c.Network.TLS.ClientCert == "" || c.Network.TLS.ClientKey == "" {
			return comm.ClientConfig{}, failure.New(failure.Configuration,
				"network.tls.clientAuthRequired 为 true 时需要 clientCert 和 clientKey")
		}
		cc.SecOpts.Certificate = []byte(c.Network.TLS.ClientCert)
		cc.SecOpts.Key = []byte(c.Network.TLS.ClientKey)
	}
	return cc, nil
}

// loggingSpec 环境变量 FABRIC_LOGGING_SPEC 优先于配置
func (c *Config) loggingSpec() string {
	if spec := os.Getenv("FABRIC_LOGGING_SPEC"); spec != "" {
		return spec
	}
	return c.Logging.Spec
}
