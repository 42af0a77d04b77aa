/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bid 实现 bid 命令: 以拍卖参与者的身份向 auction 链码提交一次出价.
package bid

import (
	"fmt"
	"io"
	"os"

	"github.com/YECHAFLY/fabric-test/common/metadata"
	"github.com/YECHAFLY/fabric-test/internal/pkg/failure"
	"github.com/YECHAFLY/fabric-test/internal/pkg/gateway"
	"github.com/YECHAFLY/fabric-test/internal/pkg/identity"
	"github.com/YECHAFLY/fabric-test/internal/pkg/measure"
	"github.com/YECHAFLY/fabric-test/internal/pkg/profile"
	"github.com/google/uuid"
	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var logger = flogging.MustGetLogger("bid")

const argCount = 5

// Session 是 bid 使用的网关会话操作
type Session interface {
	BindContract(channelName, contractName string) (gateway.Contract, error)
	Endpoint() *profile.PeerEndpoint
	Close()
}

// ConnectFunc 建立网关会话
type ConnectFunc func(nc *profile.NetworkConfig, signer identity.SignerIdentity, options gateway.Options) (Session, error)

func connect(nc *profile.NetworkConfig, signer identity.SignerIdentity, options gateway.Options) (Session, error) {
	session, err := gateway.Connect(nc, signer, options)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// CmdFactory 持有 bid 命令需要的配置和依赖
type CmdFactory struct {
	Config   *Config
	Resolver Resolver
	Connect  ConnectFunc
}

// InitCmdFactory 读取配置, 初始化日志, 并构建组织表
func InitCmdFactory(v *viper.Viper, configFile string, logOutput io.Writer) (*CmdFactory, error) {
	conf, err := LoadConfig(v, configFile)
	if err != nil {
		return nil, err
	}

	err = flogging.Global.Apply(flogging.Config{
		Format:  os.Getenv("FABRIC_LOGGING_FORMAT"), // 指定日志的格式
		Writer:  logOutput,                          // 指定日志的输出位置
		LogSpec: conf.loggingSpec(),                 // 指定日志的级别和过滤规则
	})
	if err != nil {
		return nil, failure.Wrap(err, failure.Configuration, "无效的日志配置")
	}
	if used := v.ConfigFileUsed(); used != "" {
		logger.Debugf("使用配置文件 %s", used)
	}

	table, err := NewOrgTable(conf.Organizations)
	if err != nil {
		return nil, err
	}

	return &CmdFactory{
		Config:   conf,
		Resolver: NewResolver(table),
		Connect:  connect,
	}, nil
}

// Cmd 返回 bid 命令. cf 为 nil 时在运行时由配置构建.
func Cmd(cf *CmdFactory) *cobra.Command {
	v := viper.New()
	var configFile string

	cmd := &cobra.Command{
		Use:   "bid org userID auctionID prices quantities",
		Short: "向 auction 链码提交出价",
		Long: "以 org 组织中已注册用户 userID 的身份, 向 mychannel 通道上的 auction 链码提交 Bid 交易.\n" +
			"Org must be Org1 or Org2. 每次调用的耗时追加到测量日志.",
		Version:       metadata.GetInfo(),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return submitBid(cmd, args, v, configFile, cf)
		},
	}

	cmd.SetVersionTemplate("{{.Name}} version {{.Version}}")

	flags := cmd.Flags()
	// 标志只能出现在 org 之前, 之后的参数原样作为位置参数, 例如以 - 开头的价格
	flags.SetInterspersed(false)
	flags.StringVar(&configFile, "config", "", "配置文件路径, 默认在 BID_CFG_PATH, ./, ./sampleconfig 中查找 bid.yaml")
	flags.String("channel", "", "通道名称 (默认 mychannel)")
	flags.String("contract", "", "链码名称 (默认 auction)")
	flags.String("measure-file", "", "测量日志文件 (默认 measure_bid.txt)")
	flags.Bool("as-localhost", false, "将 peer 主机名替换为 localhost (默认 true)")
	// 命令行参数与 viper 绑定, 只有显式设置的标志才覆盖配置
	v.BindPFlag("network.channel", flags.Lookup("channel"))
	v.BindPFlag("network.contract", flags.Lookup("contract"))
	v.BindPFlag("measurement.file", flags.Lookup("measure-file"))
	v.BindPFlag("network.discovery.asLocalhost", flags.Lookup("as-localhost"))

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		fmt.Fprintln(c.ErrOrStderr(), "Error:", err)
		return failure.Wrap(err, failure.Argument, "无效的命令行标志")
	})

	return cmd
}

// parseArgs 将位置参数解析为出价请求, 不做任何 I/O
func parseArgs(args []string) (Request, error) {
	if len(args) != argCount {
		return Request{}, failure.Errorf(failure.Argument,
			"需要 %d 个参数 org userID auctionID prices quantities, 实际为 %d", argCount, len(args))
	}
	org, err := ParseOrganization(args[0])
	if err != nil {
		return Request{}, err
	}
	return Request{
		AuctionID:  args[2],
		Prices:     args[3],
		Quantities: args[4],
		Submitter:  Identity{Organization: org, UserName: args[1]},
	}, nil
}

func submitBid(cmd *cobra.Command, args []string, v *viper.Viper, configFile string, cf *CmdFactory) error {
	request, err := parseArgs(args)
	if err != nil {
		// cobra 随后打印用法
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		return err
	}

	// 命令行的解析完成，所以沉默cmd的使用
	cmd.SilenceUsage = true

	if cf == nil {
		cf, err = InitCmdFactory(v, configFile, cmd.ErrOrStderr())
		if err != nil {
			return reportFailure(cmd.ErrOrStderr(), err)
		}
	}

	recorder := measure.Start(cf.Config.Measurement.File)
	defer recorder.Record()

	log := logger.With("run", uuid.New().String())
	log.Infof("%s 提交出价, 拍卖 %s", request.Submitter, request.AuctionID)

	result, err := cf.submit(cmd.OutOrStdout(), request)
	if err != nil {
		log.Debugf("出价失败: %s", failure.KindOf(err))
		return reportFailure(cmd.ErrOrStderr(), err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "*** Result: committed %s\n", result)
	return nil
}

// submit 解析身份, 建立会话, 绑定合约并提交出价. 会话在返回前关闭.
func (cf *CmdFactory) submit(out io.Writer, request Request) ([]byte, error) {
	org := request.Submitter.Organization

	nc, err := cf.Resolver.ResolveProfile(org)
	if err != nil {
		return nil, err
	}
	walletPath, err := cf.Resolver.WalletPath(org)
	if err != nil {
		return nil, err
	}
	cred, err := cf.Resolver.ResolveCredential(walletPath, request.Submitter.UserName)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, failure.Errorf(failure.CredentialNotFound,
			"An identity for the user %s does not exist in the wallet %s", request.Submitter.UserName, walletPath)
	}

	clientConfig, err := cf.Config.ClientConfig()
	if err != nil {
		return nil, err
	}
	session, err := cf.Connect(nc, cred, gateway.Options{
		AsLocalhost: cf.Config.Network.Discovery.AsLocalhost,
		Client:      clientConfig,
		Timeouts:    cf.Config.Timeouts,
	})
	if err != nil {
		return nil, err
	}
	defer session.Close()
	logger.Debugf("%s 通过网关 peer %s 提交", request.Submitter, session.Endpoint())

	contract, err := session.BindContract(cf.Config.Network.Channel, cf.Config.Network.Contract)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "\n--> Submit Transaction: %s\n", TransactionName)
	return Submit(contract, request)
}

// reportFailure 打印失败消息和包含堆栈及网关详情的诊断信息
func reportFailure(w io.Writer, err error) error {
	fmt.Fprintf(w, "******** FAILED to submit bid: %s\n", err)
	fmt.Fprintf(w, "%+v\n", err)
	if failure.KindOf(err) == failure.Unknown {
		return failure.Wrap(err, failure.Submission, "提交出价失败")
	}
	return err
}
