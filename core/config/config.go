/*
Copyright Greg Haskins <gregory.haskins@gmail.com> 2017, All Rights Reserved.
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/YECHAFLY/fabric-test/internal/fileutil"
	"github.com/spf13/viper"
)

// CfgPathEnv 指定配置目录的环境变量
const CfgPathEnv = "BID_CFG_PATH"

// 配置文件的搜索目录, 按优先顺序排在 BID_CFG_PATH 之后
const (
	Current      = "./"
	SampleConfig = "./sampleconfig"
	OfficialPath = "/etc/hyperledger/bid"
)

// DefaultConfigName 默认的配置文件名称 (不含扩展名)
const DefaultConfigName = "bid"

func dirExists(path string) bool {
	exists, err := fileutil.DirExists(path)
	return err == nil && exists
}

// AddLocalViperConfigPaths 添加配置搜索路径: BID_CFG_PATH, 当前目录, ./sampleconfig, /etc/hyperledger/bid.
// 不存在的目录被跳过.
func AddLocalViperConfigPaths(v *viper.Viper) {
	if p := os.Getenv(CfgPathEnv); p != "" {
		v.AddConfigPath(p)
	}
	v.AddConfigPath(Current)
	for _, dir := range []string{SampleConfig, OfficialPath} {
		if dirExists(dir) {
			v.AddConfigPath(dir)
		}
	}
}

// TranslatePath 将相对路径 p 解释为相对于目录 base 的路径, 绝对路径原样返回
func TranslatePath(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// GetPath 函数用于获取配置字符串中指定的相对路径, 相对路径以使用的配置文件所在目录为基准.
// 没有读取配置文件时以当前目录为基准.
func GetPath(v *viper.Viper, key string) string {
	p := v.GetString(key)
	if p == "" {
		return ""
	}
	if v.ConfigFileUsed() == "" {
		return p
	}
	return TranslatePath(filepath.Dir(v.ConfigFileUsed()), p)
}

// GetConfig 返回与可执行文件同名的配置文件名称, 例如 ./bid 使用 bid.yaml
func GetConfig() string {
	appName := filepath.Base(os.Args[0])
	appNameWithoutExt := strings.TrimSuffix(appName, filepath.Ext(appName))
	appNameWithoutExt = strings.TrimPrefix(appNameWithoutExt, ".")
	if appNameWithoutExt == "" {
		return DefaultConfigName
	}
	return appNameWithoutExt
}

// InitViper 执行基本的 viper 配置层初始化: 设置环境变量前缀, 配置搜索路径和配置文件名称.
// 如果与可执行文件同名的配置文件存在则优先使用, 否则使用 configName.
// configFile 非空时直接使用该文件.
func InitViper(v *viper.Viper, envPrefix, configName, configFile string) {
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configFile != "" {
		v.SetConfigFile(configFile)
		return
	}

	AddLocalViperConfigPaths(v)
	v.SetConfigName(configName)
	if appName := GetConfig(); appName != configName {
		probe := viper.New()
		AddLocalViperConfigPaths(probe)
		probe.SetConfigName(appName)
		if err := probe.ReadInConfig(); err == nil {
			v.SetConfigName(appName)
		}
	}
}
