/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package viperutil 将 viper 配置解码为结构体, 补充 viper.Unmarshal 不支持的值格式.
package viperutil

import (
	"io/ioutil"
	"math"
	"path/filepath"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/YECHAFLY/fabric-test/core/config"
	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

var logger = flogging.MustGetLogger("bid.viperutil")

// 例如 "100M", "4 KB", "1g"; 没有单位的数字交给 WeaklyTypedInput 处理
var byteSizeRegexp = regexp.MustCompile(`^([0-9]+)\s*([kKmMgG])[bB]?$`)

var byteUnits = map[string]uint{"k": 10, "m": 20, "g": 30}

// parseByteSize 返回字节数, raw 不是带单位的大小时 ok 为 false
func parseByteSize(raw string) (size uint64, ok bool, err error) {
	m := byteSizeRegexp.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return 0, false, nil
	}
	n, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return 0, false, nil
	}
	size = n << byteUnits[strings.ToLower(m[2])]
	if size > math.MaxInt32 {
		return 0, true, errors.Errorf("配置值 '%s' 超出 int32 范围", raw)
	}
	return size, true, nil
}

// byteSizeDecodeHook 将带单位的字符串解码为整数字段, 例如 maxRecvMsgSize: 100M
func byteSizeDecodeHook(f reflect.Kind, t reflect.Kind, data interface{}) (interface{}, error) {
	if f != reflect.String {
		return data, nil
	}
	switch t {
	case reflect.Int, reflect.Int32, reflect.Int64, reflect.Uint32:
	default:
		return data, nil
	}
	size, ok, err := parseByteSize(data.(string))
	if err != nil {
		return nil, err
	}
	if !ok {
		return data, nil
	}
	return size, nil
}

// listDecodeHook 将 "[peer0, peer1]" 形式的字符串 (通常来自环境变量) 解码为字符串切片
func listDecodeHook(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
	if f.Kind() != reflect.String || t.Kind() != reflect.Slice {
		return data, nil
	}
	raw := strings.TrimSpace(data.(string))
	if !strings.HasPrefix(raw, "[") || !strings.HasSuffix(raw, "]") || len(raw) < 2 {
		return data, nil
	}
	var items []string
	for _, item := range strings.Split(raw[1:len(raw)-1], ",") {
		items = append(items, strings.TrimSpace(item))
	}
	return items, nil
}

// pemFileDecodeHook 将 {file: path} 解码为文件内容, 相对路径以 baseDir 为基准.
// file 为空字符串时解码为空字符串, 表示未配置.
func pemFileDecodeHook(baseDir string) mapstructure.DecodeHookFuncKind {
	return func(f reflect.Kind, t reflect.Kind, data interface{}) (interface{}, error) {
		if f != reflect.Map || t != reflect.String {
			return data, nil
		}
		m, ok := data.(map[string]interface{})
		if !ok {
			return data, nil
		}
		value, ok := m["file"]
		if !ok {
			return data, nil
		}
		name, ok := value.(string)
		if !ok {
			return nil, errors.Errorf("file 的值必须是字符串, 实际为 %T", value)
		}
		if name == "" {
			return "", nil
		}
		path := config.TranslatePath(baseDir, name)
		content, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "无法读取 %s", path)
		}
		return string(content), nil
	}
}

// EnhancedUnmarshal 将 viper 中的全部配置 (默认值, 配置文件, 环境变量, 标志) 解码到 output,
// output 必须是结构体指针.
func EnhancedUnmarshal(v *viper.Viper, output interface{}) error {
	oType := reflect.TypeOf(output)
	if oType == nil || oType.Kind() != reflect.Ptr || oType.Elem().Kind() != reflect.Struct {
		return errors.New("提供的输出参数必须是指向结构的指针类型")
	}

	baseDir := ""
	if used := v.ConfigFileUsed(); used != "" {
		baseDir = filepath.Dir(used)
	}

	settings := v.AllSettings()
	logger.Debugf("配置: %+v", settings)

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           output,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			listDecodeHook,
			byteSizeDecodeHook,
			pemFileDecodeHook(baseDir),
		),
	})
	if err != nil {
		return errors.Wrap(err, "创建配置解码器失败")
	}
	if err := decoder.Decode(settings); err != nil {
		return errors.Wrap(err, "解析配置失败")
	}
	return nil
}
