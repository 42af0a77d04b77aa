/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package measure 记录一次调用的墙钟耗时, 以追加方式写入测量日志.
package measure

import (
	"strconv"
	"sync"
	"time"

	"github.com/YECHAFLY/fabric-test/internal/fileutil"
	"github.com/hyperledger/fabric-lib-go/common/flogging"
)

var logger = flogging.MustGetLogger("bid.measure")

// DefaultFile 测量日志的默认文件名
const DefaultFile = "measure_bid.txt"

// Recorder 持有开始时间和测量日志路径. Record 最多生效一次.
type Recorder struct {
	Path  string
	start time.Time
	now   func() time.Time
	once  sync.Once
}

// Start 在业务逻辑开始时调用, 记录开始时间
func Start(path string) *Recorder {
	return start(path, time.Now)
}

func start(path string, now func() time.Time) *Recorder {
	if path == "" {
		path = DefaultFile
	}
	return &Recorder{Path: path, start: now(), now: now}
}

// Elapsed 返回从开始到现在经过的秒数
func (r *Recorder) Elapsed() float64 {
	elapsed := r.now().Sub(r.start).Seconds()
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Record 将耗时 "<秒>\r\n" 追加到测量日志. 写入失败只记录警告, 不影响调用结果.
// 返回写入的秒数, 重复调用返回 -1 且不写入.
func (r *Recorder) Record() float64 {
	recorded := -1.0
	r.once.Do(func() {
		recorded = r.Elapsed()
		line := FormatLine(recorded)
		if err := fileutil.CreateParentDirIfMissing(r.Path); err != nil {
			logger.Warnf("写入测量日志 %s 失败: %s", r.Path, err)
			return
		}
		if err := fileutil.AppendToFile(r.Path, []byte(line), 0o644); err != nil {
			logger.Warnf("写入测量日志 %s 失败: %s", r.Path, err)
			return
		}
		logger.Debugf("耗时 %ss 已写入 %s", line[:len(line)-2], r.Path)
	})
	return recorded
}

// FormatLine 返回一条测量记录
func FormatLine(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64) + "\r\n"
}
