/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package measure

import (
	"io/ioutil"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	times []time.Time
}

func (c *fakeClock) now() time.Time {
	t := c.times[0]
	if len(c.times) > 1 {
		c.times = c.times[1:]
	}
	return t
}

func TestRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "measure_bid.txt")
	base := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	clock := &fakeClock{times: []time.Time{base, base.Add(1500 * time.Millisecond)}}

	r := start(path, clock.now)
	require.Equal(t, 1.5, r.Record())

	contents, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "1.5\r\n", string(contents))
}

func TestRecordOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "measure_bid.txt")
	r := Start(path)

	first := r.Record()
	require.GreaterOrEqual(t, first, 0.0)
	require.Equal(t, -1.0, r.Record())

	contents, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, strings.Split(strings.TrimSuffix(string(contents), "\r\n"), "\r\n"), 1)
}

func TestRecordAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "measure_bid.txt")
	require.NoError(t, ioutil.WriteFile(path, []byte("0.25\r\n"), 0o644))

	Start(path).Record()

	contents, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(contents), "0.25\r\n"))
	require.Equal(t, 2, strings.Count(string(contents), "\r\n"))
}

func TestRecordCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "bid", "measure_bid.txt")
	Start(path).Record()

	contents, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(string(contents), "\r\n"))
}

func TestRecordFailureIsSwallowed(t *testing.T) {
	// 路径是一个目录, 追加必然失败
	dir := t.TempDir()
	r := Start(dir)
	require.NotPanics(t, func() {
		require.GreaterOrEqual(t, r.Record(), 0.0)
	})
}

func TestConcurrentRecorders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "measure_bid.txt")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Start(path).Record()
		}()
	}
	wg.Wait()

	contents, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(contents), "\r\n"), "\r\n")
	require.Len(t, lines, 20)
	for _, line := range lines {
		v, err := strconv.ParseFloat(line, 64)
		require.NoError(t, err)
		require.GreaterOrEqual(t, v, 0.0)
	}
}

func TestDefaultPath(t *testing.T) {
	require.Equal(t, DefaultFile, Start("").Path)
}

func TestFormatLine(t *testing.T) {
	require.Equal(t, "0.123\r\n", FormatLine(0.123))
	require.Equal(t, "2\r\n", FormatLine(2))
}
