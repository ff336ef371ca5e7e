/*
 * Copyright (c) 2024 Yunshan Networks
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func TestInitLogLevel(t *testing.T) {
	for _, tc := range []struct {
		level   string
		wantErr bool
	}{
		{"info", false},
		{"DEBUG", false},
		{"warning", false},
		{"verbose", true},
	} {
		err := InitConsoleLog(tc.level)
		if (err != nil) != tc.wantErr {
			t.Errorf("InitConsoleLog(%s) err=%v, wantErr=%v", tc.level, err, tc.wantErr)
		}
	}
}

func TestInitLogCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	err := InitLog(filepath.Join(dir, "analytics.log"), "info")
	assert.Nil(t, err)
	_, err = os.Stat(dir)
	assert.Nil(t, err)
}

func TestPrefixLogger(t *testing.T) {
	backend := logging.InitForTesting(logging.INFO)

	l, err := GetPrefixLogger("prefix-test", "[callgraph]")
	assert.Nil(t, err)
	assert.Equal(t, "[callgraph]", l.Prefix())

	l.Error("render failed:", "exit status 1")
	l.Warningf("%d rows dropped", 3)
	l.Debugf("filtered below %s", "info")

	messages := []string{}
	for n := backend.Head(); n != nil; n = n.Next() {
		messages = append(messages, n.Record.Message())
	}
	assert.Equal(t, []string{
		"[callgraph] render failed: exit status 1",
		"[callgraph] 3 rows dropped",
	}, messages)
}
