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
	"io"
	"os"
	"path"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/op/go-logging"
)

const (
	LOG_ROTATION_INTERVAL = 24 * time.Hour      // every day
	LOG_MAX_AGE           = 30 * 24 * time.Hour // every month
	LOG_FORMAT            = "%{time:2006-01-02 15:04:05.000} [%{level:.4s}] [%{module}] %{shortfile} %{message}"
	LOG_COLOR_FORMAT      = "%{color}%{time:2006-01-02 15:04:05.000} [%{level:.4s}]%{color:reset} [%{module}] %{shortfile} %{message}"
)

var log = logging.MustGetLogger("logger")

func newLeveledBackend(w io.Writer, format string, level logging.Level) logging.LeveledBackend {
	backend := logging.AddModuleLevel(
		logging.NewBackendFormatter(
			logging.NewLogBackend(w, "", 0),
			logging.MustStringFormatter(format),
		),
	)
	backend.SetLevel(level, "")
	return backend
}

// InitConsoleLog 仅输出到标准错误，ctl 工具的标准输出留给结果数据
func InitConsoleLog(levelString string) error {
	level, err := logging.LogLevel(levelString)
	if err != nil {
		return err
	}
	logging.SetBackend(newLeveledBackend(os.Stderr, LOG_COLOR_FORMAT, level))
	return nil
}

func InitLog(filePath string, levelString string) error {
	level, err := logging.LogLevel(levelString)
	if err != nil {
		return err
	}

	stdout := newLeveledBackend(os.Stdout, LOG_COLOR_FORMAT, level)

	dir := path.Dir(filePath)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			os.MkdirAll(dir, 0755)
		} else {
			log.Error(err.Error())
		}
	}

	ioWriter, err := rotatelogs.New(
		filePath+".%Y-%m-%d",
		rotatelogs.WithLinkName(filePath),
		rotatelogs.WithMaxAge(LOG_MAX_AGE),
		rotatelogs.WithRotationTime(LOG_ROTATION_INTERVAL),
	)
	if err != nil {
		return err
	}

	file := newLeveledBackend(ioWriter, LOG_FORMAT, level)
	logging.SetBackend(stdout, file)
	return nil
}
