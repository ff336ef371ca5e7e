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
	"github.com/op/go-logging"
)

type PrefixLogger struct {
	prefix string
	log    *logging.Logger
}

// 获取带前缀的logger，ExtraCalldepth加1以便拿到调用方的文件名，行号等信息
func GetPrefixLogger(module, prefix string) (*PrefixLogger, error) {
	logger, err := logging.GetLogger(module)
	if err != nil {
		return nil, err
	}
	logger.ExtraCalldepth++
	return &PrefixLogger{prefix, logger}, nil
}

func (l *PrefixLogger) Prefix() string {
	return l.prefix
}

func (l *PrefixLogger) Error(args ...interface{}) {
	if l.log.IsEnabledFor(logging.ERROR) {
		args = append([]interface{}{l.prefix}, args...)
		l.log.Error(args...)
	}
}

func (l *PrefixLogger) Errorf(format string, args ...interface{}) {
	if l.log.IsEnabledFor(logging.ERROR) {
		l.log.Errorf(l.prefix+" "+format, args...)
	}
}

func (l *PrefixLogger) Warningf(format string, args ...interface{}) {
	if l.log.IsEnabledFor(logging.WARNING) {
		l.log.Warningf(l.prefix+" "+format, args...)
	}
}

func (l *PrefixLogger) Infof(format string, args ...interface{}) {
	if l.log.IsEnabledFor(logging.INFO) {
		l.log.Infof(l.prefix+" "+format, args...)
	}
}

func (l *PrefixLogger) Debugf(format string, args ...interface{}) {
	if l.log.IsEnabledFor(logging.DEBUG) {
		l.log.Debugf(l.prefix+" "+format, args...)
	}
}
