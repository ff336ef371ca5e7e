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

package common

import (
	"github.com/pkg/errors"
)

var (
	ErrNotSupported             = errors.New("operation not supported")
	ErrUnsupportedCalculateType = errors.New("unsupported calculate type")
	ErrDivisionByZero           = errors.New("division by zero")
	ErrNoComponents             = errors.New("no components to calculate")
	ErrUnknownMetric            = errors.New("unknown metric")
	ErrUnknownDiagram           = errors.New("unknown diagram kind")
	ErrDecodeImage              = errors.New("read call graph data failed")
)
