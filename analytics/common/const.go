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
	"strconv"

	"go.opentelemetry.io/otel/codes"
)

const (
	RESULT_KEY     = "_result_"
	DATAPOINTS_KEY = "datapoints"
	DIMENSIONS_KEY = "dimensions"

	DIMENSION_STATUS_CODE     = "status_code"
	DIMENSION_APDEX_TYPE      = "apdex_type"
	DIMENSION_FROM_SPAN_ERROR = "from_span_error"
	DIMENSION_TO_SPAN_ERROR   = "to_span_error"
)

// status_code 维度中错误状态的取值, 与 OpenTelemetry 的 StatusCode.Error 一致
var STATUS_CODE_ERROR = strconv.Itoa(int(codes.Error))

const (
	APDEX_SATISFIED  = "satisfied"
	APDEX_TOLERATING = "tolerating"
	APDEX_FRUSTRATED = "frustrated"
)

const (
	CALCULATE_TYPE_FULL   = "full"
	CALCULATE_TYPE_CALLER = "caller"
	CALCULATE_TYPE_CALLEE = "callee"
)

// metric names used to select a calculation
const (
	METRIC_REQUEST_COUNT          = "request_count"
	METRIC_ERROR_RATE             = "error_rate"
	METRIC_APDEX                  = "apdex"
	METRIC_FLOW_ERROR_RATE_FULL   = "flow_error_rate_full"
	METRIC_FLOW_ERROR_RATE_CALLER = "flow_error_rate_caller"
	METRIC_FLOW_ERROR_RATE_CALLEE = "flow_error_rate_callee"
)

const (
	SERIES_TYPE_BAR  = "bar"
	SERIES_TYPE_LINE = "line"

	TARGET_APDEX      = "apdex"
	TARGET_FLOW       = "flow"
	TARGET_ERROR_RATE = "error_rate"
	TARGET_RESULT     = "_result_"
)

// diagram kinds
const (
	DIAGRAM_CALLGRAPH = "callgraph"
	DIAGRAM_TENDENCY  = "tendency"
)

const (
	DATA_MODE_RAW   = "raw"
	DATA_MODE_IMAGE = "image"
)

const (
	TENDENCY_FIELD_KEY     = "(round((cast(dtEventTimeStamp as DOUBLE) / cast(60000 as DOUBLE))) * cast(60 as DOUBLE))"
	TENDENCY_VALUE_KEY     = "sum(value)"
	TENDENCY_DIMENSION_KEY = "device_name"
	TENDENCY_QUERY_ITEM    = "查询项"
	TENDENCY_COMPARE_ITEM  = "对比项"
)
