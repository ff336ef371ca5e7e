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

package calculation

import (
	"github.com/pkg/errors"

	"github.com/deepflowio/apm-analytics/analytics/common"
	"github.com/deepflowio/apm-analytics/analytics/config"
)

// NewCalculation selects the calculation for a metric name. A nil cfg
// falls back to the default thresholds.
func NewCalculation(metric string, cfg *config.Calculation) (Calculation, error) {
	if cfg == nil {
		cfg = &config.DefaultConfig().AnalyticsConfig.Calculation
	}
	switch metric {
	case common.METRIC_REQUEST_COUNT:
		return &Base{}, nil
	case common.METRIC_ERROR_RATE:
		return &ErrorRate{}, nil
	case common.METRIC_APDEX:
		return NewApdex(cfg.Apdex), nil
	case common.METRIC_FLOW_ERROR_RATE_FULL:
		return NewFlowMetricErrorRate(common.CALCULATE_TYPE_FULL), nil
	case common.METRIC_FLOW_ERROR_RATE_CALLER:
		return NewFlowMetricErrorRate(common.CALCULATE_TYPE_CALLER), nil
	case common.METRIC_FLOW_ERROR_RATE_CALLEE:
		return NewFlowMetricErrorRate(common.CALCULATE_TYPE_CALLEE), nil
	}
	log.Warningf("unknown metric %s", metric)
	return nil, errors.Wrapf(common.ErrUnknownMetric, "%q", metric)
}

func Metrics() []string {
	return []string{
		common.METRIC_REQUEST_COUNT,
		common.METRIC_ERROR_RATE,
		common.METRIC_APDEX,
		common.METRIC_FLOW_ERROR_RATE_FULL,
		common.METRIC_FLOW_ERROR_RATE_CALLER,
		common.METRIC_FLOW_ERROR_RATE_CALLEE,
	}
}
