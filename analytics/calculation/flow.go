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
	"strings"

	"github.com/pkg/errors"

	"github.com/deepflowio/apm-analytics/analytics/common"
	"github.com/deepflowio/apm-analytics/analytics/model"
)

// FlowMetricErrorRate is the error ratio of a service-to-service flow,
// counted on the caller side, the callee side or both (full).
// Range series only make sense when the query is grouped by
// from_span_error / to_span_error and nothing else.
type FlowMetricErrorRate struct {
	CalculateType string
}

func NewFlowMetricErrorRate(calculateType string) *FlowMetricErrorRate {
	return &FlowMetricErrorRate{CalculateType: calculateType}
}

func strToBool(s string) bool {
	return strings.ToLower(s) == "true"
}

func (f *FlowMetricErrorRate) checkType() error {
	switch f.CalculateType {
	case common.CALCULATE_TYPE_FULL, common.CALCULATE_TYPE_CALLER, common.CALCULATE_TYPE_CALLEE:
		return nil
	}
	return errors.Wrapf(common.ErrUnsupportedCalculateType, "%q", f.CalculateType)
}

func (f *FlowMetricErrorRate) isError(fromSpanError, toSpanError bool) bool {
	switch f.CalculateType {
	case common.CALCULATE_TYPE_FULL:
		return fromSpanError || toSpanError
	case common.CALCULATE_TYPE_CALLER:
		return fromSpanError
	case common.CALCULATE_TYPE_CALLEE:
		return toSpanError
	}
	return false
}

func spanErrorFlags(row model.MetricRow) (fromSpanError, toSpanError, ok bool) {
	from, fromOK := row.Dimension(common.DIMENSION_FROM_SPAN_ERROR)
	to, toOK := row.Dimension(common.DIMENSION_TO_SPAN_ERROR)
	return strToBool(from), strToBool(to), fromOK && toOK
}

// InstanceCal fails when the total is 0, there is no fallback here.
func (f *FlowMetricErrorRate) InstanceCal(rows []model.MetricRow) (model.Value, error) {
	if err := f.checkType(); err != nil {
		return model.None, err
	}
	var errorCount, total float64
	for _, row := range rows {
		total += row.Result
		fromSpanError, toSpanError, _ := spanErrorFlags(row)
		if f.isError(fromSpanError, toSpanError) {
			errorCount += row.Result
		}
	}
	return f.Calculate(errorCount, total)
}

func (f *FlowMetricErrorRate) RangeCal(rows []model.MetricRow) (*model.SeriesResult, error) {
	if err := f.checkType(); err != nil {
		return nil, err
	}
	normalTs := make(map[int64]float64)
	errorTs := make(map[int64]float64)
	tl := newTimeline()
	for _, row := range rows {
		if len(row.Datapoints) == 0 {
			continue
		}
		fromSpanError, toSpanError, ok := spanErrorFlags(row)
		if !ok {
			log.Debugf("drop flow row without span error dimensions: %v", row.Dimensions)
			continue
		}
		isNormal := !fromSpanError && !toSpanError
		isError := f.isError(fromSpanError, toSpanError)
		for _, point := range row.Datapoints {
			if point.Value == nil {
				continue
			}
			tl.add(point.Timestamp)
			if isNormal {
				normalTs[point.Timestamp] = *point.Value
			}
			if isError {
				errorTs[point.Timestamp] += *point.Value
			}
		}
	}

	datapoints := make([]model.Datapoint, 0, len(tl.timestamps()))
	for _, ts := range tl.timestamps() {
		errorCount := errorTs[ts]
		total := normalTs[ts] + errorCount
		if total == 0 {
			datapoints = append(datapoints, model.NullDatapoint(ts))
			continue
		}
		datapoints = append(datapoints, model.NewDatapoint(model.Round(errorCount/total, 2), ts))
	}
	return model.NewSeriesResult(model.Series{
		Datapoints: datapoints,
		Dimensions: map[string]string{},
		Target:     common.TARGET_FLOW,
		Type:       common.SERIES_TYPE_BAR,
	}), nil
}

// Calculate expects (errorCount, total).
func (f *FlowMetricErrorRate) Calculate(components ...float64) (model.Value, error) {
	if len(components) != 2 {
		return model.None, errors.Wrapf(common.ErrNoComponents, "flow error rate needs (error_count, total), got %d values", len(components))
	}
	if components[1] == 0 {
		return model.None, errors.Wrapf(common.ErrDivisionByZero, "flow error rate %s", f.CalculateType)
	}
	return model.Scalar(components[0] / components[1]), nil
}
