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
	"github.com/deepflowio/apm-analytics/analytics/model"
)

// ErrorRate is the percentage of rows whose status_code is the error status.
// A zero total is replaced by 1 so the rate degrades to 0.
type ErrorRate struct{}

// Components returns the partial sums (errorCount, total) for Calculate.
func (e *ErrorRate) Components(rows []model.MetricRow) (errorCount, total float64) {
	for _, row := range rows {
		total += row.Result
		if isErrorStatus(row) {
			errorCount += row.Result
		}
	}
	return
}

func (e *ErrorRate) InstanceCal(rows []model.MetricRow) (model.Value, error) {
	return e.Calculate(e.Components(rows))
}

func (e *ErrorRate) RangeCal(rows []model.MetricRow) (*model.SeriesResult, error) {
	errorCounts := make(map[int64]float64)
	totals := make(map[int64]float64)
	tl := newTimeline()
	for _, row := range rows {
		isError := isErrorStatus(row)
		for _, point := range row.Datapoints {
			if point.Value == nil {
				continue
			}
			tl.add(point.Timestamp)
			totals[point.Timestamp] += *point.Value
			if isError {
				errorCounts[point.Timestamp] += *point.Value
			}
		}
	}

	datapoints := make([]model.Datapoint, 0, len(totals))
	for _, ts := range tl.timestamps() {
		rate := errorRate(errorCounts[ts], totals[ts])
		datapoints = append(datapoints, model.NewDatapoint(model.Round(rate, 2), ts))
	}
	return model.NewSeriesResult(model.Series{
		Datapoints: datapoints,
		Dimensions: map[string]string{},
		Target:     common.TARGET_ERROR_RATE,
		Type:       common.SERIES_TYPE_LINE,
		Unit:       "percent",
	}), nil
}

// Calculate expects (errorCount, total).
func (e *ErrorRate) Calculate(components ...float64) (model.Value, error) {
	if len(components) != 2 {
		return model.None, errors.Wrapf(common.ErrNoComponents, "error rate needs (error_count, total), got %d values", len(components))
	}
	return model.Scalar(errorRate(components[0], components[1])), nil
}

func errorRate(errorCount, total float64) float64 {
	if total == 0 {
		total = 1
	}
	return errorCount / total * 100
}
