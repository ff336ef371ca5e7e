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
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepflowio/apm-analytics/analytics/common"
	"github.com/deepflowio/apm-analytics/analytics/model"
)

func statusRow(status string, result float64) model.MetricRow {
	return model.NewMetricRow(result, map[string]string{common.DIMENSION_STATUS_CODE: status})
}

func seriesRow(dimensions map[string]string, points ...model.Datapoint) model.MetricRow {
	row := model.NewMetricRow(0, dimensions)
	row.Datapoints = points
	return row
}

func values(series model.Series) []interface{} {
	out := []interface{}{}
	for _, p := range series.Datapoints {
		if p.Value == nil {
			out = append(out, nil)
		} else {
			out = append(out, *p.Value)
		}
	}
	return out
}

func timestamps(series model.Series) []int64 {
	out := []int64{}
	for _, p := range series.Datapoints {
		out = append(out, p.Timestamp)
	}
	return out
}

func TestBase(t *testing.T) {
	b := &Base{}
	v, err := b.InstanceCal(nil)
	assert.Nil(t, err)
	assert.Equal(t, model.Scalar(0), v)

	v, _ = b.InstanceCal([]model.MetricRow{model.NewMetricRow(7, nil), model.NewMetricRow(9, nil)})
	assert.Equal(t, model.Scalar(7), v)

	v, _ = b.Calculate(3, 4)
	assert.Equal(t, model.Scalar(3), v)
	_, err = b.Calculate()
	assert.Equal(t, common.ErrNoComponents, errors.Cause(err))

	result, err := b.RangeCal([]model.MetricRow{
		seriesRow(nil, model.NewDatapoint(1, 2000), model.NewDatapoint(2, 1000)),
		seriesRow(nil, model.NewDatapoint(3, 1000), model.NullDatapoint(3000)),
	})
	require.Nil(t, err)
	require.Len(t, result.Series, 1)
	assert.Equal(t, []int64{2000, 1000}, timestamps(result.Series[0]))
	assert.Equal(t, []interface{}{1.0, 5.0}, values(result.Series[0]))
	assert.NotNil(t, result.Metrics)
}

func TestErrorRateInstance(t *testing.T) {
	e := &ErrorRate{}
	for _, tc := range []struct {
		name string
		rows []model.MetricRow
		want float64
	}{
		{"empty", nil, 0},
		{"all zero", []model.MetricRow{statusRow(common.STATUS_CODE_ERROR, 0), statusRow("0", 0)}, 0},
		{"mixed", []model.MetricRow{statusRow(common.STATUS_CODE_ERROR, 2), statusRow("0", 6), statusRow("1", 2)}, 20},
		{"all error", []model.MetricRow{statusRow(common.STATUS_CODE_ERROR, 5)}, 100},
		{"no status", []model.MetricRow{model.NewMetricRow(5, nil)}, 0},
	} {
		v, err := e.InstanceCal(tc.rows)
		if err != nil || v.Kind != model.VALUE_SCALAR || v.Scalar != tc.want {
			t.Errorf("%s: InstanceCal = %v (%v), want %v", tc.name, v, err, tc.want)
		}
	}
}

func TestErrorRateBounds(t *testing.T) {
	e := &ErrorRate{}
	for errCount := 0.0; errCount <= 10; errCount++ {
		for okCount := 0.0; okCount <= 10; okCount++ {
			v, err := e.InstanceCal([]model.MetricRow{
				statusRow(common.STATUS_CODE_ERROR, errCount),
				statusRow("1", okCount),
			})
			require.Nil(t, err)
			assert.True(t, v.Scalar >= 0 && v.Scalar <= 100, "error rate %v out of range", v.Scalar)
		}
	}
}

func TestErrorRateComponents(t *testing.T) {
	e := &ErrorRate{}
	errCount, total := e.Components([]model.MetricRow{statusRow(common.STATUS_CODE_ERROR, 1), statusRow("0", 3)})
	assert.Equal(t, 1.0, errCount)
	assert.Equal(t, 4.0, total)

	v, err := e.Calculate(errCount*2, total*2)
	assert.Nil(t, err)
	assert.Equal(t, model.Scalar(25), v)

	_, err = e.Calculate(1)
	assert.Equal(t, common.ErrNoComponents, errors.Cause(err))
}

func TestErrorRateRange(t *testing.T) {
	e := &ErrorRate{}
	result, err := e.RangeCal([]model.MetricRow{
		seriesRow(map[string]string{common.DIMENSION_STATUS_CODE: common.STATUS_CODE_ERROR},
			model.NewDatapoint(1, 1000), model.NewDatapoint(0, 2000)),
		seriesRow(map[string]string{common.DIMENSION_STATUS_CODE: "0"},
			model.NewDatapoint(3, 1000), model.NewDatapoint(0, 2000)),
	})
	require.Nil(t, err)
	series := result.Series[0]
	assert.Equal(t, common.TARGET_ERROR_RATE, series.Target)
	assert.Equal(t, []int64{1000, 2000}, timestamps(series))
	assert.Equal(t, []interface{}{25.0, 0.0}, values(series))
}

func TestRegistry(t *testing.T) {
	for _, tc := range []struct {
		metric string
		check  func(Calculation) bool
	}{
		{common.METRIC_REQUEST_COUNT, func(c Calculation) bool { _, ok := c.(*Base); return ok }},
		{common.METRIC_ERROR_RATE, func(c Calculation) bool { _, ok := c.(*ErrorRate); return ok }},
		{common.METRIC_APDEX, func(c Calculation) bool { a, ok := c.(*Apdex); return ok && a.SatisfiedRate == 0.75 }},
		{common.METRIC_FLOW_ERROR_RATE_FULL, func(c Calculation) bool {
			f, ok := c.(*FlowMetricErrorRate)
			return ok && f.CalculateType == common.CALCULATE_TYPE_FULL
		}},
		{common.METRIC_FLOW_ERROR_RATE_CALLER, func(c Calculation) bool {
			f, ok := c.(*FlowMetricErrorRate)
			return ok && f.CalculateType == common.CALCULATE_TYPE_CALLER
		}},
		{common.METRIC_FLOW_ERROR_RATE_CALLEE, func(c Calculation) bool {
			f, ok := c.(*FlowMetricErrorRate)
			return ok && f.CalculateType == common.CALCULATE_TYPE_CALLEE
		}},
	} {
		c, err := NewCalculation(tc.metric, nil)
		if err != nil || !tc.check(c) {
			t.Errorf("NewCalculation(%s) = %T, %v", tc.metric, c, err)
		}
	}
	assert.Len(t, Metrics(), 6)

	_, err := NewCalculation("latency_p99", nil)
	assert.Equal(t, common.ErrUnknownMetric, errors.Cause(err))
}
