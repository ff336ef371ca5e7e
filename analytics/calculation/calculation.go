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
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/op/go-logging"

	"github.com/deepflowio/apm-analytics/analytics/common"
	"github.com/deepflowio/apm-analytics/analytics/model"
)

var log = logging.MustGetLogger("calculation")

// Calculation turns the rows of one metric query into a derived value.
//
// InstanceCal collapses the rows of one entity into a single value,
// RangeCal collapses them per timestamp into a series, and Calculate is
// the pure combine step so callers holding pre-aggregated partial sums
// can recompute without rows.
type Calculation interface {
	InstanceCal(rows []model.MetricRow) (model.Value, error)
	RangeCal(rows []model.MetricRow) (*model.SeriesResult, error)
	Calculate(components ...float64) (model.Value, error)
}

// timeline keeps distinct timestamps in the order they are first seen.
type timeline struct {
	seen  mapset.Set[int64]
	order []int64
}

func newTimeline() *timeline {
	return &timeline{seen: mapset.NewThreadUnsafeSet[int64]()}
}

func (t *timeline) add(timestamp int64) {
	if t.seen.Contains(timestamp) {
		return
	}
	t.seen.Add(timestamp)
	t.order = append(t.order, timestamp)
}

func (t *timeline) timestamps() []int64 {
	return t.order
}

func isErrorStatus(row model.MetricRow) bool {
	status, ok := row.Dimension(common.DIMENSION_STATUS_CODE)
	return ok && status == common.STATUS_CODE_ERROR
}

// Base passes the first result through unchanged.
type Base struct{}

func (b *Base) InstanceCal(rows []model.MetricRow) (model.Value, error) {
	if len(rows) == 0 {
		return model.Scalar(0), nil
	}
	return model.Scalar(rows[0].Result), nil
}

func (b *Base) RangeCal(rows []model.MetricRow) (*model.SeriesResult, error) {
	sums := make(map[int64]float64)
	tl := newTimeline()
	for _, row := range rows {
		for _, point := range row.Datapoints {
			if point.Value == nil {
				continue
			}
			tl.add(point.Timestamp)
			sums[point.Timestamp] += *point.Value
		}
	}
	datapoints := make([]model.Datapoint, 0, len(sums))
	for _, ts := range tl.timestamps() {
		datapoints = append(datapoints, model.NewDatapoint(sums[ts], ts))
	}
	return model.NewSeriesResult(model.Series{
		Datapoints: datapoints,
		Dimensions: map[string]string{},
		Target:     common.TARGET_RESULT,
		Type:       common.SERIES_TYPE_LINE,
	}), nil
}

func (b *Base) Calculate(components ...float64) (model.Value, error) {
	if len(components) == 0 {
		return model.None, common.ErrNoComponents
	}
	return model.Scalar(components[0]), nil
}
