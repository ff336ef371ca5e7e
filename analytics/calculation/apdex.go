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
	"github.com/deepflowio/apm-analytics/analytics/model"
)

type apdexCounter struct {
	satisfied  float64
	tolerating float64
	frustrated float64
	error      float64
	total      float64
}

func (c *apdexCounter) add(apdexType string, isError bool, value float64) {
	c.total += value
	if isError {
		c.error += value
	}
	switch apdexType {
	case common.APDEX_SATISFIED:
		c.satisfied += value
	case common.APDEX_TOLERATING:
		c.tolerating += value
	case common.APDEX_FRUSTRATED:
		c.frustrated += value
	}
}

// Apdex classifies a batch of requests as satisfied, tolerating or
// frustrated. The single-value rate and the per-bucket rate weigh the
// buckets differently; both are kept as they are.
type Apdex struct {
	SatisfiedRate   float64
	ToleratingRate  float64
	FrustratingRate float64
}

func NewApdex(cfg config.Apdex) *Apdex {
	return &Apdex{
		SatisfiedRate:   cfg.SatisfiedRate,
		ToleratingRate:  cfg.ToleratingRate,
		FrustratingRate: cfg.FrustratingRate,
	}
}

func (a *Apdex) InstanceCal(rows []model.MetricRow) (model.Value, error) {
	if len(rows) == 0 {
		return model.None, nil
	}
	counter := apdexCounter{}
	for _, row := range rows {
		if isErrorStatus(row) {
			counter.error += row.Result
		}
		apdexType, ok := row.Dimension(common.DIMENSION_APDEX_TYPE)
		if !ok {
			continue
		}
		counter.total += row.Result
		switch apdexType {
		case common.APDEX_SATISFIED:
			counter.satisfied += row.Result
		case common.APDEX_TOLERATING:
			counter.tolerating += row.Result
		case common.APDEX_FRUSTRATED:
			counter.frustrated += row.Result
		}
	}
	return a.Calculate(counter.satisfied, counter.tolerating, counter.frustrated, counter.error, counter.total)
}

func (a *Apdex) RangeCal(rows []model.MetricRow) (*model.SeriesResult, error) {
	buckets := make(map[int64]*apdexCounter)
	tl := newTimeline()
	for _, row := range rows {
		apdexType, ok := row.Dimension(common.DIMENSION_APDEX_TYPE)
		if !ok {
			continue
		}
		isError := isErrorStatus(row)
		for _, point := range row.Datapoints {
			if point.Value == nil {
				continue
			}
			counter, ok := buckets[point.Timestamp]
			if !ok {
				counter = &apdexCounter{}
				buckets[point.Timestamp] = counter
				tl.add(point.Timestamp)
			}
			counter.add(apdexType, isError, *point.Value)
		}
	}

	datapoints := make([]model.Datapoint, 0, len(buckets))
	for _, ts := range tl.timestamps() {
		c := buckets[ts]
		if c.total == 0 {
			// no bar for an empty bucket
			datapoints = append(datapoints, model.NullDatapoint(ts))
			continue
		}
		datapoints = append(datapoints, model.NewDatapoint(model.Round(rangeRate(c), 2), ts))
	}
	return model.NewSeriesResult(model.Series{
		Datapoints: datapoints,
		Dimensions: map[string]string{},
		Target:     common.TARGET_APDEX,
		Type:       common.SERIES_TYPE_BAR,
	}), nil
}

// Calculate expects (satisfied, tolerating, frustrated, error, total) and
// returns the classification label, or None when total is 0.
func (a *Apdex) Calculate(components ...float64) (model.Value, error) {
	if len(components) != 5 {
		return model.None, errors.Wrapf(common.ErrNoComponents, "apdex needs 5 values, got %d", len(components))
	}
	c := &apdexCounter{
		satisfied:  components[0],
		tolerating: components[1],
		frustrated: components[2],
		error:      components[3],
		total:      components[4],
	}
	if c.total == 0 {
		return model.None, nil
	}
	return model.Label(a.classify(instanceRate(c))), nil
}

func (a *Apdex) classify(rate float64) string {
	if rate > a.SatisfiedRate {
		return common.APDEX_SATISFIED
	}
	if rate > a.ToleratingRate {
		return common.APDEX_TOLERATING
	}
	return common.APDEX_FRUSTRATED
}

func instanceRate(c *apdexCounter) float64 {
	return (c.satisfied*1 + c.tolerating*0.5 + (c.tolerating+c.error)*0) / c.total
}

// rangeRate gives the half weight to frustrated, unlike instanceRate.
// c.total is the bucket's own total, not the total over the whole range;
// see the Apdex range denominator entry in DESIGN.md.
func rangeRate(c *apdexCounter) float64 {
	return (c.satisfied*1 + c.frustrated*0.5 + (c.tolerating+c.error)*0) / c.total
}
