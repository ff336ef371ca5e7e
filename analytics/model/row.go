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

package model

import (
	"fmt"

	"github.com/deepflowio/apm-analytics/analytics/common"
)

// MetricRow is one already-aggregated row returned by the metric query
// layer: its dimensions, the `_result_` scalar and, for range queries,
// the datapoints of the series.
type MetricRow struct {
	Dimensions map[string]string `json:"dimensions"`
	Result     float64           `json:"_result_"`
	Datapoints []Datapoint       `json:"datapoints,omitempty"`
}

func NewMetricRow(result float64, dimensions map[string]string) MetricRow {
	if dimensions == nil {
		dimensions = map[string]string{}
	}
	return MetricRow{Dimensions: dimensions, Result: result}
}

func (r MetricRow) Dimension(key string) (string, bool) {
	v, ok := r.Dimensions[key]
	return v, ok
}

// MetricRowFromMap decodes a loose row. Dimensions are taken from a nested
// `dimensions` object and from every other top-level key.
func MetricRowFromMap(m map[string]interface{}) (MetricRow, error) {
	row := NewMetricRow(0, nil)
	for key, value := range m {
		switch key {
		case common.RESULT_KEY:
			if value == nil {
				continue
			}
			f, ok := ToFloat(value)
			if !ok {
				return row, fmt.Errorf("%s %v is not numeric", common.RESULT_KEY, value)
			}
			row.Result = f
		case common.DATAPOINTS_KEY:
			points, ok := value.([]interface{})
			if !ok {
				return row, fmt.Errorf("%s is not a list", common.DATAPOINTS_KEY)
			}
			row.Datapoints = make([]Datapoint, 0, len(points))
			for _, p := range points {
				pair, ok := p.([]interface{})
				if !ok {
					return row, fmt.Errorf("datapoint %v is not a list", p)
				}
				var d Datapoint
				if err := d.fromPair(pair); err != nil {
					return row, err
				}
				row.Datapoints = append(row.Datapoints, d)
			}
		case common.DIMENSIONS_KEY:
			dims, ok := value.(map[string]interface{})
			if !ok {
				return row, fmt.Errorf("%s is not an object", common.DIMENSIONS_KEY)
			}
			for k, v := range dims {
				row.Dimensions[k] = ToString(v)
			}
		default:
			row.Dimensions[key] = ToString(value)
		}
	}
	return row, nil
}

func MetricRowsFromMaps(maps []map[string]interface{}) ([]MetricRow, error) {
	rows := make([]MetricRow, 0, len(maps))
	for i, m := range maps {
		row, err := MetricRowFromMap(m)
		if err != nil {
			return nil, fmt.Errorf("row %d: %v", i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
