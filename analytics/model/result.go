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

// Result is the column/value table returned by the querier.
type Result struct {
	Columns []interface{}
	Values  []interface{}
}

// ToRows converts the table into metric rows; resultColumn holds the
// aggregated scalar, every other column becomes a dimension. A null
// result counts as 0, a non numeric one is an error.
func (r *Result) ToRows(resultColumn string) ([]MetricRow, error) {
	if resultColumn == "" {
		resultColumn = common.RESULT_KEY
	}
	resultIndex := -1
	names := make([]string, len(r.Columns))
	for i, col := range r.Columns {
		name, ok := col.(string)
		if !ok {
			return nil, fmt.Errorf("column %d (%v) is not a string", i, col)
		}
		names[i] = name
		if name == resultColumn {
			resultIndex = i
		}
	}
	if resultIndex == -1 {
		return nil, fmt.Errorf("result column %s not found", resultColumn)
	}

	rows := make([]MetricRow, 0, len(r.Values))
	for n, value := range r.Values {
		valueSlice, ok := value.([]interface{})
		if !ok {
			return nil, fmt.Errorf("value %d (%v) is not a list", n, value)
		}
		if len(valueSlice) != len(names) {
			return nil, fmt.Errorf("value %d has %d fields, expected %d", n, len(valueSlice), len(names))
		}
		row := NewMetricRow(0, nil)
		for i, v := range valueSlice {
			if i == resultIndex {
				if v == nil {
					continue
				}
				if row.Result, ok = ToFloat(v); !ok {
					return nil, fmt.Errorf("value %d: %s %v is not numeric", n, resultColumn, v)
				}
				continue
			}
			row.Dimensions[names[i]] = ToString(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
