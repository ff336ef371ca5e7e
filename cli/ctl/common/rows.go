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
	"fmt"

	"github.com/bitly/go-simplejson"

	"github.com/deepflowio/apm-analytics/analytics/model"
)

// RowMaps accepts either a list of row objects or a querier
// {"columns": [...], "values": [[...]]} table.
func RowMaps(js *simplejson.Json) ([]map[string]interface{}, error) {
	if columns, ok := js.CheckGet("columns"); ok {
		names := []string{}
		for _, c := range columns.MustArray() {
			names = append(names, model.ToString(c))
		}
		maps := []map[string]interface{}{}
		for _, v := range js.Get("values").MustArray() {
			values, ok := v.([]interface{})
			if !ok || len(values) != len(names) {
				continue
			}
			m := make(map[string]interface{}, len(names))
			for i, name := range names {
				m[name] = values[i]
			}
			maps = append(maps, m)
		}
		return maps, nil
	}

	items, err := js.Array()
	if err != nil {
		return nil, fmt.Errorf("rows are neither a list nor a columns/values table")
	}
	maps := make([]map[string]interface{}, 0, len(items))
	for i := range items {
		m, err := js.GetIndex(i).Map()
		if err != nil {
			return nil, fmt.Errorf("row %d is not an object", i)
		}
		maps = append(maps, m)
	}
	return maps, nil
}

func MetricRows(js *simplejson.Json, resultColumn string) ([]model.MetricRow, error) {
	if _, ok := js.CheckGet("columns"); ok {
		result := &model.Result{
			Columns: js.Get("columns").MustArray(),
			Values:  js.Get("values").MustArray(),
		}
		return result.ToRows(resultColumn)
	}
	maps, err := RowMaps(js)
	if err != nil {
		return nil, err
	}
	return model.MetricRowsFromMaps(maps)
}
