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

package diagram

import (
	"github.com/deepflowio/apm-analytics/analytics/common"
	"github.com/deepflowio/apm-analytics/analytics/model"
)

// TendencyDiagrammer draws profile sample counts over one-minute buckets.
type TendencyDiagrammer struct{}

func (d *TendencyDiagrammer) points(rows []map[string]interface{}) []model.TendencyPoint {
	points := []model.TendencyPoint{}
	for _, row := range rows {
		bucket, ok := row[common.TENDENCY_FIELD_KEY]
		if !ok {
			continue
		}
		b, ok := model.ToFloat(bucket)
		if !ok {
			log.Debugf("drop tendency row with bucket %v", bucket)
			continue
		}
		points = append(points, model.TendencyPoint{Bucket: int64(b), Value: row[common.TENDENCY_VALUE_KEY]})
	}
	return points
}

func (d *TendencyDiagrammer) series(rows []map[string]interface{}) model.TendencySeries {
	return model.TendencySeries{
		Alias:      common.TARGET_RESULT,
		Datapoints: d.points(rows),
		Type:       common.SERIES_TYPE_LINE,
		Unit:       "",
	}
}

func rowsOf(data *Data) []map[string]interface{} {
	if data == nil {
		return nil
	}
	return data.Rows
}

func (d *TendencyDiagrammer) Draw(data *Data, options Options) (interface{}, error) {
	return &model.TendencyResult{
		Series: []model.TendencySeries{d.series(rowsOf(data))},
	}, nil
}

func (d *TendencyDiagrammer) Diff(base, other *Data, options Options) (interface{}, error) {
	baseSeries := d.series(rowsOf(base))
	baseSeries.Dimensions = map[string]string{common.TENDENCY_DIMENSION_KEY: common.TENDENCY_QUERY_ITEM}
	otherSeries := d.series(rowsOf(other))
	otherSeries.Dimensions = map[string]string{common.TENDENCY_DIMENSION_KEY: common.TENDENCY_COMPARE_ITEM}
	return &model.TendencyResult{
		Series: []model.TendencySeries{baseSeries, otherSeries},
	}, nil
}
