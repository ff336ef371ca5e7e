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
	"testing"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepflowio/apm-analytics/analytics/common"
	"github.com/deepflowio/apm-analytics/analytics/model"
)

func tendencyRows(points ...[2]float64) []map[string]interface{} {
	rows := []map[string]interface{}{}
	for _, p := range points {
		rows = append(rows, map[string]interface{}{
			common.TENDENCY_FIELD_KEY: p[0],
			common.TENDENCY_VALUE_KEY: p[1],
		})
	}
	return rows
}

func TestTendencyDraw(t *testing.T) {
	rows := tendencyRows([2]float64{60, 5}, [2]float64{120, 7})
	rows = append(rows, map[string]interface{}{common.TENDENCY_VALUE_KEY: 9})

	out, err := (&TendencyDiagrammer{}).Draw(&Data{Rows: rows}, Options{})
	require.NoError(t, err)
	result := out.(*model.TendencyResult)
	require.Len(t, result.Series, 1)

	b, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"series":[{"alias":"_result_","datapoints":[[60,5],[120,7]],"type":"line","unit":""}]}`, string(b))
}

func TestTendencyDrawEmpty(t *testing.T) {
	out, err := (&TendencyDiagrammer{}).Draw(&Data{}, Options{})
	require.NoError(t, err)
	assert.Empty(t, out.(*model.TendencyResult).Series[0].Datapoints)
}

func TestTendencyDiff(t *testing.T) {
	Convey("tendency diff", t, func() {
		d := &TendencyDiagrammer{}
		base := &Data{Rows: tendencyRows([2]float64{60, 1})}
		other := &Data{Rows: tendencyRows([2]float64{60, 2}, [2]float64{120, 3})}

		out, err := d.Diff(base, other, Options{})
		So(err, ShouldBeNil)
		result := out.(*model.TendencyResult)

		Convey("returns query item first and comparison item second", func() {
			So(result.Series, ShouldHaveLength, 2)
			So(result.Series[0].Dimensions[common.TENDENCY_DIMENSION_KEY], ShouldEqual, "查询项")
			So(result.Series[1].Dimensions[common.TENDENCY_DIMENSION_KEY], ShouldEqual, "对比项")
		})

		Convey("keeps each side's own datapoints", func() {
			So(result.Series[0].Datapoints, ShouldHaveLength, 1)
			So(result.Series[1].Datapoints, ShouldHaveLength, 2)
			So(result.Series[1].Datapoints[1].Bucket, ShouldEqual, int64(120))
		})
	})
}

func TestDecodeOptions(t *testing.T) {
	options, err := DecodeOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, common.DATA_MODE_RAW, options.DataMode)

	options, err = DecodeOptions(map[string]interface{}{"data_mode": "image", "other": 1})
	require.NoError(t, err)
	assert.Equal(t, common.DATA_MODE_IMAGE, options.DataMode)
}

func TestNewDiagrammer(t *testing.T) {
	d, err := NewDiagrammer(common.DIAGRAM_CALLGRAPH, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &CallGraphDiagrammer{}, d)

	d, err = NewDiagrammer(common.DIAGRAM_TENDENCY, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &TendencyDiagrammer{}, d)

	_, err = NewDiagrammer("flame", nil, nil)
	assert.Equal(t, common.ErrUnknownDiagram, errors.Cause(err))
}
