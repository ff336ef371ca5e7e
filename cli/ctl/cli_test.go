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

package ctl

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analytics_common "github.com/deepflowio/apm-analytics/analytics/common"
	"github.com/deepflowio/apm-analytics/analytics/profile"
)

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	root := NewRootCommand("test")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCalcInstance(t *testing.T) {
	rows := writeFile(t, "rows.json", `[
		{"status_code": "2", "_result_": 1},
		{"status_code": "0", "_result_": 3}
	]`)
	out, err := run(t, "calc", "error_rate", "-f", rows, "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"metric": "error_rate", "result": 25}`, out)
}

func TestCalcQuerierResult(t *testing.T) {
	rows := writeFile(t, "result.json", `{"OPT_STATUS": "SUCCESS", "result": {
		"columns": ["apdex_type", "status_code", "_result_"],
		"values": [["satisfied", "0", 8], ["tolerating", "0", 2]]
	}}`)
	out, err := run(t, "calc", "apdex", "-f", rows, "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"metric": "apdex", "result": "satisfied"}`, out)
}

func TestCalcRange(t *testing.T) {
	rows := writeFile(t, "series.json", `[
		{"dimensions": {"status_code": "2"}, "datapoints": [[1, 60], [2, 120]]},
		{"dimensions": {"status_code": "0"}, "datapoints": [[3, 60], [2, 120]]}
	]`)
	out, err := run(t, "calc", "error_rate", "--range", "-f", rows, "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"target": "error_rate"`)
	assert.Contains(t, out, "120")
}

func TestCalcComponents(t *testing.T) {
	out, err := run(t, "calc", "error_rate", "--components", "3,100", "-o", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "metric: error_rate\nresult: 3\n", out)
}

func TestCalcListAndUnknown(t *testing.T) {
	out, err := run(t, "calc")
	require.NoError(t, err)
	assert.Contains(t, out, analytics_common.METRIC_FLOW_ERROR_RATE_CALLEE)

	_, err = run(t, "calc", "latency", "--components", "1")
	assert.Equal(t, analytics_common.ErrUnknownMetric, errors.Cause(err))

	_, err = run(t, "calc", "apdex")
	assert.Error(t, err)
}

func TestCallGraphCommand(t *testing.T) {
	profile := writeFile(t, "profile.json", `{"result": {
		"functions": ["app", "main", "foo"],
		"node_values": {
			"columns": ["function_id", "parent_node_id", "self_value", "total_value"],
			"values": [[0, -1, 0, 10], [1, 0, 4, 10], [2, 1, 6, 6]]
		}
	}}`)
	out, err := run(t, "callgraph", "-f", profile, "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"call_graph_all": 10`)
	assert.Contains(t, out, `"name": "foo"`)

	stacks := writeFile(t, "stacks.json", `[{"location": "main;foo", "value": 6}, {"location": "main", "value": 4}]`)
	out, err = run(t, "callgraph", "-f", stacks, "--stacks", "--root", "app")
	require.NoError(t, err)
	assert.Contains(t, out, "CALLER")
	assert.Contains(t, out, "foo")
}

func TestCallGraphCompressedStacks(t *testing.T) {
	compressed, err := profile.ZstdCompress(nil, []byte("main;foo"))
	require.NoError(t, err)
	stacks := writeFile(t, "stacks.json", `[
		{"compressed_location": "`+base64.StdEncoding.EncodeToString(compressed)+`", "value": 6, "compressed": true},
		{"location": "main", "value": 4}
	]`)

	out, err := run(t, "callgraph", "-f", stacks, "--stacks", "--root", "app", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"call_graph_all": 10`)
	assert.Contains(t, out, `"name": "foo"`)
}

func TestTendencyCommand(t *testing.T) {
	base := writeFile(t, "base.json", `{"columns": ["`+analytics_common.TENDENCY_FIELD_KEY+`", "sum(value)"], "values": [[60, 5], [120, 7]]}`)
	other := writeFile(t, "other.json", `[{"`+analytics_common.TENDENCY_FIELD_KEY+`": 60, "sum(value)": 1}]`)

	out, err := run(t, "tendency", "-f", base, "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"series": [{"alias": "_result_", "datapoints": [[60, 5], [120, 7]], "type": "line", "unit": ""}]}`, out)

	out, err = run(t, "tendency", "-f", base, "--compare", other)
	require.NoError(t, err)
	assert.Contains(t, out, "查询项")
	assert.Contains(t, out, "对比项")
}
