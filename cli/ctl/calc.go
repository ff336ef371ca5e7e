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
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deepflowio/apm-analytics/analytics/calculation"
	"github.com/deepflowio/apm-analytics/analytics/model"
	"github.com/deepflowio/apm-analytics/cli/ctl/common"
)

type calcResult struct {
	Metric string      `json:"metric"`
	Result model.Value `json:"result"`
}

func RegisterCalcCommand() *cobra.Command {
	var filename, output, resultColumn string
	var rangeMode bool
	var components []float64
	calc := &cobra.Command{
		Use:   "calc [metric]",
		Short: "calculate a metric from queried rows, list metrics without argument",
		Example: "analytics-ctl calc apdex -f rows.json\n" +
			"analytics-ctl calc error_rate --range -f series.json -o yaml\n" +
			"analytics-ctl calc error_rate --components 3,100",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, m := range calculation.Metrics() {
					fmt.Fprintln(cmd.OutOrStdout(), m)
				}
				return nil
			}
			return runCalc(cmd, args[0], filename, resultColumn, output, rangeMode, components)
		},
	}
	calc.Flags().StringVarP(&filename, "filename", "f", "", "rows file, a list of rows or a querier columns/values result")
	calc.Flags().StringVarP(&output, "output", "o", common.OUTPUT_TABLE, "output format: table, json or yaml")
	calc.Flags().StringVar(&resultColumn, "result-column", "", "column holding the aggregated value of a querier result")
	calc.Flags().BoolVar(&rangeMode, "range", false, "calculate series from the rows' datapoints")
	calc.Flags().Float64SliceVar(&components, "components", nil, "calculate from pre-aggregated components instead of rows")
	return calc
}

func runCalc(cmd *cobra.Command, metric, filename, resultColumn, output string, rangeMode bool, components []float64) error {
	log := prefixLogger("calc")
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	calc, err := calculation.NewCalculation(metric, &cfg.AnalyticsConfig.Calculation)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	if len(components) > 0 {
		value, err := calc.Calculate(components...)
		if err != nil {
			return err
		}
		return printValue(w, output, metric, value)
	}

	if filename == "" {
		return fmt.Errorf("must specify --filename or --components")
	}
	js, err := common.ReadJSONFile(filename)
	if err != nil {
		return err
	}
	rows, err := common.MetricRows(js, resultColumn)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		log.Warningf("no rows in %s", filename)
	}
	log.Debugf("%s: %d rows from %s", metric, len(rows), filename)

	if rangeMode {
		series, err := calc.RangeCal(rows)
		if err != nil {
			return err
		}
		return common.Print(w, output, series, func(w io.Writer) { tableSeries(w, series) })
	}

	value, err := calc.InstanceCal(rows)
	if err != nil {
		return err
	}
	return printValue(w, output, metric, value)
}

func printValue(w io.Writer, output, metric string, value model.Value) error {
	result := calcResult{Metric: metric, Result: value}
	return common.Print(w, output, result, func(w io.Writer) {
		table := common.NewTable(w)
		table.SetHeader([]string{"METRIC", "RESULT"})
		table.Append([]string{metric, value.String()})
		table.Render()
	})
}

func formatDimensions(dimensions map[string]string) string {
	keys := make([]string, 0, len(dimensions))
	for k := range dimensions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+dimensions[k])
	}
	return strings.Join(pairs, ",")
}

func tableSeries(w io.Writer, result *model.SeriesResult) {
	table := common.NewTable(w)
	table.SetHeader([]string{"TARGET", "DIMENSIONS", "TIMESTAMP", "VALUE"})
	for _, series := range result.Series {
		for _, d := range series.Datapoints {
			value := "null"
			if d.Value != nil {
				value = strconv.FormatFloat(*d.Value, 'f', -1, 64)
			}
			table.Append([]string{series.Target, formatDimensions(series.Dimensions), strconv.FormatInt(d.Timestamp, 10), value})
		}
	}
	table.Render()
}
