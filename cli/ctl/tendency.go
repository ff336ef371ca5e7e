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

	"github.com/spf13/cobra"

	analytics_common "github.com/deepflowio/apm-analytics/analytics/common"
	"github.com/deepflowio/apm-analytics/analytics/diagram"
	"github.com/deepflowio/apm-analytics/analytics/model"
	"github.com/deepflowio/apm-analytics/cli/ctl/common"
)

func RegisterTendencyCommand() *cobra.Command {
	var filename, compareFilename, output string
	tendency := &cobra.Command{
		Use:   "tendency",
		Short: "draw the profile tendency, optionally against a comparison",
		Example: "analytics-ctl tendency -f tendency.json\n" +
			"analytics-ctl tendency -f today.json --compare yesterday.json -o json",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTendency(cmd, filename, compareFilename, output)
		},
	}
	tendency.Flags().StringVarP(&filename, "filename", "f", "", "tendency rows file")
	tendency.Flags().StringVar(&compareFilename, "compare", "", "tendency rows to compare with")
	tendency.Flags().StringVarP(&output, "output", "o", common.OUTPUT_TABLE, "output format: table, json or yaml")
	tendency.MarkFlagRequired("filename")
	return tendency
}

func loadTendencyData(filename string) (*diagram.Data, error) {
	js, err := common.ReadJSONFile(filename)
	if err != nil {
		return nil, err
	}
	rows, err := common.RowMaps(js)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", filename, err)
	}
	return &diagram.Data{Rows: rows}, nil
}

func runTendency(cmd *cobra.Command, filename, compareFilename, output string) error {
	log := prefixLogger("tendency")
	diagrammer, err := diagram.NewDiagrammer(analytics_common.DIAGRAM_TENDENCY, nil, nil)
	if err != nil {
		return err
	}
	base, err := loadTendencyData(filename)
	if err != nil {
		return err
	}

	var out interface{}
	if compareFilename == "" {
		out, err = diagrammer.Draw(base, diagram.Options{})
	} else {
		var other *diagram.Data
		if other, err = loadTendencyData(compareFilename); err != nil {
			return err
		}
		log.Infof("compare %s with %s", filename, compareFilename)
		out, err = diagrammer.Diff(base, other, diagram.Options{})
	}
	if err != nil {
		return err
	}

	result, ok := out.(*model.TendencyResult)
	if !ok {
		return fmt.Errorf("unexpected tendency result %T", out)
	}
	return common.Print(cmd.OutOrStdout(), output, result, func(w io.Writer) { tableTendency(w, result) })
}

func tableTendency(w io.Writer, result *model.TendencyResult) {
	table := common.NewTable(w)
	table.SetHeader([]string{"SERIES", "BUCKET", "VALUE"})
	for _, series := range result.Series {
		name := series.Alias
		if item, ok := series.Dimensions[analytics_common.TENDENCY_DIMENSION_KEY]; ok {
			name = item
		}
		for _, p := range series.Datapoints {
			table.Append([]string{name, fmt.Sprint(p.Bucket), model.ToString(p.Value)})
		}
	}
	table.Render()
}
