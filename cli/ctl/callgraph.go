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
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	analytics_common "github.com/deepflowio/apm-analytics/analytics/common"
	"github.com/deepflowio/apm-analytics/analytics/diagram"
	"github.com/deepflowio/apm-analytics/analytics/model"
	"github.com/deepflowio/apm-analytics/analytics/profile"
	"github.com/deepflowio/apm-analytics/cli/ctl/common"
)

func RegisterCallGraphCommand() *cobra.Command {
	var filename, output, dataMode, rootName, sampleType, unit string
	var stacks bool
	callGraph := &cobra.Command{
		Use:   "callgraph",
		Short: "draw the call graph of a profile",
		Example: "analytics-ctl callgraph -f profile.json -o json\n" +
			"analytics-ctl callgraph -f stacks.json --stacks -m image > callgraph.svg",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCallGraph(cmd, filename, output, dataMode, rootName, model.SampleType{Type: sampleType, Unit: unit}, stacks)
		},
	}
	callGraph.Flags().StringVarP(&filename, "filename", "f", "", "profile file, a querier profile tree or a list of folded stacks")
	callGraph.Flags().StringVarP(&output, "output", "o", common.OUTPUT_TABLE, "output format: table, json or yaml")
	callGraph.Flags().StringVarP(&dataMode, "data-mode", "m", analytics_common.DATA_MODE_RAW, "raw or image")
	callGraph.Flags().BoolVar(&stacks, "stacks", false, "the file holds folded stacks [{\"location\": \"a;b\", \"value\": 1}]")
	callGraph.Flags().StringVar(&rootName, "root", "root", "root frame name for folded stacks")
	callGraph.Flags().StringVar(&sampleType, "sample-type", "", "sample type of the profile, e.g. on-cpu")
	callGraph.Flags().StringVar(&unit, "unit", "ns", "unit of the sample values")
	callGraph.MarkFlagRequired("filename")
	return callGraph
}

func loadFunctionTree(filename, rootName string, stacks bool) (*model.FunctionTree, error) {
	js, err := common.ReadJSONFile(filename)
	if err != nil {
		return nil, err
	}
	data, err := js.MarshalJSON()
	if err != nil {
		return nil, err
	}
	if stacks {
		var s []profile.Stack
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parse stacks %s: %v", filename, err)
		}
		return profile.MergeStacks(rootName, s)
	}
	var profileTree model.ProfileTree
	if err := json.Unmarshal(data, &profileTree); err != nil {
		return nil, fmt.Errorf("parse profile tree %s: %v", filename, err)
	}
	return profile.LoadProfileTree(profileTree)
}

func runCallGraph(cmd *cobra.Command, filename, output, dataMode, rootName string, sampleType model.SampleType, stacks bool) error {
	log := prefixLogger("callgraph")
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	tree, err := loadFunctionTree(filename, rootName, stacks)
	if err != nil {
		return err
	}
	tree.SampleType = sampleType
	log.Debugf("%d functions loaded from %s", tree.Len(), filename)

	options, err := diagram.DecodeOptions(map[string]interface{}{"data_mode": dataMode})
	if err != nil {
		return err
	}
	diagrammer, err := diagram.NewDiagrammer(analytics_common.DIAGRAM_CALLGRAPH, &cfg.AnalyticsConfig.CallGraph, nil)
	if err != nil {
		return err
	}
	out, err := diagrammer.Draw(&diagram.Data{Tree: tree}, options)
	if err != nil {
		log.Error("draw call graph failed:", err)
		return err
	}

	w := cmd.OutOrStdout()
	switch v := out.(type) {
	case *model.CallGraph:
		return common.Print(w, output, v, func(w io.Writer) { tableCallGraph(w, v) })
	case *model.CallGraphImage:
		return common.Print(w, output, v, func(w io.Writer) { fmt.Fprintln(w, v.CallGraphData) })
	}
	return fmt.Errorf("unexpected call graph result %T", out)
}

func tableCallGraph(w io.Writer, graph *model.CallGraph) {
	names := make(map[int]string, len(graph.Nodes))
	table := common.NewTable(w)
	table.SetHeader([]string{"ID", "NAME", "VALUE", "SELF", "TOTAL"})
	for _, node := range graph.Nodes {
		names[node.ID] = node.Name
		table.Append([]string{
			strconv.Itoa(node.ID), node.Name,
			diagram.FormatDuration(float64(node.Value)), diagram.FormatDuration(float64(node.Self)),
			fmt.Sprintf("%.2f%%", percentOf(node.Value, graph.CallGraphAll)),
		})
	}
	table.Render()

	fmt.Fprintln(w)
	table = common.NewTable(w)
	table.SetHeader([]string{"CALLER", "CALLEE", "VALUE"})
	for _, edge := range graph.Edges {
		table.Append([]string{names[edge.SourceID], names[edge.TargetID], diagram.FormatDuration(float64(edge.Value))})
	}
	table.Render()
}

func percentOf(value, all int64) float64 {
	if all == 0 {
		return 0
	}
	return float64(value) / float64(all) * 100
}
