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
	"io"
	"os"

	"github.com/bitly/go-simplejson"
	json "github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"sigs.k8s.io/yaml"
)

const (
	OUTPUT_TABLE = "table"
	OUTPUT_JSON  = "json"
	OUTPUT_YAML  = "yaml"
)

// NewTable returns a borderless, left aligned table.
func NewTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	return table
}

func PrintJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func PrintYAML(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	dataYaml, err := yaml.JSONToYAML(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, string(dataYaml))
	return err
}

// Print writes v as json or yaml, or calls table for the table format.
func Print(w io.Writer, output string, v interface{}, table func(io.Writer)) error {
	switch output {
	case OUTPUT_JSON:
		return PrintJSON(w, v)
	case OUTPUT_YAML:
		return PrintYAML(w, v)
	case OUTPUT_TABLE, "":
		table(w)
		return nil
	}
	return fmt.Errorf("output format %s not supported", output)
}

// ReadJSONFile loads a json file. Querier responses wrapped in a `result`
// object are unwrapped.
func ReadJSONFile(filename string) (*simplejson.Json, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	js, err := simplejson.NewJson(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %v", filename, err)
	}
	if result, ok := js.CheckGet("result"); ok {
		return result, nil
	}
	return js, nil
}
