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

	json "github.com/goccy/go-json"
)

// Datapoint is a (value, timestamp) pair. A nil Value is encoded as null,
// meaning there is no data for that timestamp.
type Datapoint struct {
	Value     *float64
	Timestamp int64
}

func NewDatapoint(value float64, timestamp int64) Datapoint {
	return Datapoint{Value: &value, Timestamp: timestamp}
}

func NullDatapoint(timestamp int64) Datapoint {
	return Datapoint{Timestamp: timestamp}
}

func (d Datapoint) ValueOr(def float64) float64 {
	if d.Value == nil {
		return def
	}
	return *d.Value
}

func (d Datapoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{d.Value, d.Timestamp})
}

func (d *Datapoint) UnmarshalJSON(b []byte) error {
	var pair []interface{}
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	return d.fromPair(pair)
}

func (d *Datapoint) fromPair(pair []interface{}) error {
	if len(pair) != 2 {
		return fmt.Errorf("datapoint %v is not a (value, timestamp) pair", pair)
	}
	ts, ok := ToFloat(pair[1])
	if !ok {
		return fmt.Errorf("datapoint timestamp %v is not numeric", pair[1])
	}
	d.Timestamp = int64(ts)
	d.Value = nil
	if pair[0] != nil {
		v, ok := ToFloat(pair[0])
		if !ok {
			return fmt.Errorf("datapoint value %v is not numeric", pair[0])
		}
		d.Value = &v
	}
	return nil
}

type Series struct {
	Alias      string            `json:"alias,omitempty"`
	Datapoints []Datapoint       `json:"datapoints"`
	Dimensions map[string]string `json:"dimensions"`
	Target     string            `json:"target"`
	Type       string            `json:"type"`
	Unit       string            `json:"unit"`
}

type SeriesResult struct {
	Metrics []interface{} `json:"metrics"`
	Series  []Series      `json:"series"`
}

func NewSeriesResult(series ...Series) *SeriesResult {
	return &SeriesResult{Metrics: []interface{}{}, Series: series}
}

// TendencyPoint is encoded as [bucket, value], the order the profile
// tendency chart expects.
type TendencyPoint struct {
	Bucket int64
	Value  interface{}
}

func (p TendencyPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{p.Bucket, p.Value})
}

type TendencySeries struct {
	Alias      string            `json:"alias"`
	Datapoints []TendencyPoint   `json:"datapoints"`
	Type       string            `json:"type"`
	Unit       string            `json:"unit"`
	Dimensions map[string]string `json:"dimensions,omitempty"`
}

type TendencyResult struct {
	Series []TendencySeries `json:"series"`
}
