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
	"math"
	"strconv"

	json "github.com/goccy/go-json"
)

type ValueKind uint8

const (
	VALUE_NONE ValueKind = iota
	VALUE_SCALAR
	VALUE_LABEL
)

// Value is what a calculation returns for one entity: nothing, a number or
// a classification label.
type Value struct {
	Kind   ValueKind
	Scalar float64
	Label  string
}

var None = Value{}

func Scalar(v float64) Value {
	return Value{Kind: VALUE_SCALAR, Scalar: v}
}

func Label(l string) Value {
	return Value{Kind: VALUE_LABEL, Label: l}
}

func (v Value) IsNone() bool {
	return v.Kind == VALUE_NONE
}

func (v Value) String() string {
	switch v.Kind {
	case VALUE_SCALAR:
		return strconv.FormatFloat(v.Scalar, 'f', -1, 64)
	case VALUE_LABEL:
		return v.Label
	}
	return "None"
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case VALUE_SCALAR:
		return json.Marshal(v.Scalar)
	case VALUE_LABEL:
		return json.Marshal(v.Label)
	}
	return []byte("null"), nil
}

// Round rounds half away from zero to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// ToFloat accepts the numeric shapes produced by JSON decoders and the
// querier (ints, floats, json.Number, numeric strings).
func ToFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	case interface{ Float64() (float64, error) }:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func ToString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	case bool:
		return strconv.FormatBool(s)
	}
	if f, ok := ToFloat(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
