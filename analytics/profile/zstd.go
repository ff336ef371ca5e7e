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

package profile

import (
	"sync"

	"github.com/klauspost/compress/zstd"
)

var (
	decoder     *zstd.Decoder
	decoderOnce sync.Once
	decoderErr  error

	encoder     *zstd.Encoder
	encoderOnce sync.Once
	encoderErr  error
)

// ZstdDecompress decodes src into dst, reusing dst's capacity.
func ZstdDecompress(dst, src []byte) ([]byte, error) {
	decoderOnce.Do(func() {
		decoder, decoderErr = zstd.NewReader(nil)
		if decoderErr != nil {
			log.Error(decoderErr)
		}
	})
	if decoderErr != nil {
		return nil, decoderErr
	}
	return decoder.DecodeAll(src, dst[:0])
}

func ZstdCompress(dst, src []byte) ([]byte, error) {
	encoderOnce.Do(func() {
		encoder, encoderErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if encoderErr != nil {
			log.Error(encoderErr)
		}
	})
	if encoderErr != nil {
		return nil, encoderErr
	}
	return encoder.EncodeAll(src, dst[:0]), nil
}
