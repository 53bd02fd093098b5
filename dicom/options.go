// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dicom

import "log"

// ParserOption configures a call to Parse, ParseFile, or ParseItemElements.
type ParserOption func(*parserConfig)

type parserConfig struct {
	dict            Dictionary
	logger          *log.Logger
	looseCustomTags bool
}

func newParserConfig(opts []ParserOption) *parserConfig {
	cfg := &parserConfig{
		dict:            emptyDictionary{},
		logger:          log.Default(),
		looseCustomTags: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithDictionary supplies the tag/VR/title lookup table the decoder
// consults for descriptions and for resolving implicit-VR elements. The
// zero value (no option given) is a Dictionary that misses on every tag.
func WithDictionary(dict Dictionary) ParserOption {
	return func(cfg *parserConfig) {
		cfg.dict = dict
	}
}

// WithLooseCustomTags toggles whether an unrecognized tag under implicit VR
// encoding may be read speculatively as an explicit-VR header or as an
// undefined-length implicit sequence. Enabled by default; vendor private
// sequences generally require it.
func WithLooseCustomTags(enabled bool) ParserOption {
	return func(cfg *parserConfig) {
		cfg.looseCustomTags = enabled
	}
}

// WithLogger directs advisory diagnostics (unknown transfer syntax, etc.)
// to l instead of log.Default(). A nil l discards them.
func WithLogger(l *log.Logger) ParserOption {
	return func(cfg *parserConfig) {
		cfg.logger = l
	}
}
