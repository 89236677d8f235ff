// Copyright 2016-2024, Pulumi Corporation.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package schema

import (
	_ "embed"
	"errors"
	"io"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed metaschema.json
var metaSchema string

const metaSchemaURL = "blob://sdkgen.json"

// MetaSchema is the compiled JSON Schema that every package schema document must satisfy.
var MetaSchema *jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.LoadURL = func(u string) (io.ReadCloser, error) {
		if u == metaSchemaURL {
			return io.NopCloser(strings.NewReader(metaSchema)), nil
		}
		return jsonschema.LoadURL(u)
	}
	MetaSchema = compiler.MustCompile(metaSchemaURL)
}

// validateMetaSchema checks a decoded schema document against the metaschema. The document must contain only values
// produced by JSON decoding.
func validateMetaSchema(raw interface{}) (hcl.Diagnostics, error) {
	err := MetaSchema.Validate(raw)
	if err == nil {
		return nil, nil
	}
	var validationError *jsonschema.ValidationError
	if !errors.As(err, &validationError) {
		return nil, err
	}

	var diags hcl.Diagnostics
	var appendError func(err *jsonschema.ValidationError)
	appendError = func(err *jsonschema.ValidationError) {
		if len(err.Causes) == 0 && err.Message != "" {
			path := "#" + err.InstanceLocation
			diags = diags.Append(schemaErrorf(path, memberOfPath(path), "%v", err.Message))
		}
		for _, err := range err.Causes {
			appendError(err)
		}
	}
	appendError(validationError)

	return diags, nil
}

// memberOfPath extracts the member token from a JSON pointer such as "#/resources/pkg:mod:Name/...".
func memberOfPath(path string) string {
	parts := strings.Split(strings.TrimPrefix(path, "#/"), "/")
	if len(parts) < 2 {
		return ""
	}
	switch parts[0] {
	case "types", "resources", "functions":
		return unescapePointer(parts[1])
	default:
		return ""
	}
}

func unescapePointer(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
}
