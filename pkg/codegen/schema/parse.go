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
	"bytes"
	stdjson "encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/golang/glog"
	"github.com/hashicorp/hcl/v2"
	"github.com/mitchellh/mapstructure"
	"github.com/segmentio/encoding/json"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// LoadOptions control how strictly a schema document is checked.
type LoadOptions struct {
	// Strict rejects unknown keys instead of reporting them as warnings.
	Strict bool
}

var (
	topLevelKeys = newKeySet("name", "displayName", "version", "description", "keywords", "homepage", "license",
		"repository", "publisher", "dependencies", "meta", "types", "resources", "functions", "language")
	resourceKeys = newKeySet("description", "properties", "required", "inputProperties", "requiredInputs",
		"isComponent", "isOverlay", "deprecationMessage")
	typeKeys     = newKeySet("description", "properties", "required", "type", "enum")
	functionKeys = newKeySet("description", "inputs", "outputs", "isOverlay", "deprecationMessage")
	objectKeys   = newKeySet("description", "properties", "required", "type")
	propertyKeys = newKeySet("type", "$ref", "items", "additionalProperties", "oneOf", "discriminator",
		"description", "const", "default", "defaultInfo", "deprecationMessage")
	typeSpecKeys = newKeySet("type", "$ref", "items", "additionalProperties", "oneOf", "discriminator")
)

type keySet map[string]struct{}

func newKeySet(keys ...string) keySet {
	s := keySet{}
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// ReadSpec reads a schema document from the given filesystem. The format is chosen by file extension: ".yaml" and
// ".yml" are YAML, anything else is JSON.
func ReadSpec(fs afero.Fs, path string, opts LoadOptions) (*PackageSpec, hcl.Diagnostics, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading schema: %w", err)
	}
	return ParseSpec(data, filepath.Ext(path), opts)
}

// ParseSpec decodes a JSON or YAML schema document and loads it. ext selects the format and may be a file
// extension or one of "json" and "yaml".
func ParseSpec(data []byte, ext string, opts LoadOptions) (*PackageSpec, hcl.Diagnostics, error) {
	var raw map[string]interface{}
	switch strings.TrimPrefix(strings.ToLower(ext), ".") {
	case "yaml", "yml":
		var doc map[string]interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			diags := hcl.Diagnostics{schemaErrorf("#", "", "%v", err)}
			return nil, diags, newDiagnosticsError(diags)
		}
		// Round-trip through JSON so that the document holds the same value types as a JSON document would.
		normalized, err := json.Marshal(doc)
		if err != nil {
			return nil, nil, fmt.Errorf("normalizing YAML schema: %w", err)
		}
		if err := json.Unmarshal(normalized, &raw); err != nil {
			return nil, nil, fmt.Errorf("normalizing YAML schema: %w", err)
		}
	default:
		if diags := checkDuplicateKeys(data); diags.HasErrors() {
			return nil, diags, newDiagnosticsError(diags)
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			diags := hcl.Diagnostics{schemaErrorf("#", "", "malformed JSON: %v", err)}
			return nil, diags, newDiagnosticsError(diags)
		}
	}
	if raw == nil {
		diags := hcl.Diagnostics{schemaErrorf("#", "", "schema document must be an object")}
		return nil, diags, newDiagnosticsError(diags)
	}
	return LoadSpec(raw, opts)
}

// LoadSpec validates a decoded schema document and converts it into a PackageSpec. Unknown keys are errors in strict
// mode and warnings otherwise; warnings are returned alongside the spec.
func LoadSpec(raw map[string]interface{}, opts LoadOptions) (*PackageSpec, hcl.Diagnostics, error) {
	diags := checkUnknownKeys(raw, opts.Strict)

	validationDiags, err := validateMetaSchema(raw)
	if err != nil {
		return nil, diags, fmt.Errorf("validating schema: %w", err)
	}
	diags = diags.Extend(validationDiags)
	if diags.HasErrors() {
		return nil, diags, newDiagnosticsError(diags)
	}

	var spec PackageSpec
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Squash:  true,
		Result:  &spec,
	})
	if err != nil {
		return nil, diags, err
	}
	if err := decoder.Decode(raw); err != nil {
		diags = diags.Append(schemaErrorf("#", "", "%v", err))
		return nil, diags, newDiagnosticsError(diags)
	}

	for _, d := range diags {
		glog.Warningf("%s", d.Summary)
	}
	return &spec, diags, nil
}

func checkUnknownKeys(raw map[string]interface{}, strict bool) hcl.Diagnostics {
	var diags hcl.Diagnostics
	report := func(path, member string) {
		if strict {
			diags = diags.Append(schemaErrorf(path, member, "unknown key"))
		} else {
			diags = diags.Append(warningf(path, "unknown key ignored"))
		}
	}
	checkObject := func(path, member string, v interface{}, allowed keySet) map[string]interface{} {
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil
		}
		for _, k := range sortedKeys(m) {
			if _, ok := allowed[k]; !ok {
				report(path+"/"+escapePointer(k), member)
			}
		}
		return m
	}

	var checkTypeSpec func(path, member string, v interface{}, allowed keySet)
	checkTypeSpec = func(path, member string, v interface{}, allowed keySet) {
		m := checkObject(path, member, v, allowed)
		if m == nil {
			return
		}
		if items, ok := m["items"]; ok {
			checkTypeSpec(path+"/items", member, items, typeSpecKeys)
		}
		if ap, ok := m["additionalProperties"]; ok {
			checkTypeSpec(path+"/additionalProperties", member, ap, typeSpecKeys)
		}
		if oneOf, ok := m["oneOf"].([]interface{}); ok {
			for i, e := range oneOf {
				checkTypeSpec(fmt.Sprintf("%s/oneOf/%d", path, i), member, e, typeSpecKeys)
			}
		}
	}
	checkProperties := func(path, member string, v interface{}) {
		if m, ok := v.(map[string]interface{}); ok {
			for _, name := range sortedKeys(m) {
				checkTypeSpec(path+"/"+escapePointer(name), member, m[name], propertyKeys)
			}
		}
	}
	checkMembers := func(section string, allowed keySet, body func(path, member string, m map[string]interface{})) {
		members, ok := raw[section].(map[string]interface{})
		if !ok {
			return
		}
		for _, tok := range sortedKeys(members) {
			path := memberPath(section, tok)
			if m := checkObject(path, tok, members[tok], allowed); m != nil {
				body(path, tok, m)
			}
		}
	}

	checkObject("#", "", raw, topLevelKeys)
	checkMembers("types", typeKeys, func(path, member string, m map[string]interface{}) {
		checkProperties(path+"/properties", member, m["properties"])
	})
	checkMembers("resources", resourceKeys, func(path, member string, m map[string]interface{}) {
		checkProperties(path+"/properties", member, m["properties"])
		checkProperties(path+"/inputProperties", member, m["inputProperties"])
	})
	checkMembers("functions", functionKeys, func(path, member string, m map[string]interface{}) {
		for _, section := range []string{"inputs", "outputs"} {
			if obj := checkObject(path+"/"+section, member, m[section], objectKeys); obj != nil {
				checkProperties(path+"/"+section+"/properties", member, obj["properties"])
			}
		}
	})
	return diags
}

// checkDuplicateKeys walks a JSON document and reports any object that repeats a key. Decoding into a map would
// silently keep the last value, which would hide duplicate type tokens.
func checkDuplicateKeys(data []byte) hcl.Diagnostics {
	dec := stdjson.NewDecoder(bytes.NewReader(data))
	var diags hcl.Diagnostics

	var walk func(path string) error
	walk = func(path string) error {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		delim, ok := tok.(stdjson.Delim)
		if !ok {
			return nil
		}
		switch delim {
		case '{':
			seen := map[string]struct{}{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return err
				}
				key, _ := keyTok.(string)
				keyPath := path + "/" + escapePointer(key)
				if _, dup := seen[key]; dup {
					diags = diags.Append(schemaErrorf(keyPath, memberOfPath(keyPath), "duplicate key %q", key))
				}
				seen[key] = struct{}{}
				if err := walk(keyPath); err != nil {
					return err
				}
			}
		case '[':
			for i := 0; dec.More(); i++ {
				if err := walk(fmt.Sprintf("%s/%d", path, i)); err != nil {
					return err
				}
			}
		}
		// Consume the closing delimiter.
		_, err = dec.Token()
		return err
	}

	if err := walk("#"); err != nil {
		// Syntax errors are reported by the real decoder.
		return nil
	}
	return diags
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func escapePointer(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}

func memberPath(section, token string, rest ...string) string {
	path := fmt.Sprintf("#/%v/%v", section, escapePointer(token))
	if len(rest) != 0 {
		path += "/" + strings.Join(rest, "/")
	}
	return path
}
