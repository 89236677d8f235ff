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

package pulumi

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// marshalInputs flattens an arguments struct into the property map sent to the monitor. Fields are keyed by their
// `pulumi` tag; nil values are omitted.
func marshalInputs(props interface{}) (map[string]interface{}, error) {
	result := map[string]interface{}{}
	if props == nil {
		return result, nil
	}

	v, present, err := marshalValue(reflect.ValueOf(props))
	if err != nil {
		return nil, err
	}
	if !present {
		return result, nil
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("resource arguments must be a struct or map, got %T", props)
	}
	return m, nil
}

func marshalValue(v reflect.Value) (interface{}, bool, error) {
	if !v.IsValid() {
		return nil, false, nil
	}

	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return nil, false, nil
		}
		return marshalValue(v.Elem())
	case reflect.Bool:
		return v.Bool(), true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint(), true, nil
	case reflect.Float32, reflect.Float64:
		return v.Float(), true, nil
	case reflect.String:
		return v.String(), true, nil
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return nil, false, nil
		}
		arr := make([]interface{}, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			e, _, err := marshalValue(v.Index(i))
			if err != nil {
				return nil, false, fmt.Errorf("[%d]: %w", i, err)
			}
			arr = append(arr, e)
		}
		return arr, true, nil
	case reflect.Map:
		if v.IsNil() {
			return nil, false, nil
		}
		if v.Type().Key().Kind() != reflect.String {
			return nil, false, fmt.Errorf("map keys must be strings, got %v", v.Type().Key())
		}
		obj := map[string]interface{}{}
		iter := v.MapRange()
		for iter.Next() {
			e, present, err := marshalValue(iter.Value())
			if err != nil {
				return nil, false, fmt.Errorf("%s: %w", iter.Key().String(), err)
			}
			if present {
				obj[iter.Key().String()] = e
			}
		}
		return obj, true, nil
	case reflect.Struct:
		obj := map[string]interface{}{}
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			tag := t.Field(i).Tag.Get("pulumi")
			if tag == "" {
				continue
			}
			e, present, err := marshalValue(v.Field(i))
			if err != nil {
				return nil, false, fmt.Errorf("%s: %w", tag, err)
			}
			if present {
				obj[tag] = e
			}
		}
		return obj, true, nil
	default:
		return nil, false, fmt.Errorf("cannot marshal value of type %v", v.Type())
	}
}

// decodeOutput decodes a raw property value into out, selecting registered union variants by discriminant.
func decodeOutput(raw, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       decodeUnionHook,
		WeaklyTypedInput: true,
		TagName:          "pulumi",
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

func decodeUnionHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to.Kind() != reflect.Interface {
		return data, nil
	}
	u, ok := lookupUnion(to)
	if !ok {
		return data, nil
	}
	obj, ok := data.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("expected an object for %v, got %T", to, data)
	}
	tag, _ := obj[u.discriminant].(string)
	variant, ok := u.variants[tag]
	if !ok {
		return nil, fmt.Errorf("unknown %s %q for %v", u.discriminant, tag, to)
	}
	ptr := reflect.New(variant)
	if err := decodeOutput(obj, ptr.Interface()); err != nil {
		return nil, err
	}
	return ptr.Elem().Interface(), nil
}
