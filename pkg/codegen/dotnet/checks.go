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

package dotnet

import (
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/schema"
)

// checkSupported rejects packages that cannot be rendered as C#. Two-member unions map to Union and InputUnion. Wider
// unions are only rendered when all members are objects, as object.
func checkSupported(pkg *schema.Package) error {
	var failure error
	unsupported := func(feature, token string) {
		if failure == nil {
			failure = &codegen.UnsupportedFeatureError{Language: "dotnet", Feature: feature, Token: token}
		}
	}

	var visit func(owner string, t schema.Type)
	visit = func(owner string, t schema.Type) {
		switch t := t.(type) {
		case *schema.OptionalType:
			visit(owner, t.ElementType)
		case *schema.ArrayType:
			visit(owner, t.ElementType)
		case *schema.MapType:
			visit(owner, t.ElementType)
		case *schema.UnionType:
			if objects := len(t.ObjectTypes()); len(t.ElementTypes) > 2 && objects != len(t.ElementTypes) {
				if objects == 0 {
					unsupported(codegen.FeaturePrimitiveUnion, owner)
				} else {
					unsupported(codegen.FeatureMixedUnion, owner)
				}
			}
			for _, e := range t.ElementTypes {
				visit(owner, e)
			}
		default:
			if t == schema.AssetType || t == schema.ArchiveType {
				unsupported(codegen.FeatureAsset, owner)
			}
		}
	}
	codegen.VisitPackageProperties(pkg, func(owner string, p *schema.Property) {
		visit(owner, p.Type)
	})
	return failure
}
