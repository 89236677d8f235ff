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

package gen

import (
	"errors"
	"sort"

	"github.com/dominikbraun/graph"

	"github.com/pulumi/pulumi-sdkgen/pkg/codegen"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/schema"
)

// checkSupported rejects packages that cannot be rendered as Go: unions that mix objects and primitives, and asset
// and archive values.
func checkSupported(pkg *schema.Package) error {
	var failure error
	unsupported := func(feature, token string) {
		if failure == nil {
			failure = &codegen.UnsupportedFeatureError{Language: "go", Feature: feature, Token: token}
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
			if len(t.ObjectTypes()) != 0 && len(t.ObjectTypes()) != len(t.ElementTypes) {
				unsupported(codegen.FeatureMixedUnion, owner)
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

// moduleHosts assigns schema modules to Go packages. Go packages may not import each other, so modules whose
// members refer to each other in a cycle share one Go package: the first module of the cycle in sort order. The
// result only holds modules that moved.
func moduleHosts(pkg *schema.Package) (map[string]string, error) {
	imports := graph.New(graph.StringHash, graph.Directed())
	addModule := func(mod string) {
		if err := imports.AddVertex(mod); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
			panic(err)
		}
	}
	addImport := func(from, to string) {
		if from == to {
			return
		}
		addModule(from)
		addModule(to)
		if err := imports.AddEdge(from, to); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
			panic(err)
		}
	}

	var visit func(from string, t schema.Type)
	visit = func(from string, t schema.Type) {
		switch t := t.(type) {
		case *schema.OptionalType:
			visit(from, t.ElementType)
		case *schema.ArrayType:
			visit(from, t.ElementType)
		case *schema.MapType:
			visit(from, t.ElementType)
		case *schema.UnionType:
			for _, e := range t.ElementTypes {
				visit(from, e)
			}
		case *schema.ObjectType, *schema.EnumType, *schema.ResourceType:
			addImport(from, pkg.TokenToModule(schema.TypeToken(t)))
		}
	}
	codegen.VisitPackageProperties(pkg, func(owner string, p *schema.Property) {
		visit(pkg.TokenToModule(owner), p.Type)
	})

	components, err := graph.StronglyConnectedComponents(imports)
	if err != nil {
		return nil, err
	}
	hosts := map[string]string{}
	for _, c := range components {
		if len(c) < 2 {
			continue
		}
		sorted := append([]string(nil), c...)
		sort.Strings(sorted)
		for _, mod := range sorted[1:] {
			hosts[mod] = sorted[0]
		}
	}
	return hosts, nil
}
