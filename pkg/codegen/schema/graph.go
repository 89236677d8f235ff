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
	"errors"
	"sort"

	"github.com/dominikbraun/graph"
)

const propertyAttribute = "property"

// referenceGraph records which package members refer to which types. It is used to explain unresolved references
// and to find reference cycles between object types.
type referenceGraph struct {
	members graph.Graph[string, string]
	objects graph.Graph[string, string]
	roots   []string

	selfRefs map[string]bool
}

func newReferenceGraph() *referenceGraph {
	return &referenceGraph{
		members:  graph.New(graph.StringHash, graph.Directed()),
		objects:  graph.New(graph.StringHash, graph.Directed()),
		selfRefs: map[string]bool{},
	}
}

func (g *referenceGraph) addMember(token string, root, object bool) {
	addVertex(g.members, token)
	if object {
		addVertex(g.objects, token)
	}
	if root {
		g.roots = append(g.roots, token)
	}
}

// addReference records that the given property of from refers to to.
func (g *referenceGraph) addReference(from, property, to string, object bool) {
	if from == to {
		g.selfRefs[from] = true
		return
	}
	addVertex(g.members, from)
	addVertex(g.members, to)
	err := g.members.AddEdge(from, to, graph.EdgeAttribute(propertyAttribute, property))
	if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
		panic(err)
	}
	if object {
		addVertex(g.objects, from)
		addVertex(g.objects, to)
		err := g.objects.AddEdge(from, to)
		if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
			panic(err)
		}
	}
}

func addVertex(g graph.Graph[string, string], token string) {
	if err := g.AddVertex(token); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		panic(err)
	}
}

// chainTo returns the shortest reference chain from a root member (a resource or function) to target, alternating
// member tokens and property names. Ties are broken by token order so that the chain is deterministic.
func (g *referenceGraph) chainTo(target string) []string {
	adjacency, err := g.members.AdjacencyMap()
	if err != nil {
		return []string{target}
	}

	type step struct {
		prev     string
		property string
	}

	roots := append([]string(nil), g.roots...)
	sort.Strings(roots)
	for _, root := range roots {
		if root == target {
			return []string{target}
		}
	}

	visited := map[string]step{}
	queue := make([]string, 0, len(roots))
	for _, root := range roots {
		visited[root] = step{}
		queue = append(queue, root)
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		neighbors := make([]string, 0, len(adjacency[current]))
		for n := range adjacency[current] {
			neighbors = append(neighbors, n)
		}
		sort.Strings(neighbors)

		for _, n := range neighbors {
			if _, seen := visited[n]; seen {
				continue
			}
			visited[n] = step{prev: current, property: adjacency[current][n].Properties.Attributes[propertyAttribute]}
			if n == target {
				var chain []string
				for at := n; at != ""; at = visited[at].prev {
					chain = append(chain, at)
					if s := visited[at]; s.prev != "" {
						chain = append(chain, s.property)
					}
				}
				for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
					chain[i], chain[j] = chain[j], chain[i]
				}
				return chain
			}
			queue = append(queue, n)
		}
	}
	return []string{target}
}

// cycles returns the sets of object type tokens that participate in reference cycles. Each set is sorted and the
// sets are ordered by their first token.
func (g *referenceGraph) cycles() ([][]string, error) {
	components, err := graph.StronglyConnectedComponents(g.objects)
	if err != nil {
		return nil, err
	}

	var cycles [][]string
	for _, c := range components {
		if len(c) == 1 && !g.selfRefs[c[0]] {
			continue
		}
		sorted := append([]string(nil), c...)
		sort.Strings(sorted)
		cycles = append(cycles, sorted)
	}
	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i][0] < cycles[j][0]
	})
	return cycles, nil
}
