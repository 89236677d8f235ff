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

package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringSetContains(t *testing.T) {
	t.Parallel()

	set123 := NewStringSet("1", "2", "3")
	set12 := NewStringSet("1", "2")
	set14 := NewStringSet("1", "4")
	setEmpty := NewStringSet()

	assert.True(t, set123.Contains(set123))
	assert.True(t, set123.Contains(set12))
	assert.False(t, set12.Contains(set123))
	assert.False(t, set123.Contains(set14))
	assert.True(t, set123.Contains(setEmpty))
}

func TestStringSetSubtract(t *testing.T) {
	t.Parallel()

	set1234 := NewStringSet("1", "2", "3", "4")
	set125 := NewStringSet("1", "2", "5")
	set34 := NewStringSet("3", "4")
	setEmpty := NewStringSet()

	assert.Equal(t, set34, set1234.Subtract(set125))
	assert.Equal(t, setEmpty, set1234.Subtract(set1234))
	assert.Equal(t, set1234, set1234.Subtract(setEmpty))
}

func TestFsAdd(t *testing.T) {
	t.Parallel()

	fs := Fs{}
	fs.Add("b/index.ts", []byte("b"))
	fs.Add("a.ts", []byte("a"))

	assert.Equal(t, []string{"a.ts", "b/index.ts"}, fs.SortedPaths())
	assert.Equal(t, NewStringSet("a.ts", "b/index.ts"), fs.Paths())
	assert.EqualError(t, fs.Set("a.ts", nil), "duplicate file: a.ts")
	assert.Equal(t, []byte("a"), fs["a.ts"])

	clone := fs.Clone()
	clone.Add("c.ts", nil)
	assert.Len(t, fs, 2)
}

func TestExpandShortEnumName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Asterisk", ExpandShortEnumName("*"))
	assert.Equal(t, "Seven", ExpandShortEnumName("7"))
	assert.Equal(t, "tcp", ExpandShortEnumName("tcp"))
}

func TestFilterExamples(t *testing.T) {
	t.Parallel()

	description := "Creates a VPC.\n\n{{% examples %}}\n{{% example %}}\n### Basic usage\n\n" +
		"```typescript\nnew awsx.ec2.Vpc(\"vpc\");\n```\n```go\nec2.NewVpc(ctx, \"vpc\", nil)\n```\n" +
		"{{% /example %}}\n{{% /examples %}}\n"

	assert.Equal(t,
		"Creates a VPC.\n\n## Example Usage\n\n### Basic usage\n\n```go\nec2.NewVpc(ctx, \"vpc\", nil)\n```",
		FilterExamples(description, "go"))
	assert.Equal(t, "Creates a VPC.", FilterExamples(description, "python"))
	assert.Equal(t, "No examples here.", FilterExamples("No examples here.", "dotnet"))
}

func TestCommentLines(t *testing.T) {
	t.Parallel()

	assert.Nil(t, CommentLines("  \n"))
	assert.Equal(t, []string{"first", "", "second"}, CommentLines("first  \n\nsecond\n\n"))
}
