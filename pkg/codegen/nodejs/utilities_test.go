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

package nodejs

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeSafeEnumName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"Public", "Public"},
		{"private_with_egress", "Private_with_egress"},
		{"*", "Asterisk"},
		{"0", "Zero"},
		{"10.0", "SubnetType_10_0"},
		{"application/json", "Application_json"},
		{"default", "Default"},
		{"EC2--Spot", "EC2_Spot"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := makeSafeEnumName(tt.input, "SubnetType")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := makeSafeEnumName("+", "SubnetType")
	assert.EqualError(t, err, "enum name + is not a valid identifier")
}

func TestIdentifiers(t *testing.T) {
	t.Parallel()

	assert.True(t, isLegalIdentifier("subnetIds"))
	assert.True(t, isLegalIdentifier("$ref"))
	assert.False(t, isLegalIdentifier("enum"))
	assert.False(t, isLegalIdentifier("1st"))
	assert.False(t, isLegalIdentifier(""))

	assert.Equal(t, "vpc_id", makeValidIdentifier("vpc-id"))
	assert.Equal(t, "_class", makeValidIdentifier("class"))
	assert.Equal(t, "_1st", makeValidIdentifier("1st"))
	assert.Equal(t, "$ref", makeValidIdentifier("$ref"))
}

func TestPropertyKeyAndAccess(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "vpcId", propertyKey("vpcId"))
	assert.Equal(t, "default", propertyKey("default"))
	assert.Equal(t, `"aws:region"`, propertyKey("aws:region"))
	assert.Equal(t, `"1st"`, propertyKey("1st"))

	assert.Equal(t, "args.vpcId", propertyAccess("args", "vpcId"))
	assert.Equal(t, "args.default", propertyAccess("args", "default"))
	assert.Equal(t, `args["aws:region"]`, propertyAccess("args", "aws:region"))
}

func TestEscape(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "cidrBlock", escape("cidrBlock"))
	assert.Equal(t, `a \"quoted\" \\ path`, escape(`a "quoted" \ path`))
	assert.Equal(t, `line\nbreak`, escape("line\nbreak"))
}

func TestModulePaths(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "cloudtrail/v2", moduleDir("CloudTrail/V2"))
	assert.Equal(t, "cloudtrail.v2", namespacePath("CloudTrail/V2"))

	tests := []struct {
		from, to, expected string
	}{
		{"", "", "."},
		{"", "ec2", "./ec2"},
		{"ec2", "", ".."},
		{"ec2", "types/input", "../types/input"},
		{"cloudtrail/v2", "ec2", "../../ec2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, relativeImport(tt.from, tt.to), "%q -> %q", tt.from, tt.to)
	}
}

func TestPrintComment(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printComment(&buf, "Line one\n\nLine */ two\n", "Use Vpc instead.", "    ")
	assert.Equal(t, "    /**\n"+
		"     * Line one\n"+
		"     *\n"+
		"     * Line *&#47; two\n"+
		"     *\n"+
		"     * @deprecated Use Vpc instead.\n"+
		"     */\n", buf.String())

	buf.Reset()
	printComment(&buf, "  \n", "", "")
	assert.Empty(t, buf.String())
}
