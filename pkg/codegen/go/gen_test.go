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
	"context"
	"go/parser"
	"go/token"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulumi/pulumi-sdkgen/pkg/codegen"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/testing/test"
)

func TestGeneratePackageAwsx(t *testing.T) {
	t.Parallel()

	result, err := test.Emit(t, NewEmitter(), "awsx.json")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"awsx/doc.go",
		"awsx/ec2/defaultVpc.go",
		"awsx/ec2/init.go",
		"awsx/ec2/lookupDefaultVpc.go",
		"awsx/ec2/pulumiEnums.go",
		"awsx/ec2/pulumiTypes.go",
		"awsx/ec2/pulumiUtilities.go",
		"awsx/ec2/vpc.go",
		"awsx/ecr/init.go",
		"awsx/ecr/pulumiEnums.go",
		"awsx/ecr/pulumiTypes.go",
		"awsx/ecr/repository.go",
		"awsx/ecs/ec2Service.go",
		"awsx/ecs/init.go",
		"awsx/ecs/pulumiTypes.go",
		"awsx/lb/applicationLoadBalancer.go",
		"awsx/lb/init.go",
		"awsx/lb/pulumiTypes.go",
	}, result.Files.SortedPaths())

	assert.Equal(t, []string{
		"awsx:ec2:DefaultVpc",
		"awsx:ec2:Vpc",
		"awsx:ecr:Repository",
		"awsx:ecs:EC2Service",
		"awsx:lb:ApplicationLoadBalancer",
	}, result.Tokens)
	assert.Empty(t, result.Overlays)
}

func TestGeneratedFilesParse(t *testing.T) {
	t.Parallel()

	for _, fixture := range []string{"awsx.json", "cycle.json", "discriminated.json", "union-primitives.json"} {
		fixture := fixture
		t.Run(fixture, func(t *testing.T) {
			t.Parallel()

			files := test.MustEmit(t, NewEmitter(), fixture)
			fset := token.NewFileSet()
			for _, p := range files.SortedPaths() {
				f, err := parser.ParseFile(fset, p, files[p], parser.ParseComments)
				require.NoError(t, err, p)
				assert.Equal(t, path.Base(path.Dir(p)), f.Name.Name, p)
			}
		})
	}
}

func TestDocFile(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "awsx.json")
	assert.Equal(t, "// Pulumi Amazon Web Services (AWS) AWSX Components.\npackage awsx\n\n"+
		"// sdkgen:preserve-begin extensions\n// sdkgen:preserve-end extensions\n",
		test.File(t, files, "awsx/doc.go"))
}

func TestComponentResource(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "awsx.json")
	vpc := test.File(t, files, "awsx/ec2/vpc.go")

	assert.Contains(t, vpc, "package ec2")
	assert.Contains(t, vpc, `awsec2 "github.com/pulumi/pulumi-aws/sdk/v5/go/aws/ec2"`)
	assert.Contains(t, vpc, `"github.com/pulumi/pulumi-sdkgen/sdk/go/pulumi"`)
	assert.Contains(t, vpc, "pulumi.ResourceState")
	assert.Regexp(t, `Vpc\s+pulumi\.Output\[\*awsec2\.Vpc\]\s+`+"`"+`pulumi:"vpc"`+"`", vpc)
	assert.Regexp(t, `Subnets\s+pulumi\.Output\[\[\]\*awsec2\.Subnet\]`, vpc)
	assert.Regexp(t, `NatGateways\s+\*NatGatewayConfiguration\s+`+"`"+`pulumi:"natGateways"`+"`", vpc)
	assert.Regexp(t, `Tags\s+map\[string\]string`, vpc)

	// No required inputs, so a nil args is replaced.
	assert.Contains(t, vpc, "args = &VpcArgs{}")
	assert.NotContains(t, vpc, "missing one or more required arguments")

	assert.Contains(t, vpc, `cidrBlock := getEnvOrDefault("10.0.0.0/16", nil, "AWSX_VPC_CIDR_BLOCK").(string)`)
	assert.Contains(t, vpc, "numberOfAvailabilityZones := 3")
	assert.Contains(t, vpc, `ctx.RegisterRemoteComponentResource("awsx:ec2:Vpc", name, args, &resource, opts...)`)
	assert.NotContains(t, vpc, "func GetVpc")

	utils := test.File(t, files, "awsx/ec2/pulumiUtilities.go")
	assert.Contains(t, utils, "func getEnvOrDefault(")
	assert.Contains(t, utils, "func parseEnvBool(")
}

func TestRequiredArguments(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "awsx.json")
	svc := test.File(t, files, "awsx/ecs/ec2Service.go")

	assert.Contains(t, svc, "func NewEc2Service(ctx *pulumi.Context,")
	assert.Contains(t, svc, `errors.New("missing one or more required arguments")`)
	assert.Regexp(t, `Cluster\s+string\s+`+"`"+`pulumi:"cluster"`+"`", svc)
	assert.Regexp(t, `TaskDefinitionArgs\s+\*Ec2ServiceTaskDefinition`, svc)
	assert.Contains(t, svc, `awsecs "github.com/pulumi/pulumi-aws/sdk/v5/go/aws/ecs"`)
}

func TestCustomResource(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "awsx.json")
	vpc := test.File(t, files, "awsx/ec2/defaultVpc.go")

	assert.Contains(t, vpc, "pulumi.CustomResourceState")
	assert.Contains(t, vpc, `ctx.RegisterResource("awsx:ec2:DefaultVpc", name, args, &resource, opts...)`)
	assert.Contains(t, vpc, "func GetDefaultVpc(ctx *pulumi.Context,")
	assert.Contains(t, vpc, `ctx.ReadResource("awsx:ec2:DefaultVpc", name, id, state, &resource, opts...)`)
	assert.Contains(t, vpc, "type DefaultVpcState struct")
	assert.Regexp(t, `VpcId\s+\*string\s+`+"`"+`pulumi:"vpcId"`+"`", vpc)
}

func TestFunctionRenamedOnConflict(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "awsx.json")
	fn := test.File(t, files, "awsx/ec2/lookupDefaultVpc.go")

	// The inputs have no properties, so there is no args parameter.
	assert.Contains(t, fn, "func LookupDefaultVpc(ctx *pulumi.Context, opts ...pulumi.InvokeOption) (*LookupDefaultVpcResult, error) {")
	assert.Contains(t, fn, `ctx.Invoke("awsx:ec2:getDefaultVpc", nil, &rv, opts...)`)
	assert.Contains(t, fn, "type LookupDefaultVpcResult struct")
	assert.NotContains(t, fn, "LookupDefaultVpcArgs")
	assert.Regexp(t, `PublicSubnetIds\s+\[\]string`, fn)
}

func TestEnums(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "awsx.json")
	enums := test.File(t, files, "awsx/ec2/pulumiEnums.go")

	assert.Contains(t, enums, "type NatGatewayStrategy string")
	assert.Regexp(t, `NatGatewayStrategyOnePerAz\s+= NatGatewayStrategy\("OnePerAz"\)`, enums)
	assert.Contains(t, enums, "// Create a NAT Gateway in each availability zone.")
	assert.Contains(t, enums, "func NatGatewayStrategyValues() []NatGatewayStrategy {")

	ecr := test.File(t, files, "awsx/ecr/pulumiEnums.go")
	assert.Regexp(t, `LifecycleTagStatusUntagged\s+= LifecycleTagStatus\("untagged"\)`, ecr)
}

func TestObjectDefaults(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "awsx.json")
	types := test.File(t, files, "awsx/ecs/pulumiTypes.go")

	assert.Contains(t, types, "func (val *TaskDefinitionContainerDefinition) Defaults() *TaskDefinitionContainerDefinition {")
	assert.Contains(t, types, "essential := true")
	assert.Contains(t, types, `protocol := "tcp"`)
	assert.Regexp(t, `TargetGroup\s+\*awslb\.TargetGroup`, types)
	assert.Contains(t, types, `awslb "github.com/pulumi/pulumi-aws/sdk/v5/go/aws/lb"`)
	assert.NotContains(t, types, "func (val *Ec2ServiceTaskDefinition) Defaults()")
}

func TestObjectUnion(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "awsx.json")
	types := test.File(t, files, "awsx/ecs/pulumiTypes.go")

	assert.Contains(t, types, "type Ec2ServiceTaskDefinitionVolume interface {")
	assert.Regexp(t, `Volumes\s+\[\]Ec2ServiceTaskDefinitionVolume`, types)
	assert.Contains(t, types, "func (TaskDefinitionHostVolume) IsEc2ServiceTaskDefinitionVolume() {}")
	assert.Contains(t, types, "func (TaskDefinitionEfsVolume) IsEc2ServiceTaskDefinitionVolume() {}")
	assert.Contains(t, types, `pulumi.RegisterUnion(reflect.TypeOf((*Ec2ServiceTaskDefinitionVolume)(nil)).Elem(), "kind"`)
	assert.Contains(t, types, `"TaskDefinitionHostVolume": reflect.TypeOf(TaskDefinitionHostVolume{}),`)
}

func TestDiscriminatedUnions(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "discriminated.json")
	types := test.File(t, files, "shapes/pulumiTypes.go")
	canvas := test.File(t, files, "shapes/canvas.go")

	assert.Contains(t, types, "func (Circle) IsCanvasShape() {}")
	assert.Contains(t, types, "func (Circle) IsCanvasBackground() {}")
	assert.Contains(t, types, `"circle": reflect.TypeOf(Circle{}),`)
	assert.Contains(t, types, `"Circle": reflect.TypeOf(Circle{}),`)
	assert.Contains(t, types, `(*CanvasBackground)(nil)).Elem(), "kind2"`)

	assert.Regexp(t, `Shape\s+CanvasShape\s+`+"`", canvas)
	assert.Regexp(t, `Background\s+CanvasBackground\s+`+"`", canvas)
	assert.Contains(t, canvas, "if args.Shape == nil {")
	assert.NotContains(t, canvas, "if args.Background == nil {")
}

func TestPrimitiveUnionsAreAny(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "union-primitives.json")
	setting := test.File(t, files, "unions/setting.go")

	assert.Regexp(t, `Pair\s+any\s+`+"`", setting)
	assert.Regexp(t, `Value\s+any\s+`+"`", setting)
	assert.Contains(t, setting, "if args.Value == nil {")
}

func TestCyclicTypes(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "cycle.json")
	types := test.File(t, files, "cyclic/pulumiTypes.go")

	assert.Regexp(t, `Children\s+\[\]TreeNode\s+`, types)
	assert.Regexp(t, `Parent\s+\*TreeNode\s+`, types)
	assert.Regexp(t, `Right\s+\*Right\s+`, types)
	assert.Regexp(t, `Left\s+\*Left\s+`, types)
	assert.Regexp(t, `Leaf\s+\*Leaf\s+`, types)

	forest := test.File(t, files, "cyclic/forest.go")
	assert.Regexp(t, `Root\s+TreeNode\s+`+"`", forest)
	assert.Regexp(t, `Pair\s+\*Left\s+`+"`", forest)
}

func TestCrossModuleCycleSharesPackage(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "cycle-modules.json")
	for p := range files {
		assert.NotContains(t, p, "cyclic/beta/")
	}

	types := test.File(t, files, "cyclic/alpha/pulumiTypes.go")
	assert.Regexp(t, `type Ping struct`, types)
	assert.Regexp(t, `type Pong struct`, types)
	assert.Regexp(t, `Pong\s+\*Pong\s+`, types)
	assert.Regexp(t, `Ping\s+\*Ping\s+`, types)
	assert.NotContains(t, types, "cyclic/beta")

	table := test.File(t, files, "cyclic/alpha/table.go")
	assert.Regexp(t, `Ping\s+\*Ping\s+`, table)
}

func TestUnsupportedFeatures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		fixture string
		feature string
		token   string
	}{
		{"union-mixed.json", codegen.FeatureMixedUnion, "unions:index:Filter"},
		{"asset.json", codegen.FeatureAsset, "assets:index:Bundle"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.fixture, func(t *testing.T) {
			t.Parallel()

			_, err := test.Emit(t, NewEmitter(), c.fixture)
			var unsupported *codegen.UnsupportedFeatureError
			require.ErrorAs(t, err, &unsupported)
			assert.Equal(t, "go", unsupported.Language)
			assert.Equal(t, c.feature, unsupported.Feature)
			assert.Equal(t, c.token, unsupported.Token)
		})
	}
}

func TestOverlays(t *testing.T) {
	t.Parallel()

	result, err := test.Emit(t, NewEmitter(), "overlay.json")
	require.NoError(t, err)

	assert.Equal(t, []string{"awsx/cloudtrail/trail.go"}, result.Overlays)
	assert.NotContains(t, result.Files, "awsx/cloudtrail/trail.go")
	assert.Contains(t, result.Tokens, "awsx:cloudtrail:Trail")

	init := test.File(t, result.Files, "awsx/cloudtrail/init.go")
	assert.Contains(t, init, `case "awsx:cloudtrail:Trail":`)
	assert.Contains(t, init, "r = &Trail{}")
}

func TestSuppliedOverlayPathsAreSkipped(t *testing.T) {
	t.Parallel()

	pkg := test.MustLoadSchema(t, "awsx.json")
	e := NewEmitter()
	ectx := e.NewContext(pkg, codegen.NewStringSet("awsx/ec2/vpc.go"))
	result, err := e.Emit(context.Background(), pkg, ectx)
	require.NoError(t, err)

	assert.NotContains(t, result.Files, "awsx/ec2/vpc.go")
	assert.Contains(t, result.Files, "awsx/ec2/defaultVpc.go")
}

func TestResourceModuleRegistration(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "awsx.json")
	init := test.File(t, files, "awsx/ec2/init.go")

	assert.Contains(t, init, `"github.com/blang/semver"`)
	assert.Contains(t, init, `version := semver.MustParse("1.0.0")`)
	assert.Contains(t, init, `case "awsx:ec2:Vpc":`)
	assert.Contains(t, init, "r = &DefaultVpc{}")
	assert.Contains(t, init, "return nil, &pulumi.UnknownResourceTypeError{Token: typ}")
	assert.Equal(t, 1, strings.Count(init, "pulumi.RegisterResourceModule("))
	assert.Contains(t, init, `"ec2",`)
}

func TestImportOverrides(t *testing.T) {
	t.Parallel()

	pkg := test.MustLoadSchema(t, "awsx.json")
	pkg.Language["go"]["packageImports"] = map[string]interface{}{
		"aws": "example.com/aws/sdk",
	}
	pkg.Language["go"]["runtimeImportPath"] = "example.com/runtime/pulumi"
	e := NewEmitter()
	result, err := e.Emit(context.Background(), pkg, e.NewContext(pkg, nil))
	require.NoError(t, err)

	vpc := test.File(t, result.Files, "awsx/ec2/vpc.go")
	assert.Contains(t, vpc, `awsec2 "example.com/aws/sdk/ec2"`)
	assert.Contains(t, vpc, `"example.com/runtime/pulumi"`)
}

func TestCanceledContext(t *testing.T) {
	t.Parallel()

	pkg := test.MustLoadSchema(t, "awsx.json")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := NewEmitter()
	_, err := e.Emit(ctx, pkg, e.NewContext(pkg, nil))
	assert.ErrorIs(t, err, context.Canceled)
}
