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
	"context"
	"strings"
	"testing"

	"github.com/segmentio/encoding/json"
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
		"ec2/defaultVpc.ts",
		"ec2/getDefaultVpc.ts",
		"ec2/index.ts",
		"ec2/vpc.ts",
		"ecr/index.ts",
		"ecr/repository.ts",
		"ecs/ec2Service.ts",
		"ecs/index.ts",
		"index.ts",
		"lb/applicationLoadBalancer.ts",
		"lb/index.ts",
		"package.json",
		"tsconfig.json",
		"types/enums/index.ts",
		"types/index.ts",
		"types/input.ts",
		"types/output.ts",
		"utilities.ts",
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

func TestComponentResource(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "awsx.json")
	vpc := test.File(t, files, "ec2/vpc.ts")

	assert.Contains(t, vpc, "// *** WARNING: this file was generated by pulumi-sdkgen. ***")
	assert.Contains(t, vpc, `import * as pulumi from "@pulumi/pulumi";`)
	assert.Contains(t, vpc, `import * as inputs from "../types/input";`)
	assert.Contains(t, vpc, `import * as utilities from "../utilities";`)
	assert.Contains(t, vpc, `import * as aws from "@pulumi/aws";`)

	assert.Contains(t, vpc, "export class Vpc extends pulumi.ComponentResource {")
	assert.Contains(t, vpc, "public static readonly __pulumiType = 'awsx:ec2:Vpc';")
	assert.NotContains(t, vpc, "public static get(")
	assert.Contains(t, vpc, "public /*out*/ readonly vpc!: pulumi.Output<aws.ec2.Vpc>;")
	assert.Contains(t, vpc, "public readonly natGateways!: pulumi.Output<aws.ec2.NatGateway[]>;")
	assert.Contains(t, vpc, "public /*out*/ readonly subnets!: pulumi.Output<aws.ec2.Subnet[]>;")
	assert.Contains(t, vpc, "constructor(name: string, args?: VpcArgs, opts?: pulumi.ComponentResourceOptions) {")

	assert.Contains(t, vpc,
		`resourceInputs["cidrBlock"] = (args ? args.cidrBlock : undefined) ?? (utilities.getEnv("AWSX_VPC_CIDR_BLOCK") || "10.0.0.0/16");`)
	assert.Contains(t, vpc,
		`resourceInputs["numberOfAvailabilityZones"] = (args ? args.numberOfAvailabilityZones : undefined) ?? 3;`)
	assert.Contains(t, vpc, `resourceInputs["vpcId"] = undefined /*out*/;`)
	assert.Contains(t, vpc, "opts = pulumi.mergeOptions(utilities.resourceOptsDefaults(), opts);")
	assert.Contains(t, vpc, "super(Vpc.__pulumiType, name, resourceInputs, opts, true /*remote*/);")

	assert.Contains(t, vpc, "export interface VpcArgs {")
	assert.Contains(t, vpc, "natGateways?: pulumi.Input<inputs.ec2.NatGatewayConfigurationArgs>;")
	assert.Contains(t, vpc, "subnetSpecs?: pulumi.Input<inputs.ec2.SubnetSpecArgs[]>;")
	assert.Contains(t, vpc, "tags?: pulumi.Input<{[key: string]: string}>;")
	assert.Contains(t, vpc, "     * The CIDR block for the VPC.\n")
}

func TestRequiredInputs(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "awsx.json")
	svc := test.File(t, files, "ecs/ec2Service.ts")

	assert.Contains(t, svc, "export class Ec2Service extends pulumi.ComponentResource {")
	assert.Contains(t, svc, "constructor(name: string, args: Ec2ServiceArgs, opts?: pulumi.ComponentResourceOptions) {")
	assert.Contains(t, svc, "if ((!args || args.cluster === undefined) && !opts.urn) {")
	assert.Contains(t, svc, `throw new Error("Missing required property 'cluster'");`)
	assert.Contains(t, svc, "cluster: pulumi.Input<string>;")
	assert.Contains(t, svc, "taskDefinitionArgs?: pulumi.Input<inputs.ecs.Ec2ServiceTaskDefinitionArgs>;")
}

func TestCustomResource(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "awsx.json")
	vpc := test.File(t, files, "ec2/defaultVpc.ts")

	assert.Contains(t, vpc, "export class DefaultVpc extends pulumi.CustomResource {")
	assert.Contains(t, vpc,
		"public static get(name: string, id: pulumi.Input<pulumi.ID>, state?: DefaultVpcState, opts?: pulumi.CustomResourceOptions): DefaultVpc {")
	assert.Contains(t, vpc, "public /*out*/ readonly vpcId!: pulumi.Output<string>;")
	assert.Contains(t, vpc, "const state = argsOrState as DefaultVpcState | undefined;")
	assert.Contains(t, vpc, `resourceInputs["vpcId"] = state ? state.vpcId : undefined;`)
	assert.Contains(t, vpc, "super(DefaultVpc.__pulumiType, name, resourceInputs, opts);")
	assert.Contains(t, vpc, "export interface DefaultVpcState {")
	assert.Contains(t, vpc, "vpcId?: pulumi.Input<string>;")
	assert.Contains(t, vpc, "export interface DefaultVpcArgs {")
}

func TestFunction(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "awsx.json")
	fn := test.File(t, files, "ec2/getDefaultVpc.ts")

	assert.Contains(t, fn, " * Gets the default VPC for the current AWS region.")
	assert.Contains(t, fn, "export function getDefaultVpc(opts?: pulumi.InvokeOptions): Promise<GetDefaultVpcResult> {")
	assert.Contains(t, fn, `return pulumi.runtime.invoke("awsx:ec2:getDefaultVpc", {`)
	assert.NotContains(t, fn, "GetDefaultVpcArgs")
	assert.Contains(t, fn, "export interface GetDefaultVpcResult {")
	assert.Contains(t, fn, "readonly privateSubnetIds: string[];")
}

func TestModuleIndex(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "awsx.json")
	index := test.File(t, files, "ec2/index.ts")

	assert.Contains(t, index, `import * as enums from "../types/enums";`)
	assert.Contains(t, index, `export { DefaultVpcArgs, DefaultVpcState } from "./defaultVpc";`)
	assert.Contains(t, index, `export { GetDefaultVpcResult } from "./getDefaultVpc";`)
	assert.Contains(t, index, `utilities.lazyLoad(exports, ["Vpc"], () => require("./vpc"));`)
	assert.Contains(t, index, `utilities.lazyLoad(exports, ["getDefaultVpc"], () => require("./getDefaultVpc"));`)
	assert.Contains(t, index, "export const NatGatewayStrategy = enums.ec2.NatGatewayStrategy;")
	assert.Contains(t, index, "export type NatGatewayStrategy = enums.ec2.NatGatewayStrategy;")
	assert.Contains(t, index, `case "awsx:ec2:DefaultVpc":`)
	assert.Contains(t, index, "return new Vpc(name, <any>undefined, { urn })")
	assert.Equal(t, 1, strings.Count(index, "pulumi.runtime.registerResourceModule("))
	assert.Contains(t, index, `pulumi.runtime.registerResourceModule("awsx", "ec2", _module)`)
	assert.True(t, strings.HasSuffix(index,
		"// sdkgen:preserve-begin extensions\n// sdkgen:preserve-end extensions\n"))

	root := test.File(t, files, "index.ts")
	assert.Contains(t, root, `import * as ec2 from "./ec2";`)
	assert.Contains(t, root, `import * as types from "./types";`)
	assert.Contains(t, root, "    lb,\n")
	assert.NotContains(t, root, "registerResourceModule")
	assert.NotContains(t, root, "import * as utilities")
}

func TestTypes(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "awsx.json")
	inputs := test.File(t, files, "types/input.ts")

	assert.Contains(t, inputs, `import * as enums from "../types/enums";`)
	assert.Contains(t, inputs, "export namespace ec2 {")
	assert.Contains(t, inputs, "    export interface NatGatewayConfigurationArgs {")
	assert.Contains(t, inputs, "        strategy: pulumi.Input<enums.ec2.NatGatewayStrategy>;")
	assert.Contains(t, inputs, "        volumes?: pulumi.Input<(inputs.ecs.TaskDefinitionHostVolumeArgs | inputs.ecs.TaskDefinitionEfsVolumeArgs)[]>;")
	assert.Contains(t, inputs, "        targetGroup?: pulumi.Input<aws.lb.TargetGroup>;")
	assert.Contains(t, inputs, `import * as aws from "@pulumi/aws";`)

	assert.Contains(t, inputs,
		"    export function taskDefinitionContainerDefinitionArgsProvideDefaults(val: TaskDefinitionContainerDefinitionArgs): TaskDefinitionContainerDefinitionArgs {")
	assert.Contains(t, inputs, "            essential: (val.essential) ?? true,")
	assert.Contains(t, inputs, `            protocol: (val.protocol) ?? "tcp",`)

	// Nothing in the package is reachable from an output property.
	outputs := test.File(t, files, "types/output.ts")
	assert.NotContains(t, outputs, "export namespace")

	types := test.File(t, files, "types/index.ts")
	assert.Contains(t, types, `import * as input from "./input";`)
	assert.Contains(t, types, "    enums,\n")
}

func TestEnums(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "awsx.json")
	enums := test.File(t, files, "types/enums/index.ts")

	assert.Contains(t, enums, "export namespace ecr {")
	assert.Contains(t, enums, "    export const LifecycleTagStatus = {\n        Any: \"any\",\n")
	assert.Contains(t, enums, "    } as const;")
	assert.Contains(t, enums,
		"    export type LifecycleTagStatus = (typeof LifecycleTagStatus)[keyof typeof LifecycleTagStatus];")
	assert.Contains(t, enums, "         * Create a NAT Gateway in each availability zone.\n")
	assert.Contains(t, enums, "     * A type of subnet within a VPC.\n")
}

func TestPackageMetadata(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "awsx.json")

	var pkg map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(test.File(t, files, "package.json")), &pkg))
	assert.Equal(t, "@pulumi/awsx", pkg["name"])
	assert.Equal(t, "${VERSION}", pkg["version"])
	assert.Equal(t, "Pulumi Amazon Web Services (AWS) AWSX Components.", pkg["description"])
	assert.Equal(t, "bin/index.js", pkg["main"])
	assert.Equal(t, map[string]interface{}{
		"@pulumi/aws":    "^5.16.2",
		"@pulumi/pulumi": MinimumValidSDKVersion,
	}, pkg["dependencies"])
	assert.Equal(t, map[string]interface{}{"resource": true, "name": "awsx"}, pkg["pulumi"])

	tsconfig := test.File(t, files, "tsconfig.json")
	assert.Contains(t, tsconfig, `        "ec2/vpc.ts",`)
	assert.Contains(t, tsconfig, `        "utilities.ts"`+"\n    ]")

	utilities := test.File(t, files, "utilities.ts")
	assert.Contains(t, utilities, "export function getEnvBoolean(...vars: string[]): boolean | undefined {")
	assert.Contains(t, utilities, "export function lazyLoad(exports: any, props: string[], loadModule: any) {")
}

func TestRespectSchemaVersion(t *testing.T) {
	t.Parallel()

	pkg := test.MustLoadSchema(t, "awsx.json")
	pkg.Language["nodejs"]["respectSchemaVersion"] = true
	e := NewEmitter()
	result, err := e.Emit(context.Background(), pkg, e.NewContext(pkg, nil))
	require.NoError(t, err)

	assert.Contains(t, test.File(t, result.Files, "package.json"), `"version": "1.0.0"`)
}

func TestBadLanguageSettings(t *testing.T) {
	t.Parallel()

	pkg := test.MustLoadSchema(t, "awsx.json")
	pkg.Language["nodejs"]["dependencies"] = []interface{}{"@pulumi/aws"}
	e := NewEmitter()
	_, err := e.Emit(context.Background(), pkg, e.NewContext(pkg, nil))
	assert.ErrorContains(t, err, "decoding nodejs language settings")
}

func TestDiscriminatedUnions(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "discriminated.json")
	inputs := test.File(t, files, "types/input.ts")

	// Square already declares "kind", so the synthesized discriminant is "kind2".
	assert.Contains(t, inputs, "export interface CircleArgs {\n    kind2?: pulumi.Input<\"Circle\">;\n")
	assert.Contains(t, inputs, "    shape: pulumi.Input<\"circle\">;")
	assert.Contains(t, inputs, "    kind2?: pulumi.Input<\"Square\">;")

	canvas := test.File(t, files, "canvas.ts")
	assert.Contains(t, canvas, `import * as inputs from "./types/input";`)
	assert.Contains(t, canvas, "background?: pulumi.Input<inputs.CircleArgs | inputs.SquareArgs>;")
	assert.Contains(t, canvas, "shape: pulumi.Input<inputs.CircleArgs | inputs.SquareArgs>;")
}

func TestSupportedEverywhere(t *testing.T) {
	t.Parallel()

	for _, fixture := range []string{"union-mixed.json", "union-primitives.json", "asset.json", "cycle.json", "cycle-modules.json"} {
		fixture := fixture
		t.Run(fixture, func(t *testing.T) {
			t.Parallel()

			_, err := test.Emit(t, NewEmitter(), fixture)
			assert.NoError(t, err)
		})
	}

	files := test.MustEmit(t, NewEmitter(), "union-mixed.json")
	assert.Contains(t, test.File(t, files, "filter.ts"), "rule: pulumi.Input<inputs.RuleArgs | string>;")

	files = test.MustEmit(t, NewEmitter(), "asset.json")
	assert.Contains(t, test.File(t, files, "bundle.ts"), "code: pulumi.Input<pulumi.asset.Archive>;")
}

func TestOverlays(t *testing.T) {
	t.Parallel()

	result, err := test.Emit(t, NewEmitter(), "overlay.json")
	require.NoError(t, err)

	assert.Equal(t, []string{"cloudtrail/trail.ts"}, result.Overlays)
	assert.NotContains(t, result.Files, "cloudtrail/trail.ts")
	assert.Contains(t, result.Tokens, "awsx:cloudtrail:Trail")

	index := test.File(t, result.Files, "cloudtrail/index.ts")
	assert.Contains(t, index, `case "awsx:cloudtrail:Trail":`)
	assert.Contains(t, index, `utilities.lazyLoad(exports, ["Trail"], () => require("./trail"));`)

	assert.Contains(t, test.File(t, result.Files, "tsconfig.json"), `"cloudtrail/trail.ts"`)
}

func TestSuppliedOverlayPathsAreSkipped(t *testing.T) {
	t.Parallel()

	pkg := test.MustLoadSchema(t, "awsx.json")
	e := NewEmitter()
	ectx := e.NewContext(pkg, codegen.NewStringSet("ec2/vpc.ts", "ec2/extras.ts"))
	result, err := e.Emit(context.Background(), pkg, ectx)
	require.NoError(t, err)

	assert.NotContains(t, result.Files, "ec2/vpc.ts")
	assert.Contains(t, result.Files, "ec2/defaultVpc.ts")

	tsconfig := test.File(t, result.Files, "tsconfig.json")
	assert.Contains(t, tsconfig, `"ec2/extras.ts"`)
	assert.Contains(t, tsconfig, `"ec2/vpc.ts"`)
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

func TestRelativeImport(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".", relativeImport("", ""))
	assert.Equal(t, "./types/input", relativeImport("", "types/input"))
	assert.Equal(t, "..", relativeImport("ec2", ""))
	assert.Equal(t, "../../types", relativeImport("a/b", "types"))
	assert.Equal(t, "a.b", namespacePath("a/B"))
}
