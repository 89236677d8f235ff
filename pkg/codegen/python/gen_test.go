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

package python

import (
	"context"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulumi/pulumi-sdkgen/pkg/codegen"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/python/pyproject"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/testing/test"
)

func TestGeneratePackageAwsx(t *testing.T) {
	t.Parallel()

	result, err := test.Emit(t, NewEmitter(), "awsx.json")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"README.md",
		"pulumi_awsx/__init__.py",
		"pulumi_awsx/_utilities.py",
		"pulumi_awsx/ec2/__init__.py",
		"pulumi_awsx/ec2/_enums.py",
		"pulumi_awsx/ec2/_inputs.py",
		"pulumi_awsx/ec2/default_vpc.py",
		"pulumi_awsx/ec2/get_default_vpc.py",
		"pulumi_awsx/ec2/vpc.py",
		"pulumi_awsx/ecr/__init__.py",
		"pulumi_awsx/ecr/_enums.py",
		"pulumi_awsx/ecr/_inputs.py",
		"pulumi_awsx/ecr/repository.py",
		"pulumi_awsx/ecs/__init__.py",
		"pulumi_awsx/ecs/_inputs.py",
		"pulumi_awsx/ecs/ec2_service.py",
		"pulumi_awsx/lb/__init__.py",
		"pulumi_awsx/lb/_inputs.py",
		"pulumi_awsx/lb/application_load_balancer.py",
		"pulumi_awsx/pulumi-plugin.json",
		"pulumi_awsx/py.typed",
		"pyproject.toml",
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
	vpc := test.File(t, files, "pulumi_awsx/ec2/vpc.py")

	assert.True(t, strings.HasPrefix(vpc, "# coding=utf-8\n# *** WARNING: this file was generated by pulumi-sdkgen. ***\n"))
	assert.Contains(t, vpc, "from .. import _utilities\n")
	assert.Contains(t, vpc, "from ._inputs import *\n")
	assert.Contains(t, vpc, "import pulumi_aws\n")
	assert.Contains(t, vpc, "__all__ = ['VpcArgs', 'Vpc']")

	assert.Contains(t, vpc, "@pulumi.input_type\nclass VpcArgs:\n")
	assert.Contains(t, vpc, "                 cidr_block: Optional[pulumi.Input[str]] = None,\n")
	assert.Contains(t, vpc, "                 nat_gateways: Optional[pulumi.Input['NatGatewayConfigurationArgs']] = None,\n")
	assert.Contains(t, vpc, "                 subnet_specs: Optional[pulumi.Input[Sequence['SubnetSpecArgs']]] = None,\n")
	assert.Contains(t, vpc, "                 tags: Optional[pulumi.Input[Mapping[str, str]]] = None")
	assert.Contains(t, vpc, ":param pulumi.Input[str] cidr_block: The CIDR block for the VPC.")
	assert.Contains(t, vpc, "    @pulumi.getter(name=\"cidrBlock\")\n    def cidr_block(self) -> Optional[pulumi.Input[str]]:\n")
	assert.Contains(t, vpc, "    @cidr_block.setter\n")

	assert.Contains(t, vpc, "class Vpc(pulumi.ComponentResource):\n")
	assert.Contains(t, vpc, "                 args: Optional[VpcArgs] = None,\n")
	assert.Contains(t, vpc, "            raise ValueError('ComponentResource classes do not support opts.id')\n")
	assert.Contains(t, vpc, "            if cidr_block is None:\n                cidr_block = (_utilities.get_env('AWSX_VPC_CIDR_BLOCK') or '10.0.0.0/16')\n")
	assert.Contains(t, vpc, "            if number_of_availability_zones is None:\n                number_of_availability_zones = 3\n")
	assert.Contains(t, vpc, "            __props__.__dict__[\"cidr_block\"] = cidr_block\n")
	assert.Contains(t, vpc, "            __props__.__dict__[\"vpc_id\"] = None\n")
	assert.Contains(t, vpc, "        super(Vpc, __self__).__init__(\n            'awsx:ec2:Vpc',\n")
	assert.Contains(t, vpc, "            remote=True)\n")
	assert.NotContains(t, vpc, "def get(")

	assert.Contains(t, vpc, "    def vpc(self) -> pulumi.Output['pulumi_aws.ec2.Vpc']:\n")
	assert.Contains(t, vpc, "    def nat_gateways(self) -> pulumi.Output[Sequence['pulumi_aws.ec2.NatGateway']]:\n")
	assert.Contains(t, vpc, "    @pulumi.getter(name=\"vpcId\")\n    def vpc_id(self) -> pulumi.Output[str]:\n")
}

func TestRequiredInputs(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "awsx.json")
	svc := test.File(t, files, "pulumi_awsx/ecs/ec2_service.py")

	assert.Contains(t, svc, "class Ec2Service(pulumi.ComponentResource):\n")
	assert.Contains(t, svc, "class Ec2ServiceArgs:\n    def __init__(__self__, *,\n                 cluster: pulumi.Input[str],\n")
	assert.Contains(t, svc, "                 args: Ec2ServiceArgs,\n")
	assert.Contains(t, svc, "            if cluster is None and not opts.urn:\n")
	assert.Contains(t, svc, "                raise TypeError(\"Missing required property 'cluster'\")\n")
	assert.Contains(t, svc, "task_definition_args: Optional[pulumi.Input['Ec2ServiceTaskDefinitionArgs']] = None")
	assert.Contains(t, svc, "        pulumi.set(__self__, \"cluster\", cluster)\n")
}

func TestCustomResource(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "awsx.json")
	vpc := test.File(t, files, "pulumi_awsx/ec2/default_vpc.py")

	assert.Contains(t, vpc, "class DefaultVpc(pulumi.CustomResource):\n")
	assert.Contains(t, vpc, "class DefaultVpcArgs:\n    def __init__(__self__):\n")
	assert.Contains(t, vpc, "class _DefaultVpcState:\n")
	assert.Contains(t, vpc, "                 vpc_id: Optional[pulumi.Input[str]] = None):\n")
	assert.Contains(t, vpc, "        if opts.id is None:\n")
	assert.NotContains(t, vpc, "remote=True")

	assert.Contains(t, vpc, "    @staticmethod\n    def get(resource_name: str,\n            id: pulumi.Input[str],\n")
	assert.Contains(t, vpc, "            vpc_id: Optional[pulumi.Input[str]] = None) -> 'DefaultVpc':\n")
	assert.Contains(t, vpc, "        __props__ = _DefaultVpcState.__new__(_DefaultVpcState)\n")
	assert.Contains(t, vpc, "        __props__.__dict__[\"vpc_id\"] = vpc_id\n")
	assert.Contains(t, vpc, "        return DefaultVpc(resource_name, opts=opts, __props__=__props__)\n")
}

func TestFunction(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "awsx.json")
	fn := test.File(t, files, "pulumi_awsx/ec2/get_default_vpc.py")

	assert.Contains(t, fn, "__all__ = [\n    'GetDefaultVpcResult',\n    'AwaitableGetDefaultVpcResult',\n    'get_default_vpc',\n]")
	assert.Contains(t, fn, "@pulumi.output_type\nclass GetDefaultVpcResult:\n")
	assert.Contains(t, fn, "        if vpc_id and not isinstance(vpc_id, str):\n")
	assert.Contains(t, fn, "        if private_subnet_ids and not isinstance(private_subnet_ids, list):\n")
	assert.Contains(t, fn, "class AwaitableGetDefaultVpcResult(GetDefaultVpcResult):\n")
	assert.Contains(t, fn, "def get_default_vpc(opts: Optional[pulumi.InvokeOptions] = None) -> AwaitableGetDefaultVpcResult:\n")
	assert.Contains(t, fn, "    Gets the default VPC for the current AWS region.\n")
	assert.Contains(t, fn,
		"    __ret__ = pulumi.runtime.invoke('awsx:ec2:getDefaultVpc', __args__, opts=opts, typ=GetDefaultVpcResult).value\n")
	assert.Contains(t, fn, "        vpc_id=pulumi.get(__ret__, 'vpc_id'))\n")
}

func TestModuleInit(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "awsx.json")
	ec2 := test.File(t, files, "pulumi_awsx/ec2/__init__.py")

	assert.Contains(t, ec2, "from .. import _utilities\nimport typing\n")
	assert.Contains(t, ec2, "# Export this package's modules as members:\n"+
		"from ._enums import *\n"+
		"from .default_vpc import *\n"+
		"from .get_default_vpc import *\n"+
		"from .vpc import *\n"+
		"from ._inputs import *\n")
	assert.NotContains(t, ec2, "from . import outputs")
	assert.NotContains(t, ec2, "_utilities.register(")
	assert.True(t, strings.HasSuffix(ec2, "# sdkgen:preserve-begin extensions\n# sdkgen:preserve-end extensions\n"))

	root := test.File(t, files, "pulumi_awsx/__init__.py")
	assert.Contains(t, root, "from . import _utilities\n")
	assert.Contains(t, root, "if typing.TYPE_CHECKING:\n    import pulumi_awsx.ec2 as ec2\n")
	assert.Contains(t, root, "    lb = _utilities.lazy_import('pulumi_awsx.lb')\n")
	assert.Contains(t, root, "_utilities.register(\n    resource_modules=\"\"\"\n")
	assert.Equal(t, 1, strings.Count(root, "_utilities.register("))
	assert.True(t, strings.HasSuffix(root, "# sdkgen:preserve-begin extensions\n# sdkgen:preserve-end extensions\n"))

	// The registration table is JSON inside a Python string literal.
	start := strings.Index(root, `"""`) + 3
	end := strings.LastIndex(root, `"""`)
	var infos []resourceModuleInfo
	require.NoError(t, json.Unmarshal([]byte(root[start:end]), &infos))
	require.Len(t, infos, 4)
	assert.Equal(t, resourceModuleInfo{
		Pkg: "awsx",
		Mod: "ec2",
		Fqn: "pulumi_awsx.ec2",
		Classes: map[string]string{
			"awsx:ec2:DefaultVpc": "DefaultVpc",
			"awsx:ec2:Vpc":        "Vpc",
		},
	}, infos[0])
	assert.Equal(t, "ecs", infos[2].Mod)
	assert.Equal(t, map[string]string{"awsx:ecs:EC2Service": "Ec2Service"}, infos[2].Classes)
}

func TestTypes(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "awsx.json")
	inputs := test.File(t, files, "pulumi_awsx/ecs/_inputs.py")

	assert.NotContains(t, inputs, "from ._inputs import *")
	assert.Contains(t, inputs, "import pulumi_aws\n")
	assert.Contains(t, inputs, "    'Ec2ServiceTaskDefinitionArgs',\n")
	assert.Contains(t, inputs,
		"                 volumes: Optional[pulumi.Input[Sequence[Union['TaskDefinitionHostVolumeArgs', 'TaskDefinitionEfsVolumeArgs']]]] = None):\n")
	assert.Contains(t, inputs, "                 target_group: Optional[pulumi.Input['pulumi_aws.lb.TargetGroup']] = None):\n")
	assert.Contains(t, inputs, "        if essential is None:\n            essential = True\n")
	assert.Contains(t, inputs, "        if protocol is None:\n            protocol = 'tcp'\n")

	// Members of the volumes union carry a synthesized discriminant.
	assert.Contains(t, inputs, "        pulumi.set(__self__, \"kind\", 'TaskDefinitionHostVolume')\n")
	assert.Contains(t, inputs, "        pulumi.set(__self__, \"kind\", 'TaskDefinitionEfsVolume')\n")

	ec2 := test.File(t, files, "pulumi_awsx/ec2/_inputs.py")
	assert.Contains(t, ec2, "from ._enums import *\n")
	assert.Contains(t, ec2, "                 strategy: pulumi.Input[NatGatewayStrategy],\n")
	assert.Contains(t, ec2, "    @property\n    @pulumi.getter\n    def strategy(self) -> pulumi.Input[NatGatewayStrategy]:\n")

	// Nothing in the package is reachable from an output property.
	for _, p := range files.SortedPaths() {
		assert.False(t, strings.HasSuffix(p, "/outputs.py"), p)
	}
}

func TestEnums(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "awsx.json")
	enums := test.File(t, files, "pulumi_awsx/ec2/_enums.py")

	assert.Contains(t, enums, "from enum import Enum\n\n__all__ = [\n    'NatGatewayStrategy',\n    'SubnetType',\n]\n")
	assert.Contains(t, enums, "class NatGatewayStrategy(str, Enum):\n    \"\"\"\n    A strategy for creating NAT Gateways for private subnets within a VPC.\n    \"\"\"\n")
	assert.Contains(t, enums, "    ONE_PER_AZ = \"OnePerAz\"\n    \"\"\"\n    Create a NAT Gateway in each availability zone.\n    \"\"\"\n")
	assert.Contains(t, enums, "    PUBLIC = \"Public\"\n")

	ecr := test.File(t, files, "pulumi_awsx/ecr/_enums.py")
	assert.Contains(t, ecr, "    ANY = \"any\"\n")
}

func TestPackageMetadata(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "awsx.json")

	var doc pyproject.Schema
	_, err := toml.Decode(test.File(t, files, "pyproject.toml"), &doc)
	require.NoError(t, err)
	require.NotNil(t, doc.Project)
	assert.Equal(t, "pulumi_awsx", doc.Project.Name)
	assert.Equal(t, "0.0.0", doc.Project.Version)
	assert.Equal(t, "Pulumi Amazon Web Services (AWS) AWSX Components.", doc.Project.Description)
	assert.Equal(t, ">=3.8", doc.Project.RequiresPython)
	assert.Equal(t, []string{
		"parver>=0.2.1",
		"pulumi>=3.0.0,<4.0.0",
		"pulumi-aws>=5.16.2,<6.0.0",
		"semver>=2.8.1",
	}, doc.Project.Dependencies)
	assert.Equal(t, "https://github.com/pulumi/pulumi-awsx", doc.Project.URLs["Repository"])
	assert.Equal(t, "Apache-2.0", doc.Project.License.Text)
	assert.Equal(t, "setuptools.build_meta", doc.BuildSystem.BuildBackend)
	assert.Equal(t, []string{"py.typed", "pulumi-plugin.json"}, doc.Tool.Setuptools.PackageData["pulumi_awsx"])

	var plugin map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(test.File(t, files, "pulumi_awsx/pulumi-plugin.json")), &plugin))
	assert.Equal(t, map[string]interface{}{
		"resource": true,
		"name":     "awsx",
		"version":  "${PLUGIN_VERSION}",
	}, plugin)

	assert.Equal(t, "Pulumi Amazon Web Services (AWS) AWSX Components.\n", test.File(t, files, "README.md"))
	assert.Equal(t, "", test.File(t, files, "pulumi_awsx/py.typed"))

	utilities := test.File(t, files, "pulumi_awsx/_utilities.py")
	assert.Contains(t, utilities, "def get_env_bool(*args):")
	assert.Contains(t, utilities, "def register(resource_modules):")
	assert.Contains(t, utilities, "def lazy_import(fullname):")
}

func TestRespectSchemaVersion(t *testing.T) {
	t.Parallel()

	pkg := test.MustLoadSchema(t, "awsx.json")
	pkg.Language["python"]["respectSchemaVersion"] = true
	e := NewEmitter()
	result, err := e.Emit(context.Background(), pkg, e.NewContext(pkg, nil))
	require.NoError(t, err)

	assert.Contains(t, test.File(t, result.Files, "pyproject.toml"), `version = "1.0.0"`)
	assert.Contains(t, test.File(t, result.Files, "pulumi_awsx/pulumi-plugin.json"), `"version": "1.0.0"`)
}

func TestPulumiRequirement(t *testing.T) {
	t.Parallel()

	cases := []struct {
		requirement string
		err         string
	}{
		{requirement: ">=3.42.0,<4.0.0"},
		{requirement: ">=3.1.0a4,<4.0.0"},
		{requirement: "3.42.0", err: "invalid requirement specifier"},
		{requirement: ">=2.0.0,<3.0.0", err: "lower version bound must be at least 3.0.0"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.requirement, func(t *testing.T) {
			t.Parallel()

			pkg := test.MustLoadSchema(t, "awsx.json")
			info := PackageInfo{Requires: map[string]string{"pulumi": c.requirement}}
			deps, err := calculateDependencies(pkg, info)
			if c.err != "" {
				assert.ErrorContains(t, err, c.err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, deps, "pulumi"+c.requirement)
			assert.Contains(t, deps, "pulumi-aws>=5.16.2,<6.0.0")
		})
	}
}

func TestBadLanguageSettings(t *testing.T) {
	t.Parallel()

	pkg := test.MustLoadSchema(t, "awsx.json")
	pkg.Language["python"]["requires"] = "pulumi-aws"
	e := NewEmitter()
	_, err := e.Emit(context.Background(), pkg, e.NewContext(pkg, nil))
	assert.ErrorContains(t, err, "decoding python language settings")
}

func TestPackageNameOverride(t *testing.T) {
	t.Parallel()

	pkg := test.MustLoadSchema(t, "awsx.json")
	pkg.Language["python"]["packageName"] = "awsx_sdk"
	e := NewEmitter()
	ectx := e.NewContext(pkg, nil)
	result, err := e.Emit(context.Background(), pkg, ectx)
	require.NoError(t, err)

	assert.Equal(t, "awsx_sdk/ec2", ectx.Naming.ModulePath("ec2"))
	assert.Contains(t, result.Files, "awsx_sdk/ec2/vpc.py")
	assert.Contains(t, test.File(t, result.Files, "awsx_sdk/__init__.py"), `"fqn": "awsx_sdk.ec2"`)
}

func TestDiscriminatedUnions(t *testing.T) {
	t.Parallel()

	files := test.MustEmit(t, NewEmitter(), "discriminated.json")
	inputs := test.File(t, files, "pulumi_shapes/_inputs.py")

	// Square already declares "kind", so the synthesized discriminant is "kind2".
	assert.Contains(t, inputs, "class CircleArgs:\n    def __init__(__self__, *,\n"+
		"                 radius: pulumi.Input[float],\n"+
		"                 shape: pulumi.Input[str],\n"+
		"                 kind2: Optional[pulumi.Input[str]] = None):\n")
	assert.Contains(t, inputs, "        pulumi.set(__self__, \"kind2\", 'Circle')\n")
	assert.Contains(t, inputs, "        pulumi.set(__self__, \"shape\", 'circle')\n")
	assert.Contains(t, inputs, "        pulumi.set(__self__, \"kind2\", 'Square')\n")

	canvas := test.File(t, files, "pulumi_shapes/canvas.py")
	assert.Contains(t, canvas, "from . import _utilities\n")
	assert.Contains(t, canvas, "from ._inputs import *\n")
	assert.Contains(t, canvas, "background: Optional[pulumi.Input[Union['CircleArgs', 'SquareArgs']]] = None")
	assert.Contains(t, canvas, "shape: pulumi.Input[Union['CircleArgs', 'SquareArgs']]")
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
	assert.Contains(t, test.File(t, files, "pulumi_unions/filter.py"), "rule: pulumi.Input[Union['RuleArgs', str]]")

	files = test.MustEmit(t, NewEmitter(), "asset.json")
	assert.Contains(t, test.File(t, files, "pulumi_assets/bundle.py"), "code: pulumi.Input[pulumi.Archive]")
}

func TestOverlays(t *testing.T) {
	t.Parallel()

	result, err := test.Emit(t, NewEmitter(), "overlay.json")
	require.NoError(t, err)

	assert.Equal(t, []string{"pulumi_awsx/cloudtrail/trail.py"}, result.Overlays)
	assert.NotContains(t, result.Files, "pulumi_awsx/cloudtrail/trail.py")
	assert.Contains(t, result.Tokens, "awsx:cloudtrail:Trail")

	init := test.File(t, result.Files, "pulumi_awsx/cloudtrail/__init__.py")
	assert.Contains(t, init, "from .trail import *\n")

	root := test.File(t, result.Files, "pulumi_awsx/__init__.py")
	assert.Contains(t, root, `"awsx:cloudtrail:Trail": "Trail"`)
}

func TestSuppliedOverlayPathsAreSkipped(t *testing.T) {
	t.Parallel()

	pkg := test.MustLoadSchema(t, "awsx.json")
	e := NewEmitter()
	ectx := e.NewContext(pkg, codegen.NewStringSet("pulumi_awsx/ec2/vpc.py", "pulumi_awsx/ec2/extras.py"))
	result, err := e.Emit(context.Background(), pkg, ectx)
	require.NoError(t, err)

	assert.NotContains(t, result.Files, "pulumi_awsx/ec2/vpc.py")
	assert.Contains(t, result.Files, "pulumi_awsx/ec2/default_vpc.py")

	init := test.File(t, result.Files, "pulumi_awsx/ec2/__init__.py")
	assert.Contains(t, init, "from .extras import *\n")
	assert.Contains(t, init, "from .vpc import *\n")
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
