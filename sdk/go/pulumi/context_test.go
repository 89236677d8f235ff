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
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/blang/semver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testShape interface {
	IsTestShape()
}

type testCircle struct {
	Kind   string  `pulumi:"kind"`
	Radius float64 `pulumi:"radius"`
}

func (testCircle) IsTestShape() {}

type testSquare struct {
	Kind string `pulumi:"kind"`
	Side int    `pulumi:"side"`
}

func (testSquare) IsTestShape() {}

func init() {
	RegisterUnion(reflect.TypeOf((*testShape)(nil)).Elem(), "kind", map[string]reflect.Type{
		"circle": reflect.TypeOf(testCircle{}),
		"square": reflect.TypeOf(testSquare{}),
	})
}

type testSubnetType string

type testSubnetSpec struct {
	Type     testSubnetType `pulumi:"type"`
	CidrMask *int           `pulumi:"cidrMask"`
}

type testVpcArgs struct {
	CidrBlock   *string           `pulumi:"cidrBlock"`
	SubnetSpecs []testSubnetSpec  `pulumi:"subnetSpecs"`
	Tags        map[string]string `pulumi:"tags"`
}

type testVpc struct {
	CustomResourceState

	CidrBlock Output[string]    `pulumi:"cidrBlock"`
	SubnetIds Output[[]string]  `pulumi:"subnetIds"`
	Shape     Output[testShape] `pulumi:"shape"`
	Missing   Output[*string]   `pulumi:"missing"`
}

type testComponent struct {
	ResourceState

	Endpoint Output[string] `pulumi:"endpoint"`
}

type testMocks struct {
	mu      sync.Mutex
	created []string
}

func (m *testMocks) NewResource(typ, name string, inputs map[string]interface{},
	id ID,
) (ID, map[string]interface{}, error) {
	m.mu.Lock()
	m.created = append(m.created, typ+"::"+name)
	m.mu.Unlock()

	if name == "broken" {
		return "", nil, errors.New("provider exploded")
	}

	outputs := map[string]interface{}{}
	for k, v := range inputs {
		outputs[k] = v
	}
	switch typ {
	case "awsx:ec2:Vpc":
		outputs["subnetIds"] = []interface{}{"subnet-a", "subnet-b"}
		outputs["shape"] = map[string]interface{}{"kind": "circle", "radius": 2.5}
	case "awsx:lb:ApplicationLoadBalancer":
		outputs["endpoint"] = "lb.example.com"
	}
	if id == "" {
		id = ID(name + "_id")
	}
	return id, outputs, nil
}

func (m *testMocks) Call(token string, args map[string]interface{}) (map[string]interface{}, error) {
	switch token {
	case "awsx:ec2:getDefaultVpc":
		return map[string]interface{}{
			"vpcId":            "vpc-123",
			"publicSubnetIds":  []interface{}{"subnet-1"},
			"privateSubnetIds": []interface{}{},
		}, nil
	case "awsx:ec2:echo":
		return args, nil
	default:
		return nil, fmt.Errorf("unknown function %s", token)
	}
}

func newTestContext(t *testing.T) (*Context, *testMocks) {
	mocks := &testMocks{}
	var info RunInfo
	WithMocks("project", "stack", mocks)(&info)
	ctx, err := NewContext(context.Background(), info)
	require.NoError(t, err)
	ctx.modules = newModuleRegistry()
	return ctx, mocks
}

func strPtr(s string) *string {
	return &s
}

func TestNewContextRequiresMonitor(t *testing.T) {
	t.Parallel()

	_, err := NewContext(context.Background(), RunInfo{Project: "p", Stack: "s"})
	assert.EqualError(t, err, "no resource monitor configured")
}

func TestRegisterResource(t *testing.T) {
	t.Parallel()

	ctx, _ := newTestContext(t)
	assert.Equal(t, "project", ctx.Project())
	assert.Equal(t, "stack", ctx.Stack())

	var vpc testVpc
	err := ctx.RegisterResource("awsx:ec2:Vpc", "main", &testVpcArgs{CidrBlock: strPtr("10.0.0.0/16")}, &vpc)
	require.NoError(t, err)
	require.NoError(t, ctx.Wait())

	bg := context.Background()
	urn, err := vpc.URN().Await(bg)
	require.NoError(t, err)
	assert.Equal(t, URN("urn:pulumi:stack::project::awsx:ec2:Vpc::main"), urn)

	id, err := vpc.ID().Await(bg)
	require.NoError(t, err)
	assert.Equal(t, ID("main_id"), id)

	cidr, err := vpc.CidrBlock.Await(bg)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.0/16", cidr)

	subnets, err := vpc.SubnetIds.Await(bg)
	require.NoError(t, err)
	assert.Equal(t, []string{"subnet-a", "subnet-b"}, subnets)

	shape, err := vpc.Shape.Await(bg)
	require.NoError(t, err)
	assert.Equal(t, testCircle{Kind: "circle", Radius: 2.5}, shape)

	missing, err := vpc.Missing.Await(bg)
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.Equal(t, "awsx:ec2:Vpc", vpc.Type())
	assert.Equal(t, "main", vpc.Name())
}

func TestRegisterRemoteComponentResource(t *testing.T) {
	t.Parallel()

	ctx, _ := newTestContext(t)
	var lb testComponent
	require.NoError(t, ctx.RegisterRemoteComponentResource("awsx:lb:ApplicationLoadBalancer", "lb", nil, &lb))
	require.NoError(t, ctx.Wait())

	endpoint, err := lb.Endpoint.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "lb.example.com", endpoint)
}

func TestRegisterResourceValidation(t *testing.T) {
	t.Parallel()

	ctx, _ := newTestContext(t)
	var vpc testVpc
	assert.EqualError(t, ctx.RegisterResource("", "main", nil, &vpc), "resource type argument cannot be empty")
	assert.EqualError(t, ctx.RegisterResource("awsx:ec2:Vpc", "", nil, &vpc),
		"resource name argument (for URN creation) cannot be empty")
	assert.EqualError(t, ctx.ReadResource("awsx:ec2:Vpc", "main", "", nil, &vpc),
		"resource ID is required for lookup and cannot be empty")

	err := ctx.RegisterResource("awsx:ec2:Vpc", "main", 42, &vpc)
	assert.ErrorContains(t, err, "resource arguments must be a struct or map, got int")
}

func TestRegisterResourceFailure(t *testing.T) {
	t.Parallel()

	ctx, _ := newTestContext(t)
	var broken, fine testVpc
	require.NoError(t, ctx.RegisterResource("awsx:ec2:Vpc", "broken", nil, &broken))
	require.NoError(t, ctx.RegisterResource("awsx:ec2:Vpc", "fine", nil, &fine))

	err := ctx.Wait()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registering awsx:ec2:Vpc broken: provider exploded")

	_, err = broken.CidrBlock.Await(context.Background())
	assert.ErrorContains(t, err, "provider exploded")
	_, err = broken.ID().Await(context.Background())
	assert.ErrorContains(t, err, "provider exploded")

	_, err = fine.URN().Await(context.Background())
	assert.NoError(t, err)
}

func TestReadResource(t *testing.T) {
	t.Parallel()

	ctx, _ := newTestContext(t)
	var vpc testVpc
	require.NoError(t, ctx.ReadResource("awsx:ec2:Vpc", "existing", "vpc-0abc", nil, &vpc))
	require.NoError(t, ctx.Wait())

	id, err := vpc.ID().Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ID("vpc-0abc"), id)
}

type recordingMonitor struct {
	ResourceMonitor

	mu       sync.Mutex
	requests map[string]RegisterResourceRequest
}

func (m *recordingMonitor) RegisterResource(ctx context.Context,
	req RegisterResourceRequest,
) (RegisterResourceResponse, error) {
	m.mu.Lock()
	m.requests[req.Name] = req
	m.mu.Unlock()
	return m.ResourceMonitor.RegisterResource(ctx, req)
}

func TestParentAndDependencies(t *testing.T) {
	t.Parallel()

	monitor := &recordingMonitor{
		ResourceMonitor: newMockMonitor("project", "stack", &testMocks{}),
		requests:        map[string]RegisterResourceRequest{},
	}
	ctx, err := NewContext(context.Background(), RunInfo{Project: "project", Stack: "stack", Monitor: monitor})
	require.NoError(t, err)

	var lb testComponent
	var vpc, child testVpc
	require.NoError(t, ctx.RegisterRemoteComponentResource("awsx:lb:ApplicationLoadBalancer", "lb", nil, &lb))
	require.NoError(t, ctx.RegisterResource("awsx:ec2:Vpc", "vpc", nil, &vpc))
	require.NoError(t, ctx.RegisterResource("awsx:ec2:Vpc", "child", &testVpcArgs{
		SubnetSpecs: []testSubnetSpec{{Type: "Public"}},
		Tags:        map[string]string{"env": "test"},
	}, &child, Parent(&lb), DependsOn([]Resource{&vpc}), Version("2.0.0")))
	require.NoError(t, ctx.Wait())

	req := monitor.requests["child"]
	assert.Equal(t, URN("urn:pulumi:stack::project::awsx:lb:ApplicationLoadBalancer::lb"), req.Parent)
	assert.Equal(t, []URN{"urn:pulumi:stack::project::awsx:ec2:Vpc::vpc"}, req.Dependencies)
	assert.Equal(t, "2.0.0", req.Version)
	assert.True(t, req.Custom)
	assert.False(t, req.Remote)
	assert.Equal(t, map[string]interface{}{
		"subnetSpecs": []interface{}{map[string]interface{}{"type": "Public"}},
		"tags":        map[string]interface{}{"env": "test"},
	}, req.Inputs)

	assert.True(t, monitor.requests["lb"].Remote)
	assert.False(t, monitor.requests["lb"].Custom)
}

type getDefaultVpcResult struct {
	VpcID            string   `pulumi:"vpcId"`
	PublicSubnetIds  []string `pulumi:"publicSubnetIds"`
	PrivateSubnetIds []string `pulumi:"privateSubnetIds"`
}

func TestInvoke(t *testing.T) {
	t.Parallel()

	ctx, _ := newTestContext(t)
	var rv getDefaultVpcResult
	require.NoError(t, ctx.Invoke("awsx:ec2:getDefaultVpc", nil, &rv))
	assert.Equal(t, getDefaultVpcResult{
		VpcID:            "vpc-123",
		PublicSubnetIds:  []string{"subnet-1"},
		PrivateSubnetIds: []string{},
	}, rv)

	var echoed testVpcArgs
	require.NoError(t, ctx.Invoke("awsx:ec2:echo", &testVpcArgs{CidrBlock: strPtr("10.1.0.0/16")}, &echoed))
	require.NotNil(t, echoed.CidrBlock)
	assert.Equal(t, "10.1.0.0/16", *echoed.CidrBlock)

	err := ctx.Invoke("awsx:ec2:missing", nil, &rv)
	assert.EqualError(t, err, "invoke of awsx:ec2:missing failed: unknown function awsx:ec2:missing")

	assert.EqualError(t, ctx.Invoke("", nil, nil), "invoke token must not be empty")
}

func TestRunErr(t *testing.T) {
	t.Parallel()

	mocks := &testMocks{}
	var vpc testVpc
	err := RunErr(func(ctx *Context) error {
		return ctx.RegisterResource("awsx:ec2:Vpc", "main", nil, &vpc)
	}, WithMocks("project", "stack", mocks))
	require.NoError(t, err)
	assert.Equal(t, []string{"awsx:ec2:Vpc::main"}, mocks.created)
	assert.False(t, vpc.URN().IsPending())

	err = RunErr(func(ctx *Context) error {
		var broken testVpc
		if err := ctx.RegisterResource("awsx:ec2:Vpc", "broken", nil, &broken); err != nil {
			return err
		}
		return errors.New("body failed")
	}, WithMocks("project", "stack", mocks))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "body failed")
	assert.Contains(t, err.Error(), "provider exploded")

	err = RunErr(func(*Context) error { return nil })
	assert.EqualError(t, err, "no resource monitor configured")
}

type testModule struct {
	version semver.Version
}

func (m *testModule) Version() semver.Version {
	return m.version
}

func (m *testModule) Construct(ctx *Context, name, typ, urn string) (r Resource, err error) {
	switch typ {
	case "awsx:ec2:Vpc":
		r = &testVpc{}
	default:
		return nil, &UnknownResourceTypeError{Token: typ}
	}

	err = ctx.RegisterResource(typ, name, nil, r, URN_(urn))
	return
}
