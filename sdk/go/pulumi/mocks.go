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
	"fmt"
	"sync"
)

// MockResourceMonitor supplies the results of resource registrations and invokes for programs run under test.
type MockResourceMonitor interface {
	Call(token string, args map[string]interface{}) (map[string]interface{}, error)
	NewResource(typeToken, name string, inputs map[string]interface{}, id ID) (ID, map[string]interface{}, error)
}

// WithMocks runs the program against mocks rather than an engine.
func WithMocks(project, stack string, mocks MockResourceMonitor) RunOption {
	return func(info *RunInfo) {
		info.Project, info.Stack = project, stack
		info.Monitor = newMockMonitor(project, stack, mocks)
	}
}

type mockResource struct {
	id      ID
	outputs map[string]interface{}
}

type mockMonitor struct {
	project string
	stack   string
	mocks   MockResourceMonitor

	mu        sync.Mutex
	resources map[URN]mockResource
}

func newMockMonitor(project, stack string, mocks MockResourceMonitor) *mockMonitor {
	return &mockMonitor{
		project:   project,
		stack:     stack,
		mocks:     mocks,
		resources: map[URN]mockResource{},
	}
}

func (m *mockMonitor) newURN(typ, name string) URN {
	return URN(fmt.Sprintf("urn:pulumi:%s::%s::%s::%s", m.stack, m.project, typ, name))
}

func (m *mockMonitor) RegisterResource(ctx context.Context,
	req RegisterResourceRequest,
) (RegisterResourceResponse, error) {
	if req.URN != "" {
		m.mu.Lock()
		defer m.mu.Unlock()
		res, ok := m.resources[req.URN]
		if !ok {
			return RegisterResourceResponse{}, fmt.Errorf("resource %s not found", req.URN)
		}
		return RegisterResourceResponse{URN: req.URN, ID: res.id, Outputs: res.outputs}, nil
	}

	id, outputs, err := m.mocks.NewResource(req.Type, req.Name, req.Inputs, req.ID)
	if err != nil {
		return RegisterResourceResponse{}, err
	}
	urn := m.newURN(req.Type, req.Name)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.resources[urn] = mockResource{id: id, outputs: outputs}
	return RegisterResourceResponse{URN: urn, ID: id, Outputs: outputs}, nil
}

func (m *mockMonitor) Invoke(ctx context.Context, req InvokeRequest) (map[string]interface{}, error) {
	return m.mocks.Call(req.Token, req.Args)
}
