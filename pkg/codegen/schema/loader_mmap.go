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

//go:build !js
// +build !js

package schema

import (
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/golang/glog"
)

func mmapSchemaBytes(path string) ([]byte, func(), bool) {
	schemaFile, err := os.OpenFile(path, os.O_RDONLY, 0o644)
	if err != nil {
		return nil, nil, false
	}

	stat, err := schemaFile.Stat()
	if err != nil || stat.Size() == 0 {
		schemaFile.Close()
		return nil, nil, false
	}

	schemaMmap, err := mmap.Map(schemaFile, mmap.RDONLY, 0)
	if err != nil {
		schemaFile.Close()
		return nil, nil, false
	}

	release := func() {
		if err := schemaMmap.Unmap(); err != nil {
			glog.Warningf("unmapping %s: %v", path, err)
		}
		schemaFile.Close()
	}
	return schemaMmap, release, true
}
