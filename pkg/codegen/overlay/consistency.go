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

package overlay

import (
	"fmt"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/hashicorp/go-multierror"

	"github.com/pulumi/pulumi-sdkgen/pkg/codegen"
)

// LanguageResult is what CheckConsistency needs to know about one language that emitted successfully.
type LanguageResult struct {
	// Language is the target language.
	Language string
	// Tokens are the resource tokens bound by the language's registration table.
	Tokens []string
	// ExpectedOverlays are the paths the emitter left to overlays.
	ExpectedOverlays []string
	// OverlayFiles are the overlay files supplied for the language.
	OverlayFiles codegen.Fs
}

// CheckConsistency verifies that every language binds the same set of resource tokens and that every expected
// overlay file is present. All violations are reported.
func CheckConsistency(results []LanguageResult) error {
	sorted := make([]LanguageResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Language < sorted[j].Language
	})

	var errs *multierror.Error
	var reference mapset.Set[string]
	var referenceLanguage string
	for _, r := range sorted {
		tokens := mapset.NewThreadUnsafeSet(r.Tokens...)
		if reference == nil {
			reference, referenceLanguage = tokens, r.Language
		} else if !tokens.Equal(reference) {
			var parts []string
			if missing := reference.Difference(tokens); missing.Cardinality() > 0 {
				parts = append(parts, "missing "+joinSorted(missing))
			}
			if extra := tokens.Difference(reference); extra.Cardinality() > 0 {
				parts = append(parts, "extra "+joinSorted(extra))
			}
			errs = multierror.Append(errs, &OverlayConflictError{
				Language: r.Language,
				Reason: fmt.Sprintf("resource tokens differ from %s: %s",
					referenceLanguage, strings.Join(parts, "; ")),
			})
		}

		for _, p := range r.ExpectedOverlays {
			if _, ok := r.OverlayFiles[p]; !ok {
				errs = multierror.Append(errs, &OverlayConflictError{
					Language: r.Language,
					Path:     p,
					Reason:   "overlay resource has no overlay file",
				})
			}
		}
	}
	return errs.ErrorOrNil()
}

func joinSorted(s mapset.Set[string]) string {
	values := s.ToSlice()
	sort.Strings(values)
	return strings.Join(values, ", ")
}
