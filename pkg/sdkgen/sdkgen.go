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

// Package sdkgen drives SDK generation: it loads a schema, runs the language emitters in parallel, merges overlays,
// and writes the resulting trees.
package sdkgen

import (
	"context"
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/golang/glog"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/pulumi/pulumi-sdkgen/pkg/codegen"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/dotnet"
	gogen "github.com/pulumi/pulumi-sdkgen/pkg/codegen/go"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/nodejs"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/output"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/overlay"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/python"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/schema"
)

// Languages lists every supported target language.
var Languages = []string{"dotnet", "go", "nodejs", "python"}

// NewEmitter returns the emitter of a language.
func NewEmitter(language string) (codegen.Emitter, error) {
	switch language {
	case "dotnet":
		return dotnet.NewEmitter(), nil
	case "go":
		return gogen.NewEmitter(), nil
	case "nodejs":
		return nodejs.NewEmitter(), nil
	case "python":
		return python.NewEmitter(), nil
	default:
		return nil, fmt.Errorf("unknown language %q; expected one of %v", language, Languages)
	}
}

// LoadOptions configures LoadPackage.
type LoadOptions struct {
	// Strict rejects unknown schema keys.
	Strict bool
	// DepsDir, if set, holds the schemas of declared dependencies as <name>/v<version>/schema.json.
	DepsDir string
}

// LoadPackage reads and binds a schema document. Warnings are logged.
func LoadPackage(fs afero.Fs, path string, opts LoadOptions) (*schema.Package, error) {
	spec, diags, err := schema.ReadSpec(fs, path, schema.LoadOptions{Strict: opts.Strict})
	logDiagnostics(diags)
	if err != nil {
		return nil, err
	}
	if glog.V(9) {
		glog.Infof("schema %s:\n%s", path, spew.Sdump(spec))
	}

	var loader schema.Loader
	if opts.DepsDir != "" {
		loader = schema.NewDirLoader(fs, opts.DepsDir, schema.LoadOptions{Strict: opts.Strict})
	}
	pkg, diags, err := schema.BindSpec(*spec, schema.BindOptions{Loader: loader})
	logDiagnostics(diags)
	if err != nil {
		return nil, err
	}
	return pkg, nil
}

func logDiagnostics(diags hcl.Diagnostics) {
	for _, d := range diags {
		if d.Severity == hcl.DiagWarning {
			glog.Warningf("%s", d.Summary)
		}
	}
}

// Options configures Generate.
type Options struct {
	// Fs is the filesystem that holds overlays and receives output.
	Fs afero.Fs
	// Languages selects the target languages. All languages are generated if it is empty.
	Languages []string
	// Out is the output root. Each language is written to <Out>/<language>.
	Out string
	// Overlays is the overlay root. Each language's overlays live in <Overlays>/<language>.
	Overlays string
	// Preserve holds globs of paths that are kept as they are on disk.
	Preserve []string
	// Check compares the output with the trees on disk instead of writing them.
	Check bool
	// Parallelism bounds the number of emitters running at once. Zero means no bound.
	Parallelism int
}

// LanguageReport is the outcome of one language.
type LanguageReport struct {
	// Language is the target language.
	Language string
	// Tokens are the resource tokens the language binds for hydration.
	Tokens []string
	// Write summarizes the changes on disk. It is nil in check mode and when the language failed.
	Write *output.WriteResult
	// Err is the language's failure: an *codegen.UnsupportedFeatureError, or an *output.DriftError in check mode.
	Err error
}

// Report is the outcome of Generate.
type Report struct {
	// Languages are sorted by language.
	Languages []*LanguageReport
}

// Err combines the failures of all languages.
func (r *Report) Err() error {
	var errs *multierror.Error
	for _, l := range r.Languages {
		if l.Err != nil {
			errs = multierror.Append(errs, l.Err)
		}
	}
	return errs.ErrorOrNil()
}

type slot struct {
	report   *LanguageReport
	emitter  codegen.Emitter
	overlays codegen.Fs
	result   *codegen.EmitResult
}

// Generate emits, merges and writes the SDKs of pkg.
//
// A language whose emitter fails is reported in its LanguageReport and does not stop the others. The returned error
// is reserved for failures of the whole run: overlay conflicts, cancellation, and I/O errors. Nothing is written
// unless every language's overlays merge cleanly.
func Generate(ctx context.Context, pkg *schema.Package, opts Options) (*Report, error) {
	languages := opts.Languages
	if len(languages) == 0 {
		languages = Languages
	}
	languages = dedupe(languages)

	slots := make([]*slot, len(languages))
	report := &Report{Languages: make([]*LanguageReport, len(languages))}
	for i, lang := range languages {
		emitter, err := NewEmitter(lang)
		if err != nil {
			return nil, err
		}
		overlays, err := overlay.Load(opts.Fs, opts.Overlays, lang)
		if err != nil {
			return nil, err
		}
		slots[i] = &slot{report: &LanguageReport{Language: lang}, emitter: emitter, overlays: overlays}
		report.Languages[i] = slots[i].report
	}

	// Emit. Each language has its own slot, so one language's failure leaves the others alone.
	g, gctx := errgroup.WithContext(ctx)
	if opts.Parallelism > 0 {
		g.SetLimit(opts.Parallelism)
	}
	for _, s := range slots {
		s := s
		g.Go(func() error {
			ectx := s.emitter.NewContext(pkg, s.overlays.Paths())
			result, err := s.emitter.Emit(gctx, pkg, ectx)
			switch {
			case err == nil:
				s.result = result
				s.report.Tokens = result.Tokens
				glog.V(1).Infof("%s: emitted %d files", s.report.Language, len(result.Files))
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				return err
			default:
				glog.V(1).Infof("%s: %v", s.report.Language, err)
				s.report.Err = err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	emitted := make([]*slot, 0, len(slots))
	for _, s := range slots {
		if s.result != nil {
			emitted = append(emitted, s)
		}
	}

	// Join: every language must agree before anything is written.
	results := make([]overlay.LanguageResult, len(emitted))
	for i, s := range emitted {
		results[i] = overlay.LanguageResult{
			Language:         s.report.Language,
			Tokens:           s.result.Tokens,
			ExpectedOverlays: s.result.Overlays,
			OverlayFiles:     s.overlays,
		}
	}
	if err := overlay.CheckConsistency(results); err != nil {
		return nil, err
	}

	writer := output.NewWriter(opts.Fs, opts.Out, codegen.Tool)
	trees := make([]codegen.Fs, len(emitted))
	for i, s := range emitted {
		previous, err := writer.Read(s.report.Language)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", writer.Dir(s.report.Language), err)
		}
		trees[i], err = overlay.Merge(ctx, overlay.MergeInput{
			Language:     s.report.Language,
			Generated:    s.result.Files,
			OverlayFiles: s.overlays,
			Preserve:     opts.Preserve,
			Previous:     previous,
		})
		if err != nil {
			return nil, err
		}
	}

	// Commit, one language at a time.
	for i, s := range emitted {
		lang := s.report.Language
		handwritten := output.Handwritten(s.overlays.Paths())
		if opts.Check {
			err := writer.Check(ctx, lang, trees[i], handwritten)
			var drift *output.DriftError
			if errors.As(err, &drift) {
				s.report.Err = drift
			} else if err != nil {
				return nil, err
			}
			continue
		}

		result, err := writer.Write(ctx, lang, trees[i], handwritten)
		if err != nil {
			return nil, fmt.Errorf("writing %s: %w", lang, err)
		}
		s.report.Write = result
		glog.V(1).Infof("%s: %d written, %d unchanged, %d removed",
			lang, len(result.Written), len(result.Unchanged), len(result.Removed))
	}
	return report, nil
}

func dedupe(languages []string) []string {
	return codegen.NewStringSet(languages...).SortedValues()
}
