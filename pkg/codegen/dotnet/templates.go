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

package dotnet

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/pulumi/pulumi-sdkgen/pkg/codegen"
)

var templateFuncs = template.FuncMap{
	"xml": func(s string) (string, error) {
		var b strings.Builder
		if err := xml.EscapeText(&b, []byte(s)); err != nil {
			return "", err
		}
		return b.String(), nil
	},
}

var utilitiesTemplate = template.Must(template.New("Utilities.cs").Parse(`// *** WARNING: this file was generated by {{ .Tool }}. ***
// *** Do not edit by hand unless you're certain you know what you are doing! ***

namespace {{ .Namespace }}
{
    static class Utilities
    {
        public static string? GetEnv(params string[] names)
        {
            foreach (var n in names)
            {
                var value = global::System.Environment.GetEnvironmentVariable(n);
                if (value != null)
                {
                    return value;
                }
            }
            return null;
        }

        static string[] trueValues = { "1", "t", "T", "true", "TRUE", "True" };
        static string[] falseValues = { "0", "f", "F", "false", "FALSE", "False" };
        public static bool? GetEnvBoolean(params string[] names)
        {
            var s = GetEnv(names);
            if (s != null)
            {
                if (global::System.Array.IndexOf(trueValues, s) != -1)
                {
                    return true;
                }
                if (global::System.Array.IndexOf(falseValues, s) != -1)
                {
                    return false;
                }
            }
            return null;
        }

        public static int? GetEnvInt32(params string[] names) => int.TryParse(GetEnv(names), out int v) ? (int?)v : null;

        public static double? GetEnvDouble(params string[] names) => double.TryParse(GetEnv(names), out double v) ? (double?)v : null;

        [global::System.Obsolete("Please use WithDefaults instead")]
        public static global::Pulumi.InvokeOptions WithVersion(this global::Pulumi.InvokeOptions? options)
        {
            var dst = options ?? new global::Pulumi.InvokeOptions{};
            dst.Version = options?.Version ?? Version;
            return dst;
        }

        public static global::Pulumi.InvokeOptions WithDefaults(this global::Pulumi.InvokeOptions? src)
        {
            var dst = src ?? new global::Pulumi.InvokeOptions{};
            dst.Version = src?.Version ?? Version;
            return dst;
        }

        private readonly static string version;
        public static string Version => version;

        static Utilities()
        {
            var assembly = global::System.Reflection.IntrospectionExtensions.GetTypeInfo(typeof(Utilities)).Assembly;
            using var stream = assembly.GetManifestResourceStream("{{ .Namespace }}.version.txt");
            using var reader = new global::System.IO.StreamReader(stream ?? throw new global::System.NotSupportedException("Missing embedded version.txt file"));
            version = reader.ReadToEnd().Trim();
            var parts = version.Split("\n");
            if (parts.Length == 2)
            {
                // The first part is the provider name.
                version = parts[1].Trim();
            }
        }
    }

    internal sealed class {{ .AttributePrefix }}ResourceTypeAttribute : global::Pulumi.ResourceTypeAttribute
    {
        public {{ .AttributePrefix }}ResourceTypeAttribute(string type) : base(type, Utilities.Version)
        {
        }
    }

{{ .Extensions }}
}
`))

var projectTemplate = template.Must(template.New("csproj").Funcs(templateFuncs).Parse(`<Project Sdk="Microsoft.NET.Sdk">

  <PropertyGroup>
    <GeneratePackageOnBuild>true</GeneratePackageOnBuild>
    <Authors>{{ xml .Publisher }}</Authors>
    <Company>{{ xml .Publisher }}</Company>
    <Description>{{ xml .Description }}</Description>
    <PackageLicenseExpression>{{ xml .License }}</PackageLicenseExpression>
    <PackageProjectUrl>{{ xml .Homepage }}</PackageProjectUrl>
    <RepositoryUrl>{{ xml .Repository }}</RepositoryUrl>
    <PackageIcon>logo.png</PackageIcon>
{{- if .Version }}
    <Version>{{ .Version }}</Version>
{{- end }}

    <TargetFramework>{{ .TargetFramework }}</TargetFramework>
    <Nullable>enable</Nullable>
  </PropertyGroup>

  <PropertyGroup Condition="'$(Configuration)|$(Platform)'=='Debug|AnyCPU'">
    <GenerateDocumentationFile>true</GenerateDocumentationFile>
    <NoWarn>1701;1702;1591</NoWarn>
  </PropertyGroup>

  <PropertyGroup>
    <AllowedOutputExtensionsInPackageBuildOutputFolder>$(AllowedOutputExtensionsInPackageBuildOutputFolder);.pdb</AllowedOutputExtensionsInPackageBuildOutputFolder>
    <EmbedUntrackedSources>true</EmbedUntrackedSources>
    <PublishRepositoryUrl>true</PublishRepositoryUrl>
  </PropertyGroup>

  <PropertyGroup Condition="'$(GITHUB_ACTIONS)' == 'true'">
    <ContinuousIntegrationBuild>true</ContinuousIntegrationBuild>
  </PropertyGroup>

  <ItemGroup>
    <PackageReference Include="Microsoft.SourceLink.GitHub" Version="1.0.0" PrivateAssets="All" />
  </ItemGroup>

  <ItemGroup>
    <EmbeddedResource Include="version.txt" />
    <None Include="version.txt" Pack="True" PackagePath="content" />
  </ItemGroup>

  <ItemGroup>
    <EmbeddedResource Include="pulumi-plugin.json" />
    <None Include="pulumi-plugin.json" Pack="True" PackagePath="content" />
  </ItemGroup>

  <ItemGroup>
{{- range .PackageReferences }}
    <PackageReference Include="{{ xml .Name }}" Version="{{ xml .Version }}" />
{{- end }}
  </ItemGroup>

  <ItemGroup>
    <None Include="logo.png">
      <Pack>True</Pack>
      <PackagePath></PackagePath>
    </None>
  </ItemGroup>

</Project>
`))

type packageReference struct {
	Name    string
	Version string
}

// packageReferences pins the Pulumi SDK and the major version of every dependency. Explicit references in the
// language settings win.
func (g *generator) packageReferences() []packageReference {
	refs := map[string]string{"Pulumi": "3.*"}
	for _, dep := range g.pkg.Dependencies {
		if ns, ok := g.ectx.Imports[dep.Name]; ok {
			refs[ns] = fmt.Sprintf("%d.*", dep.Version.Major)
		}
	}
	for name, version := range g.info.PackageReferences {
		refs[name] = version
	}

	result := make([]packageReference, 0, len(refs))
	for name, version := range refs {
		result = append(result, packageReference{Name: name, Version: version})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

func (g *generator) genProjectFile() (string, error) {
	data := struct {
		Publisher, Description, License, Homepage, Repository string
		Version, TargetFramework                              string
		PackageReferences                                     []packageReference
	}{
		Publisher:         g.pkg.Publisher,
		Description:       g.pkg.Description,
		License:           g.pkg.License,
		Homepage:          g.pkg.Homepage,
		Repository:        g.pkg.Repository,
		TargetFramework:   g.info.TargetFramework,
		PackageReferences: g.packageReferences(),
	}
	if g.info.RespectSchemaVersion && g.pkg.Version != nil {
		data.Version = g.pkg.Version.String()
	}

	var b bytes.Buffer
	if err := projectTemplate.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (g *generator) genUtilities() (string, error) {
	data := struct {
		Tool, Namespace, AttributePrefix, Extensions string
	}{
		Tool:            g.ectx.Tool,
		Namespace:       g.namespace,
		AttributePrefix: g.attributePrefix(),
		Extensions:      codegen.PreserveRegion("//", codegen.ExtensionsRegion),
	}

	var b bytes.Buffer
	if err := utilitiesTemplate.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
