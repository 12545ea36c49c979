package recipe

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultPackage(t *testing.T) {
	pkg := DefaultPackage()
	if pkg.Name != "sicm-low" {
		t.Fatalf("unexpected name %q", pkg.Name)
	}
	src, err := pkg.Source()
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if src != "https://github.com/lanl/SICM.git" {
		t.Fatalf("unexpected source %q", src)
	}
	if len(pkg.Versions) != 1 || pkg.Versions[0].Name != "master" {
		t.Fatalf("unexpected versions %+v", pkg.Versions)
	}
	if len(pkg.Dependencies) != 2 {
		t.Fatalf("expected 2 dependencies, got %+v", pkg.Dependencies)
	}
	je := pkg.Dependencies[0]
	if je.Name != "jemalloc" || je.Qualifier != "+je" {
		t.Fatalf("unexpected jemalloc dependency %+v", je)
	}
	if pkg.Dependencies[1].Qualifier != "" {
		t.Fatalf("numactl should have no qualifier: %+v", pkg.Dependencies[1])
	}
	if args := pkg.BuildArgs(); len(args) != 0 {
		t.Fatalf("expected no build args, got %v", args)
	}
}

func TestParseDependency(t *testing.T) {
	cases := map[string]Dependency{
		"numactl":          {Name: "numactl"},
		"jemalloc +je":     {Name: "jemalloc", Qualifier: "+je"},
		"numactl@2.0.14":   {Name: "numactl", Qualifier: "@2.0.14"},
		"llvm@9: ~clang":   {Name: "llvm", Qualifier: "@9: ~clang"},
		"  cmake@3.12:   ": {Name: "cmake", Qualifier: "@3.12:"},
	}
	for spec, want := range cases {
		got, err := ParseDependency(spec)
		if err != nil {
			t.Fatalf("%q: %v", spec, err)
		}
		if got != want {
			t.Fatalf("%q: got %+v, want %+v", spec, got, want)
		}
	}

	for _, bad := range []string{"", "   ", "@1.0"} {
		if _, err := ParseDependency(bad); err == nil {
			t.Fatalf("%q: expected error", bad)
		}
	}
}

func TestSource_LocalPathExpandsEnv(t *testing.T) {
	t.Setenv("SICM_DIR", "/opt/src/SICM")
	pkg := &Package{Name: "sicm-low", Path: "${SICM_DIR}/low", Versions: []Version{{Name: "develop"}}}

	src, err := pkg.Source()
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if src != "/opt/src/SICM/low" {
		t.Fatalf("unexpected source %q", src)
	}
}

func TestSource_UnsetVariable(t *testing.T) {
	os.Unsetenv("SICM_SOURCE_ROOT")
	pkg := &Package{Name: "sicm-low", Path: "$SICM_SOURCE_ROOT"}
	if _, err := pkg.Source(); err == nil {
		t.Fatalf("expected error for unset variable")
	}
}

func TestBuildArgs_ReturnsCopy(t *testing.T) {
	pkg := &Package{Args: []string{"-DSICM_BUILD_HIGH_LEVEL=OFF"}}
	args := pkg.BuildArgs()
	args[0] = "changed"
	if pkg.Args[0] != "-DSICM_BUILD_HIGH_LEVEL=OFF" {
		t.Fatalf("BuildArgs leaked internal slice")
	}
}

func TestLoadPackage_WithCommitAndMarshal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "package.yml")
	content := `
name: sicm-high
git: https://github.com/lanl/SICM.git
versions:
  - name: master
  - name: pinned
    commit: 0123abcd
dependencies:
  - jemalloc +je
  - llvm@6.0.0
args: [-DSICM_BUILD_HIGH_LEVEL=ON]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	pkg, err := LoadPackage(path)
	if err != nil {
		t.Fatalf("LoadPackage: %v", err)
	}
	if pkg.Versions[1].Commit != "0123abcd" {
		t.Fatalf("unexpected versions %+v", pkg.Versions)
	}
	if got := pkg.BuildArgs(); len(got) != 1 || got[0] != "-DSICM_BUILD_HIGH_LEVEL=ON" {
		t.Fatalf("unexpected args %v", got)
	}

	out, err := yaml.Marshal(pkg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(out), "- llvm@6.0.0") || !strings.Contains(string(out), "- jemalloc +je") {
		t.Fatalf("dependencies not rendered as specs:\n%s", out)
	}
}

func TestParsePackage_Validation(t *testing.T) {
	cases := []string{
		"git: x\nversions: [{name: master}]\n",
		"name: p\nversions: [{name: master}]\n",
		"name: p\ngit: x\n",
		"name: p\ngit: x\nversions: [{commit: abc}]\n",
	}
	for _, c := range cases {
		if _, err := ParsePackage([]byte(c)); err == nil {
			t.Fatalf("expected validation error for %q", c)
		}
	}
}
