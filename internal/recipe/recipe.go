// Package recipe describes how the memory-allocation library exercised by the
// benchmarks is fetched and built. The descriptor is data for an external build
// orchestrator; nothing here runs a build.
package recipe

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"scaling-bench/internal/logging"

	"gopkg.in/yaml.v3"
)

//go:embed packages/sicm-low.yml
var defaultPackage []byte

type Package struct {
	Name         string       `yaml:"name"`
	Description  string       `yaml:"description,omitempty"`
	Homepage     string       `yaml:"homepage,omitempty"`
	Git          string       `yaml:"git,omitempty"`
	Path         string       `yaml:"path,omitempty"` // local checkout, may reference ${VAR}
	Versions     []Version    `yaml:"versions"`
	Dependencies []Dependency `yaml:"dependencies,omitempty"`
	Args         []string     `yaml:"args,omitempty"`
}

type Version struct {
	Name   string `yaml:"name"`
	Commit string `yaml:"commit,omitempty"`
}

// Dependency is a package name with an optional version or variant qualifier,
// written "jemalloc +je" or "numactl@2.0.14".
type Dependency struct {
	Name      string
	Qualifier string
}

var qualifierStart = regexp.MustCompile(`[\s@+~]`)

func ParseDependency(spec string) (Dependency, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Dependency{}, fmt.Errorf("empty dependency")
	}
	loc := qualifierStart.FindStringIndex(spec)
	if loc == nil {
		return Dependency{Name: spec}, nil
	}
	name := spec[:loc[0]]
	if name == "" {
		return Dependency{}, fmt.Errorf("dependency %q has no package name", spec)
	}
	return Dependency{Name: name, Qualifier: strings.TrimSpace(spec[loc[0]:])}, nil
}

func (d Dependency) String() string {
	if d.Qualifier == "" {
		return d.Name
	}
	if strings.HasPrefix(d.Qualifier, "@") {
		return d.Name + d.Qualifier
	}
	return d.Name + " " + d.Qualifier
}

func (d *Dependency) UnmarshalYAML(value *yaml.Node) error {
	var spec string
	if err := value.Decode(&spec); err != nil {
		return err
	}
	parsed, err := ParseDependency(spec)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Dependency) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// Source returns where the package is fetched from: the git remote when one
// is declared, otherwise the local path with ${VAR} references expanded.
func (p *Package) Source() (string, error) {
	if p.Git != "" {
		return p.Git, nil
	}
	if p.Path == "" {
		return "", fmt.Errorf("package %s: no source location", p.Name)
	}

	var missing []string
	expanded := os.Expand(p.Path, func(name string) string {
		v, ok := os.LookupEnv(name)
		if !ok {
			missing = append(missing, name)
		}
		return v
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("package %s: path references unset variables %v", p.Name, missing)
	}
	return expanded, nil
}

// BuildArgs returns the ordered configure flags passed to the build system.
func (p *Package) BuildArgs() []string {
	args := make([]string, len(p.Args))
	copy(args, p.Args)
	return args
}

func (p *Package) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("package name is required")
	}
	if p.Git == "" && p.Path == "" {
		return fmt.Errorf("package %s: one of git or path is required", p.Name)
	}
	if len(p.Versions) == 0 {
		return fmt.Errorf("package %s: at least one version is required", p.Name)
	}
	for i, v := range p.Versions {
		if v.Name == "" {
			return fmt.Errorf("package %s: version %d has no name", p.Name, i)
		}
	}
	return nil
}

func ParsePackage(data []byte) (*Package, error) {
	var pkg Package
	if err := yaml.Unmarshal(data, &pkg); err != nil {
		return nil, err
	}
	if err := pkg.Validate(); err != nil {
		return nil, err
	}
	return &pkg, nil
}

func LoadPackage(path string) (*Package, error) {
	logger := logging.GetLogger()

	data, err := os.ReadFile(path)
	if err != nil {
		logger.WithField("filepath", path).WithError(err).Error("Failed to read package descriptor")
		return nil, err
	}
	pkg, err := ParsePackage(data)
	if err != nil {
		return nil, fmt.Errorf("package descriptor %s: %w", path, err)
	}
	return pkg, nil
}

// DefaultPackage is the descriptor of the low-level SICM allocator library.
func DefaultPackage() *Package {
	pkg, err := ParsePackage(defaultPackage)
	if err != nil {
		panic(fmt.Sprintf("embedded package descriptor: %v", err))
	}
	return pkg
}
