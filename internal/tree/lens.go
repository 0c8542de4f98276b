package tree

import (
	"fmt"
	"os"
	"path"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Lens maps a lens name to the files it parses, as glob patterns.
type Lens struct {
	Name string   `yaml:"lens"`
	Incl []string `yaml:"incl"`
	Excl []string `yaml:"excl,omitempty"`
}

// Registry holds the known lenses in priority order.
type Registry struct {
	Lenses []Lens `yaml:"lenses"`
}

// LoadRegistry loads a lens registry from a YAML file.
func LoadRegistry(file string) (*Registry, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read lens registry %s: %w", file, err)
	}

	var reg Registry

	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse lens registry %s: %w", file, err)
	}

	return &reg, nil
}

// DefaultRegistry returns the built-in lens table, covering the common
// system files. A registry file extends or replaces it.
func DefaultRegistry() *Registry {
	return &Registry{Lenses: []Lens{
		{Name: "Hosts.lns", Incl: []string{"/etc/hosts"}},
		{Name: "Fstab.lns", Incl: []string{"/etc/fstab"}},
		{Name: "Passwd.lns", Incl: []string{"/etc/passwd"}},
		{Name: "Group.lns", Incl: []string{"/etc/group"}},
		{Name: "Sshd.lns", Incl: []string{"/etc/ssh/sshd_config"}},
		{Name: "Sudoers.lns", Incl: []string{"/etc/sudoers", "/etc/sudoers.d/*"}, Excl: []string{"*~", "*.dpkg-*"}},
		{Name: "Squid.lns", Incl: []string{"/etc/squid/squid.conf"}},
		{Name: "Yum.lns", Incl: []string{"/etc/yum.conf", "/etc/yum.repos.d/*.repo"}},
		{Name: "Systemd.lns", Incl: []string{"/lib/systemd/system/*.service", "/etc/systemd/system/*.service"}},
		{Name: "Simplelines.lns", Incl: []string{"/etc/cron.allow", "/etc/cron.deny"}},
	}}
}

// Infer returns the lens applying to target: its incl patterns must match
// the target path and no excl pattern may match the path or its basename.
// When several lenses apply the first one wins; all applying lens names are
// returned so the caller can warn. No applying lens is an error.
func (r *Registry) Infer(target string) (lens string, applying []string, err error) {
	base := path.Base(target)

	for _, l := range r.Lenses {
		if !matchAny(l.Incl, target) {
			continue
		}

		if matchAny(l.Excl, target) || matchAny(l.Excl, base) {
			continue
		}

		applying = append(applying, l.Name)
	}

	if len(applying) == 0 {
		return "", nil, fmt.Errorf("no lens applies for target: %s", target)
	}

	return applying[0], applying, nil
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			return true
		}
	}

	return false
}
