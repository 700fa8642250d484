package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultProfileFile is the default report-profile file name.
const DefaultProfileFile = ".clinreport"

// LoadProfile loads a report profile from a YAML file.
// Missing fields keep their zero values; DefaultProfile fields are merged in
// for the sequencing block so a partial profile still renders a complete
// technical section.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided profile path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, path)
		}
		return nil, err
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}

	mergeSequencingDefaults(&p)
	return &p, nil
}

// mergeSequencingDefaults fills unset sequencing fields from the defaults.
func mergeSequencingDefaults(p *Profile) {
	def := DefaultProfile().Sequencing
	if p.Sequencing.Method == "" {
		p.Sequencing.Method = def.Method
	}
	if p.Sequencing.MeanDepth == "" {
		p.Sequencing.MeanDepth = def.MeanDepth
	}
	if p.Sequencing.TotalBases == "" {
		p.Sequencing.TotalBases = def.TotalBases
	}
	if p.Sequencing.ReadType == "" {
		p.Sequencing.ReadType = def.ReadType
	}
	if p.Sequencing.ReadLength == "" {
		p.Sequencing.ReadLength = def.ReadLength
	}
	if len(p.Sequencing.QualityCriteria) == 0 {
		p.Sequencing.QualityCriteria = def.QualityCriteria
	}
}

// FindProfileFile searches for the profile file in the following order:
// 1. If profilePath is specified, use it directly
// 2. Look for .clinreport in the current directory
// 3. Look for .clinreport in the user's home directory
// 4. Look for profile.yaml in the XDG config directory
//
// Returns the path to the profile file if found, or empty string if not.
func FindProfileFile(profilePath string) string {
	if profilePath != "" {
		if _, err := os.Stat(profilePath); err == nil {
			return profilePath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultProfileFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, DefaultProfileFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	p := filepath.Join(XDGConfigDir(), "profile.yaml")
	if _, err := os.Stat(p); err == nil {
		return p
	}

	return ""
}
