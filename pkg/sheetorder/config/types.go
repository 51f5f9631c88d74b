// Package config loads and validates the run configuration document.
package config

import (
	"fmt"
	"strings"
)

// Config is the validated run configuration. It is read-only once loaded.
type Config struct {
	// OnlyBuildTargetPackage limits scanning to the build descriptor's include list.
	OnlyBuildTargetPackage bool
	// SheetOrderFileRelativePath locates the canonical order file from the project root.
	SheetOrderFileRelativePath string
	// DefaultTargetDirectory is scanned child by child unless the descriptor narrows it.
	DefaultTargetDirectory string
	// GlobFileNamePattern selects workbook files by base name.
	GlobFileNamePattern string
	// DescriptorFileRelativePath locates the optional build descriptor.
	DescriptorFileRelativePath string
	// DefaultTargetPackage is the descriptor entry path consulted for includes.
	DefaultTargetPackage string
	// ExcludePackageList names include entries to skip.
	ExcludePackageList []string
}

// HasDescriptor reports whether a build descriptor path is configured.
func (c *Config) HasDescriptor() bool {
	return c.DescriptorFileRelativePath != ""
}

// Excludes reports whether candidate is in the exclude list.
func (c *Config) Excludes(candidate string) bool {
	for _, p := range c.ExcludePackageList {
		if p == candidate {
			return true
		}
	}
	return false
}

// String renders the configuration for logs.
func (c *Config) String() string {
	return fmt.Sprintf("onlyBuildTargetPackage=%t sheetOrderFileRelativePath=%q defaultTargetDirectory=%q "+
		"globFileNamePattern=%q descriptorFileRelativePath=%q defaultTargetPackage=%q excludePackageList=[%s]",
		c.OnlyBuildTargetPackage, c.SheetOrderFileRelativePath, c.DefaultTargetDirectory,
		c.GlobFileNamePattern, c.DescriptorFileRelativePath, c.DefaultTargetPackage,
		strings.Join(c.ExcludePackageList, ","))
}

// document mirrors the YAML layout. Pointers distinguish missing keys from zero values.
type document struct {
	OnlyBuildTargetPackage     *bool    `yaml:"onlyBuildTargetPackage"`
	SheetOrderFileRelativePath string   `yaml:"sheetOrderFileRelativePath"`
	DefaultTargetDirectory     string   `yaml:"defaultTargetDirectory"`
	GlobFileNamePattern        string   `yaml:"globFileNamePattern"`
	DescriptorFileRelativePath string   `yaml:"descriptorFileRelativePath"`
	DefaultTargetPackage       string   `yaml:"defaultTargetPackage"`
	ExcludePackageList         []string `yaml:"excludePackageList"`
}

func (d *document) toConfig() *Config {
	cfg := &Config{
		SheetOrderFileRelativePath: d.SheetOrderFileRelativePath,
		DefaultTargetDirectory:     d.DefaultTargetDirectory,
		GlobFileNamePattern:        d.GlobFileNamePattern,
		DescriptorFileRelativePath: d.DescriptorFileRelativePath,
		DefaultTargetPackage:       d.DefaultTargetPackage,
		ExcludePackageList:         append([]string(nil), d.ExcludePackageList...),
	}
	if d.OnlyBuildTargetPackage != nil {
		cfg.OnlyBuildTargetPackage = *d.OnlyBuildTargetPackage
	}
	return cfg
}
