package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Rule names reported in violations.
const (
	RuleRequired = "required"
	RuleNotBlank = "not_blank"
	RuleGlob     = "glob"
)

// Violation describes one broken configuration rule.
type Violation struct {
	Field   string
	Rule    string
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s (%s)", v.Field, v.Message, v.Rule)
}

// validate checks the decoded document and returns every violation found.
func validate(d *document) []Violation {
	var violations []Violation

	if d.OnlyBuildTargetPackage == nil {
		violations = append(violations, Violation{
			Field:   "onlyBuildTargetPackage",
			Rule:    RuleRequired,
			Message: "must be set to true or false",
		})
	}

	violations = appendNotBlank(violations, "sheetOrderFileRelativePath", d.SheetOrderFileRelativePath)
	violations = appendNotBlank(violations, "defaultTargetDirectory", d.DefaultTargetDirectory)
	violations = appendNotBlank(violations, "globFileNamePattern", d.GlobFileNamePattern)

	if strings.TrimSpace(d.GlobFileNamePattern) != "" {
		if !doublestar.ValidatePattern(d.GlobFileNamePattern) {
			violations = append(violations, Violation{
				Field:   "globFileNamePattern",
				Rule:    RuleGlob,
				Message: fmt.Sprintf("invalid pattern %q", d.GlobFileNamePattern),
			})
		}
	}

	// defaultTargetPackage is only required once a descriptor is configured.
	if d.DescriptorFileRelativePath != "" {
		violations = appendNotBlank(violations, "defaultTargetPackage", d.DefaultTargetPackage)
	}

	return violations
}

func appendNotBlank(violations []Violation, field, value string) []Violation {
	if strings.TrimSpace(value) != "" {
		return violations
	}
	return append(violations, Violation{
		Field:   field,
		Rule:    RuleNotBlank,
		Message: "must not be blank",
	})
}
