package ptb

import (
	"fmt"
	"regexp"
	"strings"
)

// Well-known framework addresses.
const (
	StdAddress   = "0x1"
	SuiFramework = "0x2"
)

// IDType is the Move type of object ids.
const IDType = "0x2::object::ID"

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Target names one entry point as package::module::function.
type Target struct {
	Package  string
	Module   string
	Function string
}

// NewTarget joins a package address with literal module and function names.
func NewTarget(packageID, module, function string) Target {
	return Target{
		Package:  strings.TrimSpace(packageID),
		Module:   module,
		Function: function,
	}
}

// ParseTarget splits a "package::module::function" string.
func ParseTarget(raw string) (Target, error) {
	parts := strings.Split(strings.TrimSpace(raw), "::")
	if len(parts) != 3 {
		return Target{}, Invalidf("target %q must be package::module::function", raw)
	}
	target := Target{Package: parts[0], Module: parts[1], Function: parts[2]}
	if err := target.Validate(); err != nil {
		return Target{}, err
	}
	return target, nil
}

func (t Target) String() string {
	return fmt.Sprintf("%s::%s::%s", t.Package, t.Module, t.Function)
}

// Validate checks the package is present and both names are Move identifiers.
func (t Target) Validate() error {
	if strings.TrimSpace(t.Package) == "" {
		return Invalidf("target package is required")
	}
	if !identifierPattern.MatchString(t.Module) {
		return Invalidf("target module %q is not a Move identifier", t.Module)
	}
	if !identifierPattern.MatchString(t.Function) {
		return Invalidf("target function %q is not a Move identifier", t.Function)
	}
	return nil
}

// StructType formats a fully qualified struct type with optional type parameters.
func StructType(packageID, module, name string, typeParams ...string) string {
	base := fmt.Sprintf("%s::%s::%s", strings.TrimSpace(packageID), module, name)
	if len(typeParams) == 0 {
		return base
	}
	return fmt.Sprintf("%s<%s>", base, strings.Join(typeParams, ", "))
}
