package shared

import (
	"fmt"
	"strings"
)

// ContractVersion is the call schema the builders target. Version 2 creates
// profiles from (cap, user id, username) and has no Identity objects.
const ContractVersion = 2

// Contract identifies one deployment of the RECRD package.
type Contract struct {
	PackageID string
	AdminCap  string
	Publisher string
	Registry  string
}

// Contract returns the deployment identifiers of the configuration.
func (c Config) Contract() Contract {
	return Contract{
		PackageID: c.PackageID,
		AdminCap:  c.AdminCap,
		Publisher: c.Publisher,
		Registry:  c.Registry,
	}
}

// Validate checks the package id and admin cap are set.
func (c Contract) Validate() error {
	if strings.TrimSpace(c.PackageID) == "" {
		return fmt.Errorf("package ID is required")
	}
	if strings.TrimSpace(c.AdminCap) == "" {
		return fmt.Errorf("admin cap is required")
	}
	return nil
}

// Type formats a struct type of the package, e.g. Type("master", "Video").
func (c Contract) Type(module, name string) string {
	return fmt.Sprintf("%s::%s::%s", strings.TrimSpace(c.PackageID), module, name)
}
