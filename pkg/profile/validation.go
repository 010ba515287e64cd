package profile

import (
	"strings"

	"github.com/recrd-io/recrd-sdk-go/pkg/ptb"
)

// ValidateAccessLevel checks level is within the contract's range.
func ValidateAccessLevel(level int) error {
	if level < 0 || level > MaxAccessLevel {
		return ptb.Invalidf("access level %d is outside [0, %d]", level, MaxAccessLevel)
	}
	return nil
}

func requireID(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return ptb.Invalidf("%s is required", name)
	}
	return nil
}

type requiredID struct {
	name, value string
}

// requireIDs reports the first empty id in argument order.
func requireIDs(ids ...requiredID) error {
	for _, id := range ids {
		if err := requireID(id.name, id.value); err != nil {
			return err
		}
	}
	return nil
}

func requireSameLength(names string, lengths ...int) error {
	for _, length := range lengths[1:] {
		if length != lengths[0] {
			return ptb.Invalidf("the arrays for %s must be of the same length", names)
		}
	}
	return nil
}
