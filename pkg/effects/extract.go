package effects

import (
	"fmt"
	"strings"

	"github.com/recrd-io/recrd-sdk-go/pkg/rpc"
)

// Find returns the first change of kind whose object type contains pattern.
// An empty kind matches every change.
func Find(changes []rpc.ObjectChange, kind, pattern string) (rpc.ObjectChange, error) {
	for _, change := range changes {
		if matches(change, kind, pattern) {
			return change, nil
		}
	}
	return rpc.ObjectChange{}, &NotFoundError{Kind: kind, Pattern: pattern}
}

// Filter returns every change of kind whose object type contains pattern.
func Filter(changes []rpc.ObjectChange, kind, pattern string) []rpc.ObjectChange {
	matched := make([]rpc.ObjectChange, 0)
	for _, change := range changes {
		if matches(change, kind, pattern) {
			matched = append(matched, change)
		}
	}
	return matched
}

func matches(change rpc.ObjectChange, kind, pattern string) bool {
	if kind != "" && change.Type != kind {
		return false
	}
	return strings.Contains(change.ObjectType, pattern)
}

func FindCreated(changes []rpc.ObjectChange, pattern string) (rpc.ObjectChange, error) {
	return Find(changes, rpc.ChangeCreated, pattern)
}

func FilterCreated(changes []rpc.ObjectChange, pattern string) []rpc.ObjectChange {
	return Filter(changes, rpc.ChangeCreated, pattern)
}

func FindMutated(changes []rpc.ObjectChange, pattern string) (rpc.ObjectChange, error) {
	return Find(changes, rpc.ChangeMutated, pattern)
}

func FindDeleted(changes []rpc.ObjectChange, pattern string) (rpc.ObjectChange, error) {
	return Find(changes, rpc.ChangeDeleted, pattern)
}

// IDs returns the object ids of changes in order.
func IDs(changes []rpc.ObjectChange) []string {
	ids := make([]string, 0, len(changes))
	for _, change := range changes {
		ids = append(ids, change.ObjectID)
	}
	return ids
}

// CheckStatus returns nil for a successful execution and an *ExecutionError
// otherwise. Known abort codes are replaced by their message.
func CheckStatus(response *rpc.TransactionBlockResponse) error {
	if response == nil {
		return &ExecutionError{Raw: "empty response", Command: -1}
	}
	if response.Effects == nil {
		if len(response.Errors) > 0 {
			return &ExecutionError{Digest: response.Digest, Raw: strings.Join(response.Errors, "; "), Command: -1}
		}
		return &ExecutionError{Digest: response.Digest, Raw: "response carries no effects", Command: -1}
	}
	if response.Effects.Status.Status == "success" {
		return nil
	}

	raw := response.Effects.Status.Error
	if raw == "" {
		raw = response.Effects.Status.Status
	}
	failure := &ExecutionError{Digest: response.Digest, Raw: raw, Command: -1}
	failure.AbortCode, failure.Command = parseAbort(raw)
	if failure.AbortCode != nil {
		if message, ok := AbortMessage(*failure.AbortCode); ok {
			failure.Message = message
		}
	}
	return failure
}

// TypeArgument extracts T from an object type "...::<name><T>". The outermost
// struct name must equal name.
func TypeArgument(objectType, name string) (string, error) {
	trimmed := strings.TrimSpace(objectType)
	open := strings.Index(trimmed, "<")
	if open < 0 || !strings.HasSuffix(trimmed, ">") || !strings.HasSuffix(trimmed[:open], "::"+name) {
		return "", fmt.Errorf("type %q is not a %s<T>", objectType, name)
	}
	inner := strings.TrimSpace(trimmed[open+1 : len(trimmed)-1])
	if inner == "" {
		return "", fmt.Errorf("type %q has an empty type argument", objectType)
	}
	return inner, nil
}

// DisplayObjects maps each type to the id of the Display<type> object
// created in changes, failing if any is missing.
func DisplayObjects(changes []rpc.ObjectChange, types []string) (map[string]string, error) {
	found := make(map[string]string, len(types))
	missing := make([]string, 0)
	for _, displayed := range types {
		want := fmt.Sprintf("0x2::display::Display<%s>", displayed)
		for _, change := range changes {
			if change.Type == rpc.ChangeCreated && sameType(change.ObjectType, want) {
				found[displayed] = change.ObjectID
				break
			}
		}
		if _, ok := found[displayed]; !ok {
			missing = append(missing, displayed)
		}
	}
	if len(missing) > 0 {
		return nil, &NotFoundError{Kind: rpc.ChangeCreated, Pattern: "Display<" + strings.Join(missing, ", ") + ">"}
	}
	return found, nil
}

// sameType compares two type strings ignoring 0x2 vs long-form framework
// addresses.
func sameType(left, right string) bool {
	return normalizeFramework(left) == normalizeFramework(right)
}

const longFramework = "0x0000000000000000000000000000000000000000000000000000000000000002::"

func normalizeFramework(value string) string {
	return strings.ReplaceAll(strings.TrimSpace(value), longFramework, "0x2::")
}
