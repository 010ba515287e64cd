package workflow

import (
	"bytes"
	"fmt"

	"github.com/recrd-io/recrd-sdk-go/pkg/master"
	"github.com/recrd-io/recrd-sdk-go/pkg/profile"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// LoadMintParams reads a Master description from a YAML file. Keys follow
// the contract's field names, e.g. image_url and royalty_percentage_bp.
func LoadMintParams(fs afero.Fs, path string) (master.MintParams, error) {
	var params master.MintParams
	if err := decodeFile(fs, path, &params); err != nil {
		return master.MintParams{}, err
	}
	kind, err := master.ParseKind(string(params.Kind))
	if err != nil {
		return master.MintParams{}, fmt.Errorf("%s: %w", path, err)
	}
	params.Kind = kind
	return params, nil
}

// LoadAuthorizations reads a YAML list of {profileId, user, level} entries.
func LoadAuthorizations(fs afero.Fs, path string) ([]profile.Authorization, error) {
	var authorizations []profile.Authorization
	if err := decodeFile(fs, path, &authorizations); err != nil {
		return nil, err
	}
	if len(authorizations) == 0 {
		return nil, fmt.Errorf("%s lists no authorizations", path)
	}
	return authorizations, nil
}

// LoadUpdates reads a YAML list of {field, value, address} profile updates.
func LoadUpdates(fs afero.Fs, path string) ([]FieldUpdate, error) {
	var updates []FieldUpdate
	if err := decodeFile(fs, path, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

func decodeFile(fs afero.Fs, path string, target any) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
