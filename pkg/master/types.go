package master

import (
	"fmt"
	"strings"

	"github.com/recrd-io/recrd-sdk-go/pkg/ptb"
	"github.com/recrd-io/recrd-sdk-go/pkg/shared"
)

const (
	// Module is the contract module holding Master and Metadata.
	Module = "master"

	profileModule = "profile"

	// MaxRoyaltyBP is 100% in basis points.
	MaxRoyaltyBP = 10_000
)

// Kind is the media kind a Master is parameterised by.
type Kind string

const (
	KindVideo Kind = "Video"
	KindSound Kind = "Sound"
)

// ParseKind accepts "video", "sound" and the legacy "audio" alias in any
// case, or a fully qualified type such as "0xabc::master::Video".
func ParseKind(raw string) (Kind, error) {
	name := strings.TrimSpace(raw)
	if index := strings.LastIndex(name, "::"); index >= 0 {
		name = name[index+2:]
	}
	switch strings.ToLower(name) {
	case "video":
		return KindVideo, nil
	case "sound", "audio":
		return KindSound, nil
	default:
		return "", ptb.Invalidf("unknown master kind %q", raw)
	}
}

// Type returns the kind's fully qualified type argument.
func (k Kind) Type(contract shared.Contract) string {
	return contract.Type(Module, string(k))
}

// MasterType is the struct type of a Master of kind.
func MasterType(contract shared.Contract, kind Kind) string {
	return fmt.Sprintf("%s<%s>", contract.Type(Module, "Master"), kind.Type(contract))
}

// MetadataType is the struct type of the Metadata of a Master of kind.
func MetadataType(contract shared.Contract, kind Kind) string {
	return fmt.Sprintf("%s<%s>", contract.Type(Module, "Metadata"), kind.Type(contract))
}

// SaleStatus is the lifecycle state of a Master.
type SaleStatus uint8

const (
	StatusRetained  SaleStatus = 1
	StatusOnSale    SaleStatus = 2
	StatusSuspended SaleStatus = 3
	StatusClaimed   SaleStatus = 4
)

func (s SaleStatus) Validate() error {
	if s < StatusRetained || s > StatusClaimed {
		return ptb.Invalidf("sale status %d is outside [%d, %d]", s, StatusRetained, StatusClaimed)
	}
	return nil
}

func (s SaleStatus) String() string {
	switch s {
	case StatusRetained:
		return "retained"
	case StatusOnSale:
		return "on-sale"
	case StatusSuspended:
		return "suspended"
	case StatusClaimed:
		return "claimed"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// ParseSaleStatus accepts a status name or its number.
func ParseSaleStatus(raw string) (SaleStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "retained":
		return StatusRetained, nil
	case "2", "on-sale", "on_sale", "onsale":
		return StatusOnSale, nil
	case "3", "suspended":
		return StatusSuspended, nil
	case "4", "claimed":
		return StatusClaimed, nil
	default:
		return 0, ptb.Invalidf("unknown sale status %q", raw)
	}
}

// MintParams describes a new Master. It doubles as the mint parameter file
// format.
type MintParams struct {
	Kind                Kind       `json:"kind" yaml:"kind"`
	Title               string     `json:"title" yaml:"title"`
	Description         string     `json:"description" yaml:"description"`
	ImageURL            string     `json:"imageUrl" yaml:"image_url"`
	MediaURL            string     `json:"mediaUrl" yaml:"media_url"`
	Hashtags            []string   `json:"hashtags" yaml:"hashtags"`
	CreatorProfileID    string     `json:"creatorProfileId" yaml:"creator_profile_id"`
	RoyaltyPercentageBP uint16     `json:"royaltyPercentageBp" yaml:"royalty_percentage_bp"`
	Parent              string     `json:"parent,omitempty" yaml:"master_metadata_parent,omitempty"`
	Origin              string     `json:"origin,omitempty" yaml:"master_metadata_origin,omitempty"`
	SaleStatus          SaleStatus `json:"saleStatus" yaml:"sale_status"`
}

// Master is the typed projection of an on-chain Master.
type Master struct {
	ID                  string     `json:"id"`
	Type                string     `json:"type"`
	Kind                Kind       `json:"kind"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	ImageURL            string     `json:"imageUrl"`
	MediaURL            string     `json:"mediaUrl"`
	Hashtags            []string   `json:"hashtags"`
	CreatorProfileID    string     `json:"creatorProfileId"`
	RoyaltyPercentageBP uint16     `json:"royaltyPercentageBp"`
	MetadataRef         string     `json:"metadataRef"`
	SaleStatus          SaleStatus `json:"saleStatus"`
}

// Metadata is the typed projection of a Master's Metadata object.
type Metadata struct {
	ID                  string     `json:"id"`
	Type                string     `json:"type"`
	Kind                Kind       `json:"kind"`
	MasterID            string     `json:"masterId"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	ImageURL            string     `json:"imageUrl"`
	MediaURL            string     `json:"mediaUrl"`
	Hashtags            []string   `json:"hashtags"`
	CreatorProfileID    string     `json:"creatorProfileId"`
	RoyaltyPercentageBP uint16     `json:"royaltyPercentageBp"`
	Parent              string     `json:"parent,omitempty"`
	Origin              string     `json:"origin,omitempty"`
	SaleStatus          SaleStatus `json:"saleStatus"`
}

// MintResult holds the objects created by a mint.
type MintResult struct {
	Digest     string `json:"digest"`
	MasterID   string `json:"masterId"`
	MetadataID string `json:"metadataId"`
}
