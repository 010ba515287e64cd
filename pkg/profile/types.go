package profile

// Access levels understood by the contract.
const (
	AccessDefault = 100
	AccessBorrow  = 110
	AccessUpdate  = 120
	AccessRemove  = 150
	AccessAdmin   = 200

	MaxAccessLevel = 250
)

// Module is the contract module name.
const Module = "profile"

// Field names a profile attribute that has an update entry point.
type Field string

const (
	FieldUserID            Field = "userId"
	FieldUsername          Field = "username"
	FieldWatchTime         Field = "watchTime"
	FieldVideosWatched     Field = "videosWatched"
	FieldAdvertsWatched    Field = "advertsWatched"
	FieldNumberOfFollowers Field = "numberOfFollowers"
	FieldNumberOfFollowing Field = "numberOfFollowing"
	FieldAdRevenue         Field = "adRevenue"
	FieldCommissionRevenue Field = "commissionRevenue"
	FieldAuthorization     Field = "authorization"
)

var updateFunctions = map[Field]string{
	FieldUserID:            "update_user_id",
	FieldUsername:          "update_username",
	FieldWatchTime:         "update_watch_time",
	FieldVideosWatched:     "update_videos_watched",
	FieldAdvertsWatched:    "update_adverts_watched",
	FieldNumberOfFollowers: "update_number_of_followers",
	FieldNumberOfFollowing: "update_number_of_following",
	FieldAdRevenue:         "update_ad_revenue",
	FieldCommissionRevenue: "update_commission_revenue",
	FieldAuthorization:     "update_authorization",
}

// UpdateFunction returns the entry point that updates field.
func UpdateFunction(field Field) (string, bool) {
	function, ok := updateFunctions[field]
	return function, ok
}

// Profile is the typed projection of an on-chain Profile.
type Profile struct {
	ID                string           `json:"id"`
	UserID            string           `json:"userId"`
	Username          string           `json:"username"`
	Authorizations    map[string]uint8 `json:"authorizations"`
	WatchTime         uint64           `json:"watchTime"`
	VideosWatched     uint64           `json:"videosWatched"`
	AdvertsWatched    uint64           `json:"advertsWatched"`
	NumberOfFollowers uint64           `json:"numberOfFollowers"`
	NumberOfFollowing uint64           `json:"numberOfFollowing"`
	AdRevenue         uint64           `json:"adRevenue"`
	CommissionRevenue uint64           `json:"commissionRevenue"`
}

// Authorization grants User access Level on the profile ProfileID.
type Authorization struct {
	ProfileID string `json:"profileId" yaml:"profileId"`
	User      string `json:"user" yaml:"user"`
	Level     int    `json:"level" yaml:"level"`
}

// ComboParams creates profiles and authorizes users in one batch.
type ComboParams struct {
	UserIDs      []string
	Usernames    []string
	ProfileIDs   []string
	Addresses    []string
	AccessLevels []int
}

// BuyParams moves a Master from the seller's profile to the buyer's,
// consuming a Receipt.
type BuyParams struct {
	SellerProfileID string
	MasterID        string
	BuyerProfileID  string
	ReceiptID       string
	// MasterKind is the Master's type argument, e.g. "0xabc::master::Video".
	MasterKind string
}

// ReceiveParams takes a Master out of a profile and sends it to Recipient.
type ReceiveParams struct {
	ProfileID  string
	MasterID   string
	MasterKind string
	Recipient  string
}
