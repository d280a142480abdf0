package dto

// PatchGooglePlaceIDRequest - write-once external place link
type PatchGooglePlaceIDRequest struct {
	GooglePlaceID string `json:"google_place_id" validate:"required,max=255"`
}

// PatchGooglePlaceIDResponse - patch outcome
type PatchGooglePlaceIDResponse struct {
	Updated bool `json:"updated"`
}
