package models

import "encoding/json"

// AlmanacResponse is the envelope returned by the geolocation service.
// Only result.almanac_image is required; every field stays raw so an
// unexpected shape elsewhere never hides it.
type AlmanacResponse struct {
	Result   json.RawMessage `json:"result"`
	Errors   json.RawMessage `json:"errors,omitempty"`
	Warnings json.RawMessage `json:"warnings,omitempty"`
}

// AlmanacResult carries the base64 encoded full almanac image
type AlmanacResult struct {
	AlmanacImage json.RawMessage `json:"almanac_image"`
}

// ErrorResponse is the body the API gateway sends when the request is rejected
// before reaching the service (bad or missing subscription key, quota, ...)
type ErrorResponse struct {
	Message string `json:"message,omitempty"`
}
