package dto

type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type RejectRequest struct {
	Reason string `json:"reason,omitempty"`
}

type ShortlistRequest struct {
	Shortlisted bool `json:"shortlisted"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}
