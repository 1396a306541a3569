package dto

type TestimonialRequest struct {
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}
