package models

// RecommendRequest is the body of POST /recommend.
type RecommendRequest struct {
	MovieTitle string `json:"movie_title" binding:"required"`
}

// RecommendResponse is the body returned by POST /recommend.
type RecommendResponse struct {
	Recommendations []MovieRecord `json:"recommendations"`
}

// FeaturedResponse is the body returned by GET /featured-movies.
type FeaturedResponse struct {
	Movies []MovieRecord `json:"movies"`
}

// StatusResponse is the liveness payload of GET /.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ErrorResponse mirrors the {"detail": ...} error shape clients expect.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
