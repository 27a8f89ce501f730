package dto

// Request bodies. Domain rules live in the services; tags here only reject
// shapes that can never be valid.

type RegisterUserReq struct {
	Username   string `json:"username" validate:"required,max=64"`
	Email      string `json:"email" validate:"required,email"`
	Fullname   string `json:"fullname" validate:"required,max=128"`
	Avatar     string `json:"avatar"`
	CoverImage string `json:"coverImage"`
}

type UpdateUserReq struct {
	Fullname   *string `json:"fullname" validate:"omitempty,max=128"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Avatar     *string `json:"avatar"`
	CoverImage *string `json:"coverImage"`
}

type CreateVideoReq struct {
	VideoFile   string  `json:"videoFile" validate:"required"`
	Thumbnail   string  `json:"thumbnail" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration" validate:"gte=0"`
	IsPublished *bool   `json:"isPublished"`
}

type UpdateVideoReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Thumbnail   *string `json:"thumbnail"`
}

type ContentReq struct {
	Content string `json:"content" validate:"required"`
}

type CreateTweetReq struct {
	Content string `json:"content" validate:"required"`
	Image   string `json:"image"`
}

type CreatePlaylistReq struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type UpdatePlaylistReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
