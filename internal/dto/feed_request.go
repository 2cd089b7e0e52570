package dto

type CreatePostRequest struct {
	Title   string `form:"title" binding:"required,min=5"`
	Content string `form:"content" binding:"required,min=5"`
}

type UpdatePostRequest struct {
	Title   string `form:"title" binding:"required,min=5"`
	Content string `form:"content" binding:"required,min=5"`
	// Image is the existing storage-relative image URL the client wants to
	// keep. A freshly uploaded file always takes precedence over it.
	Image string `form:"image"`
}
