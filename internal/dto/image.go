package dto

import "io"

// ImageUpload is an inbound image file extracted from a multipart request.
type ImageUpload struct {
	Name        string
	ContentType string
	Data        io.Reader
}
