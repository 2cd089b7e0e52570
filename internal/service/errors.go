package service

import "errors"

var (
	ErrInternal          = errors.New("internal server error")
	ErrPostNotFound      = errors.New("could not find post")
	ErrNotPostCreator    = errors.New("not authorized")
	ErrNoImageProvided   = errors.New("no image provided")
	ErrNoImageResolvable = errors.New("no image file or image URL provided")
)
