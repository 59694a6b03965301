package domain

import "errors"

var (
	// ErrInvalidInput marks semantic validation failures the field-level
	// validator cannot catch (unknown enum values, dangling references).
	ErrInvalidInput = errors.New("invalid input")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrForbidden          = errors.New("forbidden")

	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")

	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryCycle    = errors.New("category parent assignment creates a cycle")

	ErrTagNotFound = errors.New("tag not found")
	ErrTagExists   = errors.New("tag already exists")

	ErrProductNotFound = errors.New("product not found")
	ErrProductExists   = errors.New("product sku or slug already exists")

	ErrVariantNotFound = errors.New("variant not found")
	ErrVariantExists   = errors.New("variant sku already exists")

	ErrImageNotFound = errors.New("product image not found")

	// ErrBadImage marks an upload that could not be decoded as an image.
	// It is fatal to the save that carried the upload.
	ErrBadImage = errors.New("uploaded file is not a decodable image")
)
