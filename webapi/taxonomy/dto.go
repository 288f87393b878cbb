package taxonomy

// CategoryInput represents the request body for creating a category.
type CategoryInput struct {
	Name string `json:"name" validate:"required,max=100"`
	Type string `json:"type" validate:"required"`
}

// UpdateCategoryInput lists the fields a category update may change.
type UpdateCategoryInput struct {
	Name *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Type *string `json:"type,omitempty"`
}

// AssetTypeInput represents the request body for creating or renaming an asset type.
type AssetTypeInput struct {
	Name string `json:"name" validate:"required,max=100"`
}
