package enum

type PhotoCategory string

const (
	CategorySelfie    PhotoCategory = "SELFIE"
	CategoryPortrait  PhotoCategory = "PORTRAIT"
	CategoryAction    PhotoCategory = "ACTION"
	CategoryLandscape PhotoCategory = "LANDSCAPE"
	CategoryGraphic   PhotoCategory = "GRAPHIC"
)

func (t PhotoCategory) String() string {
	return string(t)
}

func (t PhotoCategory) IsValid() bool {
	switch t {
	case CategorySelfie, CategoryPortrait, CategoryAction, CategoryLandscape, CategoryGraphic:
		return true
	}
	return false
}

// DecodePhotoCategory parses a wire value into a PhotoCategory.
// Empty input falls back to PORTRAIT, the schema default.
func DecodePhotoCategory(value string) (PhotoCategory, bool) {
	if value == "" {
		return CategoryPortrait, true
	}
	category := PhotoCategory(value)
	return category, category.IsValid()
}
