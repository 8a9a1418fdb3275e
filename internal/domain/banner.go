package domain

// Banner is a promotional entry shown to every visitor.
type Banner struct {
	ID          int64  `json:"-"`
	BannerName  string `json:"banner_name"`
	BannerImage string `json:"banner_image"`
	Description string `json:"description"`
}
