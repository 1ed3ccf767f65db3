package models

type Promotion struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Title string `json:"title" gorm:"not null"`
	URL   string `json:"url" gorm:"not null"`
	Image string `json:"image" gorm:"not null"`
}

type PromotionDTO struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Image string `json:"image"`
}

type UpdatePromotionDTO struct {
	Title *string `json:"title"`
	URL   *string `json:"url"`
	Image *string `json:"image"`
}
