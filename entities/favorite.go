package entities

import "time"

// Favorite is one entry of a user's Backstube. A user can bookmark a recipe
// at most once; idx_backstube_user_recipe enforces it in the store.
type Favorite struct {
	UserID    int64     `gorm:"primaryKey;autoIncrement:false;uniqueIndex:idx_backstube_user_recipe" json:"user_id"`
	RecipeID  int64     `gorm:"primaryKey;autoIncrement:false;uniqueIndex:idx_backstube_user_recipe;index" json:"recipe_id"`
	CreatedAt time.Time `gorm:"type:timestamp;not null" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
}

func (Favorite) TableName() string {
	return "backstube"
}
