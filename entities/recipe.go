package entities

type Recipe struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      string `gorm:"type:varchar(255);not null" json:"title"`
	Link       string `gorm:"type:varchar(512)" json:"link"`
	SourceSite string `gorm:"type:varchar(128)" json:"source_site"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// RecipeIngredient declares that a recipe requires an ingredient.
type RecipeIngredient struct {
	RecipeID     int64 `gorm:"primaryKey;autoIncrement:false" json:"recipe_id"`
	IngredientID int64 `gorm:"primaryKey;autoIncrement:false;index" json:"ingredient_id"`

	Recipe     *Recipe     `gorm:"foreignKey:RecipeID"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}
