// Package testutil opens throwaway SQLite stores carrying the production
// schema for package tests.
package testutil

import (
	migration "backstube/cmd/database/migrate"
	"backstube/entities"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "backstube.db")
	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(3)
	t.Cleanup(func() { sqlDB.Close() })

	if err := migration.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Bake seeds a recipe requiring the named ingredients and returns its id.
func Bake(t testing.TB, db *gorm.DB, title string, ingredients ...string) int64 {
	t.Helper()

	recipe := entities.Recipe{Title: title, Link: "https://example.test/" + title, SourceSite: "example.test"}
	if err := db.Create(&recipe).Error; err != nil {
		t.Fatalf("create recipe %s: %v", title, err)
	}

	for _, name := range ingredients {
		link := entities.RecipeIngredient{RecipeID: recipe.ID, IngredientID: Ingredient(t, db, name)}
		if err := db.Create(&link).Error; err != nil {
			t.Fatalf("link %s -> %s: %v", title, name, err)
		}
	}
	return recipe.ID
}

// Ingredient returns the id of the named ingredient, creating it on first use.
func Ingredient(t testing.TB, db *gorm.DB, name string) int64 {
	t.Helper()

	if err := db.Exec("INSERT INTO ingredients (name) VALUES (?) ON CONFLICT (name) DO NOTHING", name).Error; err != nil {
		t.Fatalf("create ingredient %s: %v", name, err)
	}
	var id int64
	if err := db.Table("ingredients").Select("id").Where("name = ?", name).Scan(&id).Error; err != nil {
		t.Fatalf("lookup ingredient %s: %v", name, err)
	}
	return id
}

func User(t testing.TB, db *gorm.DB, username string) int64 {
	t.Helper()

	user := entities.User{Username: username, PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user.ID
}
