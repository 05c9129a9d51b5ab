package recipe

import (
	"backstube/domain"
	"backstube/internal/testutil"
	"backstube/pkg/database"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubRepository struct {
	coverages []Coverage
	err       error
	calls     int
}

func (s *stubRepository) GetCoverage(_ context.Context, _ []int64) ([]Coverage, error) {
	s.calls++
	return s.coverages, s.err
}

func (s *stubRepository) GetIngredients(_ context.Context) ([]domain.Ingredient, error) {
	s.calls++
	return nil, s.err
}

func (s *stubRepository) GetRecipeByID(_ context.Context, _ int64) (*domain.Recipe, error) {
	s.calls++
	return nil, s.err
}

func newStoreService(t *testing.T) (RecipeService, *gorm.DB) {
	db := testutil.OpenDB(t)
	return NewRecipeService(NewRecipeRepository(database.NewGateway(db, time.Second))), db
}

func titles(matches []domain.RecipeMatch) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Title)
	}
	return out
}

func TestMatchRecipes_BrotMissingSalt(t *testing.T) {
	svc, db := newStoreService(t)
	testutil.Bake(t, db, "Brot", "Mehl", "Wasser", "Salz")

	res, err := svc.MatchRecipes(context.Background(), []int64{
		testutil.Ingredient(t, db, "Mehl"),
		testutil.Ingredient(t, db, "Wasser"),
	})

	require.NoError(t, err)
	assert.Empty(t, res.Exact)
	require.Len(t, res.Near, 1)
	assert.Equal(t, "Brot", res.Near[0].Title)
	assert.Equal(t, int64(1), res.Near[0].Missing)
	assert.Equal(t, "https://example.test/Brot", res.Near[0].Link)
	assert.Equal(t, "example.test", res.Near[0].SourceSite)
}

func TestMatchRecipes_BrotExactWithSurplus(t *testing.T) {
	svc, db := newStoreService(t)
	testutil.Bake(t, db, "Brot", "Mehl", "Wasser")

	res, err := svc.MatchRecipes(context.Background(), []int64{
		testutil.Ingredient(t, db, "Mehl"),
		testutil.Ingredient(t, db, "Wasser"),
		testutil.Ingredient(t, db, "Salz"),
	})

	require.NoError(t, err)
	require.Len(t, res.Exact, 1)
	assert.Equal(t, "Brot", res.Exact[0].Title)
	assert.Equal(t, int64(0), res.Exact[0].Missing)
	assert.Empty(t, res.Near)
}

func TestMatchRecipes_EmptySelectionSkipsStore(t *testing.T) {
	repo := &stubRepository{err: errors.New("must not be called")}
	svc := NewRecipeService(repo)

	res, err := svc.MatchRecipes(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 0, repo.calls)
	assert.NotNil(t, res.Exact)
	assert.NotNil(t, res.Near)
	assert.Empty(t, res.Exact)
	assert.Empty(t, res.Near)
	assert.Equal(t, "select at least one ingredient.", res.Message)
}

func TestMatchRecipes_InvalidIngredientID(t *testing.T) {
	repo := &stubRepository{}
	svc := NewRecipeService(repo)

	_, err := svc.MatchRecipes(context.Background(), []int64{3, 0})

	assert.ErrorIs(t, err, domain.ErrInvalidIngredientID)
	assert.Equal(t, 0, repo.calls)
}

func TestMatchRecipes_StoreFailureDegrades(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc := NewRecipeService(&stubRepository{err: storeErr})

	res, err := svc.MatchRecipes(context.Background(), []int64{1})

	assert.ErrorIs(t, err, storeErr)
	assert.Empty(t, res.Exact)
	assert.Empty(t, res.Near)
	assert.Equal(t, domain.MessageFailedMatchRecipes, res.Message)
}

func TestMatchRecipes_DuplicateSelectionCountsOnce(t *testing.T) {
	svc, db := newStoreService(t)
	testutil.Bake(t, db, "Brot", "Mehl", "Wasser")
	mehl := testutil.Ingredient(t, db, "Mehl")

	res, err := svc.MatchRecipes(context.Background(), []int64{mehl, mehl})

	require.NoError(t, err)
	require.Len(t, res.Near, 1)
	assert.Equal(t, int64(1), res.Near[0].Missing)
}

func TestMatchRecipes_RecipeWithoutIngredientsExcluded(t *testing.T) {
	svc, db := newStoreService(t)
	testutil.Bake(t, db, "Luft")
	testutil.Bake(t, db, "Brot", "Mehl")

	res, err := svc.MatchRecipes(context.Background(), []int64{testutil.Ingredient(t, db, "Mehl")})

	require.NoError(t, err)
	assert.Equal(t, []string{"Brot"}, titles(res.Exact))
	assert.Empty(t, res.Near)
}

func TestMatchRecipes_NearRankingAndCap(t *testing.T) {
	svc, db := newStoreService(t)
	mehl := testutil.Ingredient(t, db, "Mehl")

	// Recipe i needs Mehl plus i extra ingredients, so it misses exactly i.
	for i := 12; i >= 1; i-- {
		extras := []string{"Mehl"}
		for j := 0; j < i; j++ {
			extras = append(extras, fmt.Sprintf("Extra%02d", j))
		}
		testutil.Bake(t, db, fmt.Sprintf("Rezept%02d", i), extras...)
	}
	testutil.Bake(t, db, "Apfelkuchen", "Mehl", "Extra00")
	testutil.Bake(t, db, "Zopf", "Mehl")
	testutil.Bake(t, db, "Fladen", "Mehl")

	res, err := svc.MatchRecipes(context.Background(), []int64{mehl})

	require.NoError(t, err)
	assert.Equal(t, []string{"Fladen", "Zopf"}, titles(res.Exact))
	require.Len(t, res.Near, domain.NearMatchLimit)
	assert.Equal(t, []string{
		"Apfelkuchen", "Rezept01", "Rezept02", "Rezept03", "Rezept04",
		"Rezept05", "Rezept06", "Rezept07", "Rezept08", "Rezept09",
	}, titles(res.Near))
	assert.Equal(t, int64(1), res.Near[0].Missing)
	assert.Equal(t, int64(1), res.Near[1].Missing)
	assert.Equal(t, int64(9), res.Near[9].Missing)
}

func TestPartition_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		n := rng.Intn(30)
		coverages := make([]Coverage, 0, n)
		for i := 0; i < n; i++ {
			required := int64(rng.Intn(6))
			covered := int64(0)
			if required > 0 {
				covered = int64(rng.Intn(int(required) + 1))
			}
			coverages = append(coverages, Coverage{
				Recipe:   domain.Recipe{ID: int64(i + 1), Title: fmt.Sprintf("R%c", 'A'+rng.Intn(8))},
				Required: required,
				Covered:  covered,
			})
		}

		exact, near := Partition(coverages, domain.NearMatchLimit)

		for _, m := range exact {
			assert.Equal(t, int64(0), m.Missing)
		}
		for _, m := range near {
			assert.Positive(t, m.Missing)
		}
		assert.LessOrEqual(t, len(near), domain.NearMatchLimit)
		assert.True(t, sort.SliceIsSorted(exact, func(i, j int) bool { return byTitle(exact[i], exact[j]) }))
		assert.True(t, sort.SliceIsSorted(near, func(i, j int) bool {
			if near[i].Missing != near[j].Missing {
				return near[i].Missing < near[j].Missing
			}
			return byTitle(near[i], near[j])
		}))

		var wantExact, wantNear int
		for _, c := range coverages {
			switch {
			case c.Required == 0:
			case c.Required == c.Covered:
				wantExact++
			default:
				wantNear++
			}
		}
		assert.Len(t, exact, wantExact)
		assert.Len(t, near, min(wantNear, domain.NearMatchLimit))
	}
}

func TestGetIngredientsAndRecipe(t *testing.T) {
	svc, db := newStoreService(t)
	id := testutil.Bake(t, db, "Brot", "Wasser", "Mehl")

	ingredients, err := svc.GetIngredients(context.Background())
	require.NoError(t, err)
	require.Len(t, ingredients, 2)
	assert.Equal(t, "Mehl", ingredients[0].Name)
	assert.Equal(t, "Wasser", ingredients[1].Name)

	recipe, err := svc.GetRecipe(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Brot", recipe.Title)

	_, err = svc.GetRecipe(context.Background(), id+100)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}
