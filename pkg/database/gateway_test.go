package database

import (
	"backstube/internal/testutil"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_WriteThenRead(t *testing.T) {
	db := testutil.OpenDB(t)
	gw := NewGateway(db, time.Second)
	ctx := context.Background()

	affected, err := gw.Write(ctx, "INSERT INTO recipes (title, link, source_site) VALUES (?, ?, ?)",
		"Brot", "https://chefkoch.test/brot", "chefkoch")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	row, err := gw.ReadOne(ctx, "SELECT id, title, link, source_site FROM recipes WHERE title = ?", "Brot")
	require.NoError(t, err)
	require.NotNil(t, row)

	id, err := row.Int64("id")
	require.NoError(t, err)
	assert.Positive(t, id)
	assert.Equal(t, "Brot", row.String("title"))
	assert.Equal(t, "https://chefkoch.test/brot", row.String("link"))
	assert.Equal(t, "chefkoch", row.String("source_site"))
}

func TestGateway_ReadOneNoRow(t *testing.T) {
	gw := NewGateway(testutil.OpenDB(t), time.Second)

	row, err := gw.ReadOne(context.Background(), "SELECT id FROM recipes WHERE id = ?", 404)

	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestGateway_ReadKeepsOrderAndEmpty(t *testing.T) {
	db := testutil.OpenDB(t)
	gw := NewGateway(db, time.Second)
	ctx := context.Background()

	rows, err := gw.Read(ctx, "SELECT name FROM ingredients ORDER BY name")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	for _, name := range []string{"Wasser", "Mehl", "Salz"} {
		testutil.Ingredient(t, db, name)
	}

	rows, err = gw.Read(ctx, "SELECT name FROM ingredients ORDER BY name")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Mehl", rows[0].String("name"))
	assert.Equal(t, "Salz", rows[1].String("name"))
	assert.Equal(t, "Wasser", rows[2].String("name"))
}

func TestGateway_InListBinding(t *testing.T) {
	db := testutil.OpenDB(t)
	gw := NewGateway(db, time.Second)

	ids := []any{testutil.Ingredient(t, db, "Mehl"), testutil.Ingredient(t, db, "Hefe")}
	testutil.Ingredient(t, db, "Zucker")

	rows, err := gw.Read(context.Background(),
		"SELECT name FROM ingredients WHERE id IN ("+Placeholders(len(ids))+") ORDER BY name", ids...)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Hefe", rows[0].String("name"))
	assert.Equal(t, "Mehl", rows[1].String("name"))
}

func TestGateway_ErrorsPropagate(t *testing.T) {
	gw := NewGateway(testutil.OpenDB(t), time.Second)
	ctx := context.Background()

	_, err := gw.Read(ctx, "SELECT * FROM no_such_table")
	assert.Error(t, err)

	_, err = gw.ReadOne(ctx, "SELECT * FROM no_such_table")
	assert.Error(t, err)

	_, err = gw.Write(ctx, "INSERT INTO no_such_table (x) VALUES (?)", 1)
	assert.Error(t, err)
}

func TestGateway_ReleasesConnections(t *testing.T) {
	db := testutil.OpenDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	gw := NewGateway(db, 2*time.Second)
	ctx := context.Background()

	// With a single connection, any leaked checkout would block the next call.
	for i := 0; i < 5; i++ {
		_, err := gw.ReadOne(ctx, "SELECT id FROM recipes WHERE id = ?", i)
		require.NoError(t, err)
		_, err = gw.Read(ctx, "SELECT * FROM no_such_table")
		require.Error(t, err)
	}
	assert.Equal(t, 0, sqlDB.Stats().InUse)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", Placeholders(0))
	assert.Equal(t, "?", Placeholders(1))
	assert.Equal(t, "?, ?, ?", Placeholders(3))
}

func TestRow_Accessors(t *testing.T) {
	ts := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)
	row := Row{
		"a": int64(7), "b": int32(8), "c": []byte("9"), "d": "10", "e": nil, "f": 11.0,
		"title": []byte("Brot"), "at": ts, "at_text": "2024-05-01 08:30:00",
	}

	for column, want := range map[string]int64{"a": 7, "b": 8, "c": 9, "d": 10, "e": 0, "f": 11} {
		got, err := row.Int64(column)
		require.NoError(t, err, column)
		assert.Equal(t, want, got, column)
	}
	assert.Equal(t, "Brot", row.String("title"))

	got, err := row.Time("at")
	require.NoError(t, err)
	assert.True(t, ts.Equal(got))

	got, err = row.Time("at_text")
	require.NoError(t, err)
	assert.True(t, ts.Equal(got))

	_, err = row.Int64("at")
	assert.Error(t, err)
}
