package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itsolutions/internal/content"
	"itsolutions/internal/domain"
	"itsolutions/internal/latency"
	"itsolutions/internal/repos"
)

func TestSeedContentIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	defer db.Close()
	docs := repos.NewDocumentRepo(db)

	require.NoError(t, seedContent(ctx, db, false))

	var home domain.HomeContent
	ok, err := docs.Load(ctx, "home", &home)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, content.SeedHome().HeroTitle, home.HeroTitle)

	home.HeroTitle = "Edited"
	require.NoError(t, docs.Save(ctx, "home", home))

	require.NoError(t, seedContent(ctx, db, false))
	_, _ = docs.Load(ctx, "home", &home)
	assert.Equal(t, "Edited", home.HeroTitle, "existing content is kept")

	require.NoError(t, seedContent(ctx, db, true))
	_, _ = docs.Load(ctx, "home", &home)
	assert.Equal(t, content.SeedHome().HeroTitle, home.HeroTitle, "force overwrites")

	stores, err := content.Open(ctx, docs, latency.Instant())
	require.NoError(t, err)
	assert.Len(t, stores.Products.List(), len(content.SeedProducts()))
}

func TestRootCommandWiring(t *testing.T) {
	root := rootCmd()
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["seed"])
}
