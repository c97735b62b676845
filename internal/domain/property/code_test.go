package property

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextPropertyCode_WidthFollowsWidestExisting(t *testing.T) {
	repo, _, _ := setupRepo(t)
	ctx := context.Background()

	in := sampleInput("Listing")
	in.PropertyCode = "prop-0009"
	_, err := repo.Create(ctx, in)
	require.NoError(t, err)

	id, err := repo.Create(ctx, sampleInput("Listing"))
	require.NoError(t, err)
	code, err := repo.CodeByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "prop-0010", code)
}

func TestNextPropertyCode_IgnoresForeignCodes(t *testing.T) {
	repo, _, _ := setupRepo(t)
	ctx := context.Background()

	in := sampleInput("Listing")
	in.PropertyCode = "legacy-42"
	_, err := repo.Create(ctx, in)
	require.NoError(t, err)

	id, err := repo.Create(ctx, sampleInput("Listing"))
	require.NoError(t, err)
	code, err := repo.CodeByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "prop-001", code)
}
