package seed

import (
	"context"
	"testing"

	"team-vote/internal/repository/sqlite"
	"team-vote/internal/service"
	"team-vote/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTeams(t *testing.T) {
	ctx := context.Background()
	db, err := database.NewSQLiteDB(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, sqlite.Migrate(ctx, db))

	svc := service.NewTeamService(sqlite.NewTeamRepository(db), nil, zap.NewNop())

	created, err := Teams(ctx, svc, DefaultTeams)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	created, err = Teams(ctx, svc, DefaultTeams)
	require.NoError(t, err)
	assert.Zero(t, created)

	teams, err := svc.ListTeams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "Visionary Leaders", teams[0].Name)
	assert.Equal(t, "Michael Chen", teams[0].CoLeader)
	assert.Equal(t, "Future Forward", teams[1].Name)
	require.NotNil(t, teams[1].Image)
	assert.Equal(t, "/uploads/image_1766455926730.png", *teams[1].Image)
}
