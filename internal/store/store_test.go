package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldforge/internal/model"
)

func openTestStore(t *testing.T) *WorldStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "worlds.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleWorld() *model.WorldModel {
	return &model.WorldModel{
		ID:    "mystic-forest",
		Name:  "Mystic Forest",
		Theme: model.ThemeForest,
		NPCs: []model.NPCModel{
			{Name: "Village Elder", Role: model.RoleFriendly, Dialogue: []string{"Hello!"}, Health: 100, Attack: 10, Defense: 5},
		},
		Quests: []model.QuestModel{
			{Name: "Gather Herbs", Description: "Collect herbs", Objectives: []string{"Collect 5 herbs"}, Rewards: []string{"50 Gold"}},
		},
		Environment: model.EnvironmentModel{Theme: model.ThemeForest, Lighting: "dappled", Weather: "misty"},
	}
}

func TestWorldRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	world := sampleWorld()
	require.NoError(t, s.SaveWorld(ctx, world))

	got, err := s.GetWorld(ctx, "mystic-forest")
	require.NoError(t, err)
	assert.Equal(t, world, got)
}

func TestGetWorld_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetWorld(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSaveWorld_Upsert(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	world := sampleWorld()
	require.NoError(t, s.SaveWorld(ctx, world))

	world.Name = "Mystic Forest v2"
	require.NoError(t, s.SaveWorld(ctx, world))

	got, err := s.GetWorld(ctx, "mystic-forest")
	require.NoError(t, err)
	assert.Equal(t, "Mystic Forest v2", got.Name)

	worlds, err := s.ListWorlds(ctx)
	require.NoError(t, err)
	assert.Len(t, worlds, 1)
}

func TestListWorlds(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a := sampleWorld()
	b := sampleWorld()
	b.ID = "desert-outpost"
	b.Name = "Desert Outpost"
	b.Theme = model.ThemeDesert

	require.NoError(t, s.SaveWorld(ctx, a))
	require.NoError(t, s.SaveWorld(ctx, b))

	worlds, err := s.ListWorlds(ctx)
	require.NoError(t, err)
	require.Len(t, worlds, 2)

	ids := []string{worlds[0].ID, worlds[1].ID}
	assert.Contains(t, ids, "mystic-forest")
	assert.Contains(t, ids, "desert-outpost")
}

func TestDeleteWorld(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveWorld(ctx, sampleWorld()))
	require.NoError(t, s.SaveRun(ctx, sampleRun("run-1", time.Now())))

	require.NoError(t, s.DeleteWorld(ctx, "mystic-forest"))

	_, err := s.GetWorld(ctx, "mystic-forest")
	assert.True(t, errors.Is(err, ErrNotFound))

	runs, err := s.ListRuns(ctx, "mystic-forest")
	require.NoError(t, err)
	assert.Empty(t, runs)

	assert.True(t, errors.Is(s.DeleteWorld(ctx, "mystic-forest"), ErrNotFound))
}

func sampleRun(id string, started time.Time) *model.GenerationManifest {
	return &model.GenerationManifest{
		RunID:       id,
		WorldID:     "mystic-forest",
		WorldName:   "Mystic Forest",
		Theme:       model.ThemeForest,
		State:       model.RunDone,
		StartedAt:   started,
		FinishedAt:  started.Add(time.Second),
		SourceFiles: []string{"generated/mystic-forest/classes/MysticForestBaseNPC.h"},
		RecordFiles: []string{"generated/mystic-forest/records/world.record.json"},
		SceneFile:   "generated/mystic-forest/scene/MysticForest_Level.scene.yaml",
	}
}

func TestRunHistory(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveRun(ctx, sampleRun("run-1", base)))
	require.NoError(t, s.SaveRun(ctx, sampleRun("run-2", base.Add(time.Minute))))

	runs, err := s.ListRuns(ctx, "mystic-forest")
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Most recent first.
	assert.Equal(t, "run-2", runs[0].RunID)
	assert.Equal(t, "run-1", runs[1].RunID)
	assert.Equal(t, model.RunDone, runs[0].State)
	assert.Equal(t, 3, runs[0].ArtifactCount)
}

func TestListRuns_UnknownWorld(t *testing.T) {
	s := openTestStore(t)

	runs, err := s.ListRuns(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, runs)
}
