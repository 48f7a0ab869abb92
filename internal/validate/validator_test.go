package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldforge/internal/model"
)

func rawWorld() map[string]any {
	return map[string]any{
		"id":          "mystic-forest",
		"name":        "Mystic Forest",
		"description": "A small forest village",
		"theme":       "forest",
		"npcs": []any{
			map[string]any{
				"name":     "Village Elder",
				"role":     "friendly",
				"dialogue": []any{"Welcome, traveler."},
				"health":   float64(120),
				"attack":   float64(5),
				"defense":  float64(8),
			},
		},
		"quests": []any{
			map[string]any{
				"name":        "Gather Herbs",
				"description": "Collect herbs for the elder",
				"objectives":  []any{"Collect 5 herbs"},
				"rewards":     []any{"Herb Pouch"},
			},
		},
		"environment": map[string]any{
			"theme":      "forest",
			"terrain":    []any{"hills", "river"},
			"lighting":   "dappled",
			"weather":    "misty",
			"atmosphere": "serene",
		},
	}
}

// =============================================================================
// STRUCTURAL VALIDATION
// =============================================================================

func TestValidate_NotAMapping(t *testing.T) {
	for _, raw := range []any{nil, "a world", 42, []any{"npc"}} {
		_, _, err := Validate(raw)
		var serr *StructuralError
		require.ErrorAs(t, err, &serr, "input %#v", raw)
	}
}

func TestValidate_HappyPath(t *testing.T) {
	world, rejections, err := Validate(rawWorld())
	require.NoError(t, err)
	assert.Empty(t, rejections)

	assert.Equal(t, "mystic-forest", world.ID)
	assert.Equal(t, "Mystic Forest", world.Name)
	assert.Equal(t, model.ThemeForest, world.Theme)

	require.Len(t, world.NPCs, 1)
	npc := world.NPCs[0]
	assert.Equal(t, "Village Elder", npc.Name)
	assert.Equal(t, model.RoleFriendly, npc.Role)
	assert.Equal(t, []string{"Welcome, traveler."}, npc.Dialogue)
	assert.Equal(t, 120, npc.Health)
	assert.Equal(t, 5, npc.Attack)
	assert.Equal(t, 8, npc.Defense)

	require.Len(t, world.Quests, 1)
	assert.Equal(t, []string{"Herb Pouch"}, world.Quests[0].Rewards)

	assert.Equal(t, "dappled", world.Environment.Lighting)
	assert.Equal(t, []string{"hills", "river"}, world.Environment.Terrain)
}

func TestValidate_MissingIDDerivedFromName(t *testing.T) {
	raw := rawWorld()
	delete(raw, "id")

	world, _, err := Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, "mystic_forest", world.ID)

	// Fully empty input still yields a usable identity.
	world2, _, err := Validate(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "Generated World", world2.Name)
	assert.Equal(t, "generated_world", world2.ID)
}

// =============================================================================
// PER-ELEMENT RECOVERY
// =============================================================================

func TestValidate_BareStringQuestDropped(t *testing.T) {
	raw := rawWorld()
	raw["quests"] = []any{
		map[string]any{"name": "First"},
		"find the sword", // malformed: bare string instead of object
		map[string]any{"name": "Third"},
	}

	world, rejections, err := Validate(raw)
	require.NoError(t, err)

	require.Len(t, world.Quests, 2)
	assert.Equal(t, "First", world.Quests[0].Name)
	assert.Equal(t, "Third", world.Quests[1].Name)

	require.Len(t, rejections, 1)
	assert.Equal(t, model.KindQuest, rejections[0].Kind)
	assert.Equal(t, 1, rejections[0].Index)
}

func TestValidate_NonListContainersTreatedAsEmpty(t *testing.T) {
	raw := rawWorld()
	raw["npcs"] = "not a list"
	raw["quests"] = map[string]any{"oops": true}

	world, rejections, err := Validate(raw)
	require.NoError(t, err)

	assert.Empty(t, world.NPCs)
	assert.Empty(t, world.Quests)
	assert.Len(t, rejections, 2)
	for _, r := range rejections {
		assert.Equal(t, -1, r.Index)
	}
}

func TestValidate_MalformedNPCDropped(t *testing.T) {
	raw := rawWorld()
	raw["npcs"] = []any{
		map[string]any{"name": "Keeper"},
		float64(7),
		nil,
	}

	world, rejections, err := Validate(raw)
	require.NoError(t, err)

	require.Len(t, world.NPCs, 1)
	assert.Equal(t, "Keeper", world.NPCs[0].Name)
	assert.Len(t, rejections, 2)
}

// =============================================================================
// DEFAULTING AND COERCION
// =============================================================================

func TestValidate_NPCDefaults(t *testing.T) {
	raw := rawWorld()
	raw["npcs"] = []any{map[string]any{}}

	world, _, err := Validate(raw)
	require.NoError(t, err)

	npc := world.NPCs[0]
	assert.Equal(t, "NPC_0", npc.Name)
	assert.Equal(t, model.RoleFriendly, npc.Role)
	assert.Equal(t, []string{"Hello!", "How can I help?"}, npc.Dialogue)
	assert.Equal(t, 100, npc.Health)
	assert.Equal(t, 10, npc.Attack)
	assert.Equal(t, 5, npc.Defense)
}

func TestValidate_StatCoercion(t *testing.T) {
	raw := rawWorld()
	raw["npcs"] = []any{map[string]any{
		"name":    "Brute",
		"health":  "250",           // numeric string accepted
		"attack":  float64(-5),     // negative falls back to default
		"defense": []any{"broken"}, // wrong type falls back to default
	}}

	world, _, err := Validate(raw)
	require.NoError(t, err)

	npc := world.NPCs[0]
	assert.Equal(t, 250, npc.Health)
	assert.Equal(t, 10, npc.Attack)
	assert.Equal(t, 5, npc.Defense)
}

func TestValidate_RoleFallsBackToTypeKey(t *testing.T) {
	raw := rawWorld()
	raw["npcs"] = []any{map[string]any{"name": "Bandit", "type": "hostile"}}

	world, _, err := Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, model.RoleHostile, world.NPCs[0].Role)
}

func TestValidate_ObjectivesSynthesizedFromName(t *testing.T) {
	raw := rawWorld()
	raw["quests"] = []any{map[string]any{"name": "Slay the Wyrm"}}

	world, _, err := Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Complete Slay the Wyrm"}, world.Quests[0].Objectives)
}

func TestValidate_CreatedAtParsing(t *testing.T) {
	raw := rawWorld()
	raw["created_at"] = "2026-08-20T10:30:00Z"

	world, _, err := Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC), world.CreatedAt)

	raw["created_at"] = "yesterday"
	world, _, err = Validate(raw)
	require.NoError(t, err)
	assert.True(t, world.CreatedAt.IsZero())
}

// =============================================================================
// REWARD NORMALIZATION
// =============================================================================

func TestValidate_StructuredRewardFlattened(t *testing.T) {
	raw := rawWorld()
	raw["quests"] = []any{map[string]any{
		"name": "Bounty",
		"rewards": map[string]any{
			"gold":       float64(50),
			"experience": float64(100),
			"items":      []any{"x"},
		},
	}}

	world, rejections, err := Validate(raw)
	require.NoError(t, err)
	assert.Empty(t, rejections)
	assert.Equal(t, []string{"50 Gold", "100 XP", "x"}, world.Quests[0].Rewards)
}

func TestValidate_MixedRewardList(t *testing.T) {
	raw := rawWorld()
	raw["quests"] = []any{map[string]any{
		"name": "Bounty",
		"rewards": []any{
			"Ancient Blade",
			map[string]any{"gold": float64(25)},
		},
	}}

	world, _, err := Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ancient Blade", "25 Gold"}, world.Quests[0].Rewards)
}

func TestValidate_UnknownRewardKeyIgnoredWithWarning(t *testing.T) {
	raw := rawWorld()
	raw["quests"] = []any{map[string]any{
		"name": "Bounty",
		"rewards": map[string]any{
			"gold":       float64(10),
			"reputation": float64(5), // unknown key: ignored, warned
		},
	}}

	world, rejections, err := Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"10 Gold"}, world.Quests[0].Rewards)

	require.Len(t, rejections, 1)
	assert.Equal(t, model.KindReward, rejections[0].Kind)
	assert.Contains(t, rejections[0].Reason, "reputation")
}

func TestValidate_NoNestedRewardShapesSurvive(t *testing.T) {
	raw := rawWorld()
	raw["quests"] = []any{map[string]any{
		"name":    "Bounty",
		"rewards": map[string]any{"gold": "not a number"},
	}}

	world, _, err := Validate(raw)
	require.NoError(t, err)
	// Bad number coerces to the default, never passes through nested.
	assert.Equal(t, []string{"0 Gold"}, world.Quests[0].Rewards)
}

// =============================================================================
// EMPTY WORLD
// =============================================================================

func TestValidate_EmptyWorldIsLegal(t *testing.T) {
	world, rejections, err := Validate(map[string]any{
		"id":   "empty",
		"name": "Empty World",
	})
	require.NoError(t, err)
	assert.Empty(t, rejections)
	assert.Empty(t, world.NPCs)
	assert.Empty(t, world.Quests)
	assert.Equal(t, model.ThemeDefault, world.Theme)
	assert.Equal(t, model.ThemeDefault, world.Environment.Theme)
}
