// Package model provides the shared data model for worldforge.
// A WorldModel is the validated, in-memory description of one generated
// world; it is produced by internal/validate and consumed read-only by the
// layout planner and the emitters. Types here are foundational data
// structures with no dependencies on other worldforge packages.
package model

import (
	"fmt"
	"time"
)

// =============================================================================
// ENUMERATED TAGS
// =============================================================================

// Theme classifies a world's overall environment style.
type Theme string

const (
	ThemeForest  Theme = "forest"
	ThemeDesert  Theme = "desert"
	ThemeUrban   Theme = "urban"
	ThemeAlien   Theme = "alien"
	ThemeDefault Theme = "default"
)

// ParseTheme maps an arbitrary tag onto a known theme.
// Unknown or empty tags fall back to ThemeDefault.
func ParseTheme(s string) Theme {
	switch Theme(s) {
	case ThemeForest, ThemeDesert, ThemeUrban, ThemeAlien:
		return Theme(s)
	default:
		return ThemeDefault
	}
}

// Role classifies an NPC's disposition toward the player.
type Role string

const (
	RoleFriendly Role = "friendly"
	RoleNeutral  Role = "neutral"
	RoleHostile  Role = "hostile"
)

// ParseRole maps an arbitrary tag onto a known role, defaulting to friendly.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleNeutral, RoleHostile:
		return Role(s)
	default:
		return RoleFriendly
	}
}

// =============================================================================
// ENTITY MODELS
// =============================================================================

// Coordinate is a 3-D position in engine units. Z is height.
type Coordinate struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// NPCModel describes one non-player character. NPCs are exclusively owned
// by their WorldModel and have no identity outside it.
type NPCModel struct {
	Name      string   `json:"name"`
	Role      Role     `json:"role"`
	Dialogue  []string `json:"dialogue"`
	Health    int      `json:"health"`
	Attack    int      `json:"attack"`
	Defense   int      `json:"defense"`
	Inventory []string `json:"inventory,omitempty"`
}

// QuestModel describes one quest. Rewards are always the flattened,
// human-readable form produced by validation; nested reward shapes never
// survive past the validator.
type QuestModel struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Objectives  []string `json:"objectives"`
	Rewards     []string `json:"rewards"`
}

// EnvironmentModel describes world-level environment settings. Asset
// references are opaque labels, never file paths.
type EnvironmentModel struct {
	Theme      Theme    `json:"theme"`
	Terrain    []string `json:"terrain,omitempty"`
	Lighting   string   `json:"lighting"`
	Weather    string   `json:"weather"`
	Atmosphere string   `json:"atmosphere"`
	Assets     []string `json:"assets,omitempty"`
}

// WorldModel is the root entity of one generation run. The compiler only
// reads it; all generated artifacts are derived, never written back.
type WorldModel struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Theme       Theme            `json:"theme"`
	CreatedAt   time.Time        `json:"created_at,omitempty"`
	NPCs        []NPCModel       `json:"npcs"`
	Quests      []QuestModel     `json:"quests"`
	Environment EnvironmentModel `json:"environment"`
}

// =============================================================================
// VALIDATION REJECTIONS
// =============================================================================

// EntityKind identifies which part of the raw model a rejection refers to.
type EntityKind string

const (
	KindNPC    EntityKind = "npc"
	KindQuest  EntityKind = "quest"
	KindReward EntityKind = "reward"
	KindWorld  EntityKind = "world"
)

// Rejection records one non-fatal validation failure. Index is the ordinal
// position of the offending element in its container, or -1 when the
// rejection applies to the container itself.
type Rejection struct {
	Kind   EntityKind `json:"kind"`
	Index  int        `json:"index"`
	Reason string     `json:"reason"`
}

func (r Rejection) String() string {
	return fmt.Sprintf("%s[%d]: %s", r.Kind, r.Index, r.Reason)
}

// =============================================================================
// PLACEMENT KEYS
// =============================================================================

// NPCKey returns the layout map key for the NPC at ordinal i.
func NPCKey(i int) string { return fmt.Sprintf("npc:%d", i) }

// QuestKey returns the layout map key for the quest marker at ordinal i.
func QuestKey(i int) string { return fmt.Sprintf("quest:%d", i) }
