// Package validate normalizes and checks a raw world model before
// generation. The raw input comes from an external analyzer and is fully
// untrusted: every field is coerced or defaulted, and malformed NPCs and
// quests are dropped individually rather than aborting the run. A single
// bad entity must never block an otherwise-valid world.
package validate

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"worldforge/internal/ident"
	"worldforge/internal/logging"
	"worldforge/internal/model"
)

// Default values injected for missing or malformed fields. Stats mirror
// the analyzer's documented defaults.
const (
	defaultWorldName = "Generated World"
	defaultHealth    = 100
	defaultAttack    = 10
	defaultDefense   = 5
)

var defaultDialogue = []string{"Hello!", "How can I help?"}

// Validate checks and normalizes a raw world model. It returns the
// validated WorldModel together with every non-fatal rejection collected
// along the way. The only error it can return is a *StructuralError, when
// raw is not a mapping at all.
//
// Validation never mutates raw; all repairs happen on the copy being
// built. Reward shapes are flattened here and nowhere else: downstream
// components always see rewards as a flat list of display strings.
func Validate(raw any) (*model.WorldModel, []model.Rejection, error) {
	timer := logging.StartTimer(logging.CategoryValidate, "Validate")
	defer timer.Stop()

	m, ok := raw.(map[string]any)
	if !ok {
		return nil, nil, &StructuralError{Got: fmt.Sprintf("%T", raw)}
	}

	var rejections []model.Rejection
	world := &model.WorldModel{
		Name:        stringOr(m["name"], defaultWorldName),
		Description: stringOr(m["description"], ""),
		Theme:       model.ParseTheme(stringOr(m["theme"], "")),
		CreatedAt:   timeOr(m["created_at"]),
	}

	world.ID = stringOr(m["id"], "")
	if world.ID == "" {
		// Stable fallback: derived from the display name, never random,
		// so regeneration of the same raw model targets the same subtree.
		world.ID = ident.Snake(world.Name)
		if world.ID == "" {
			world.ID = "generated_world"
		}
	}

	world.NPCs = validateNPCs(m["npcs"], &rejections)
	world.Quests = validateQuests(m["quests"], &rejections)
	world.Environment = validateEnvironment(m["environment"], world.Theme, &rejections)

	logging.Validate("world %q: %d NPCs, %d quests, %d rejections",
		world.ID, len(world.NPCs), len(world.Quests), len(rejections))

	return world, rejections, nil
}

// =============================================================================
// NPC VALIDATION
// =============================================================================

func validateNPCs(raw any, rejections *[]model.Rejection) []model.NPCModel {
	items, ok := asList(raw, model.KindNPC, rejections)
	if !ok {
		return nil
	}

	npcs := make([]model.NPCModel, 0, len(items))
	for i, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			reject(rejections, model.KindNPC, i, fmt.Sprintf("not an object (got %T)", item))
			continue
		}

		npc := model.NPCModel{
			Name:      stringOr(entry["name"], fmt.Sprintf("NPC_%d", i)),
			Role:      model.ParseRole(stringOr(entry["role"], stringOr(entry["type"], ""))),
			Dialogue:  stringList(entry["dialogue"]),
			Health:    intOr(entry["health"], defaultHealth),
			Attack:    intOr(entry["attack"], defaultAttack),
			Defense:   intOr(entry["defense"], defaultDefense),
			Inventory: stringList(entry["inventory"]),
		}
		if len(npc.Dialogue) == 0 {
			npc.Dialogue = append([]string(nil), defaultDialogue...)
		}
		npcs = append(npcs, npc)
	}
	return npcs
}

// =============================================================================
// QUEST VALIDATION
// =============================================================================

func validateQuests(raw any, rejections *[]model.Rejection) []model.QuestModel {
	items, ok := asList(raw, model.KindQuest, rejections)
	if !ok {
		return nil
	}

	quests := make([]model.QuestModel, 0, len(items))
	for i, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			reject(rejections, model.KindQuest, i, fmt.Sprintf("not an object (got %T)", item))
			continue
		}

		quest := model.QuestModel{
			Name:        stringOr(entry["name"], fmt.Sprintf("Quest_%d", i)),
			Description: stringOr(entry["description"], "Complete this quest"),
			Objectives:  stringList(entry["objectives"]),
			Rewards:     flattenRewards(entry["rewards"], i, rejections),
		}
		if len(quest.Objectives) == 0 {
			quest.Objectives = []string{"Complete " + quest.Name}
		}
		quests = append(quests, quest)
	}
	return quests
}

// flattenRewards resolves every accepted reward shape into the flat list
// of display strings the rest of the system expects. Accepted shapes:
//
//   - a list of strings (passed through)
//   - a structured mapping {gold, experience, items}
//   - a list mixing strings and structured mappings
//
// Unknown keys inside a structured mapping are ignored with a warning
// rejection rather than guessed at. This is the single place nested reward
// shapes are interpreted.
func flattenRewards(raw any, questIndex int, rejections *[]model.Rejection) []string {
	switch v := raw.(type) {
	case nil:
		return nil
	case []any:
		var out []string
		for _, item := range v {
			switch r := item.(type) {
			case string:
				out = append(out, r)
			case map[string]any:
				out = append(out, flattenRewardObject(r, questIndex, rejections)...)
			default:
				reject(rejections, model.KindReward, questIndex,
					fmt.Sprintf("unsupported reward element %T ignored", item))
			}
		}
		return out
	case map[string]any:
		return flattenRewardObject(v, questIndex, rejections)
	default:
		reject(rejections, model.KindReward, questIndex,
			fmt.Sprintf("unsupported reward shape %T ignored", raw))
		return nil
	}
}

func flattenRewardObject(obj map[string]any, questIndex int, rejections *[]model.Rejection) []string {
	var out []string

	// Fixed key order keeps the flattened list stable across runs.
	if v, present := obj["gold"]; present {
		out = append(out, fmt.Sprintf("%d Gold", intOr(v, 0)))
	}
	if v, present := obj["experience"]; present {
		out = append(out, fmt.Sprintf("%d XP", intOr(v, 0)))
	}
	if v, present := obj["items"]; present {
		out = append(out, stringList(v)...)
	}

	var unknown []string
	for key := range obj {
		switch key {
		case "gold", "experience", "items":
		default:
			unknown = append(unknown, key)
		}
	}
	// Sorted so the rejection list is stable across runs.
	sort.Strings(unknown)
	for _, key := range unknown {
		reject(rejections, model.KindReward, questIndex,
			fmt.Sprintf("unknown reward key %q ignored", key))
	}
	return out
}

// =============================================================================
// ENVIRONMENT VALIDATION
// =============================================================================

func validateEnvironment(raw any, worldTheme model.Theme, rejections *[]model.Rejection) model.EnvironmentModel {
	env := model.EnvironmentModel{Theme: worldTheme}

	entry, ok := raw.(map[string]any)
	if !ok {
		if raw != nil {
			reject(rejections, model.KindWorld, -1,
				fmt.Sprintf("environment is not an object (got %T), using theme defaults", raw))
		}
		return env
	}

	if theme := stringOr(entry["theme"], ""); theme != "" {
		env.Theme = model.ParseTheme(theme)
	}
	env.Terrain = stringList(entry["terrain"])
	env.Lighting = stringOr(entry["lighting"], "standard")
	env.Weather = stringOr(entry["weather"], "clear")
	env.Atmosphere = stringOr(entry["atmosphere"], "")
	env.Assets = stringList(entry["assets"])
	return env
}

// =============================================================================
// COERCION HELPERS
// =============================================================================

// asList coerces raw into an ordered sequence. Any other shape is treated
// as empty per the container rule, with one rejection at index -1 when the
// container was present but malformed.
func asList(raw any, kind model.EntityKind, rejections *[]model.Rejection) ([]any, bool) {
	if raw == nil {
		return nil, false
	}
	items, ok := raw.([]any)
	if !ok {
		reject(rejections, kind, -1, fmt.Sprintf("container is not a list (got %T), treated as empty", raw))
		return nil, false
	}
	return items, true
}

func reject(rejections *[]model.Rejection, kind model.EntityKind, index int, reason string) {
	logging.ValidateDebug("rejected %s[%d]: %s", kind, index, reason)
	*rejections = append(*rejections, model.Rejection{Kind: kind, Index: index, Reason: reason})
}

// stringOr returns v as a string, or def when v is missing or not a string.
func stringOr(v any, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

// intOr coerces v to a non-negative int. JSON numbers arrive as float64;
// numeric strings are accepted as a courtesy to sloppy analyzers. Anything
// else, and any negative value, falls back to def (clamped at 0).
func intOr(v any, def int) int {
	if def < 0 {
		def = 0
	}
	switch n := v.(type) {
	case int:
		return clampNonNegative(n, def)
	case int64:
		return clampNonNegative(int(n), def)
	case float64:
		return clampNonNegative(int(n), def)
	case string:
		if parsed, err := strconv.Atoi(n); err == nil {
			return clampNonNegative(parsed, def)
		}
		return def
	default:
		return def
	}
}

func clampNonNegative(n, def int) int {
	if n < 0 {
		return def
	}
	return n
}

// stringList coerces v into a list of non-empty strings, silently skipping
// non-string elements. A scalar string becomes a one-element list.
func stringList(v any) []string {
	switch items := v.(type) {
	case string:
		if items == "" {
			return nil
		}
		return []string{items}
	case []any:
		var out []string
		for _, item := range items {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// timeOr parses an RFC3339 timestamp, returning the zero time on any
// failure. The creation timestamp comes from the analyzer; injecting
// time.Now here would break idempotent regeneration.
func timeOr(v any) time.Time {
	s, ok := v.(string)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
