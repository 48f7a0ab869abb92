package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"worldforge/internal/compiler"
)

var validateCmd = &cobra.Command{
	Use:   "validate [model.json]",
	Short: "Validate a world model without generating artifacts",
	Long: `Runs the full validation and coercion pass on a raw world model
and reports what would be generated, including every entity that would be
dropped and every default that stands in for a malformed field.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	raw, err := readRawModel(args[0])
	if err != nil {
		return err
	}

	world, rejections, err := compiler.New(cfg).ValidateOnly(raw)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("World:   %s (%s, theme %s)\n", world.Name, world.ID, world.Theme)
	fmt.Printf("Valid:   %d NPCs, %d quests\n", len(world.NPCs), len(world.Quests))
	if len(rejections) == 0 {
		fmt.Println("Clean:   no entities dropped")
		return nil
	}

	fmt.Printf("Dropped: %d entities\n", len(rejections))
	for _, r := range rejections {
		fmt.Printf("  - %s\n", r)
	}
	return nil
}
