package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/benchtop-labs/teardown/internal/config"
)

const initConfigTemplate = `# teardown project configuration
steps_file: steps.json
parts_file: parts.json
step_images_dir: images/steps
part_images_dir: images/parts

ui:
  port: 8765
  watch: false
`

const initStepsTemplate = `{
  "version": 1,
  "steps": [
    {
      "id": "open-case",
      "title": "Open the case",
      "description": "Remove the four screws on the back and lift the cover.",
      "elements": ["screw-m3", "back-cover"],
      "images": ["open-case.jpg"]
    },
    {
      "id": "disconnect-battery",
      "title": "Disconnect the battery",
      "description": "Unplug the battery connector before touching anything else.",
      "depends_on": ["open-case"],
      "elements": ["battery"],
      "images": ["disconnect-battery.jpg"]
    }
  ]
}
`

const initPartsTemplate = `{
  "version": 1,
  "parts": [
    {
      "id": "screw-m3",
      "name": "M3 screw",
      "description": "Cross-head, 8 mm.",
      "images": ["screw-m3.jpg"]
    },
    {
      "id": "back-cover",
      "name": "Back cover",
      "images": ["back-cover.jpg"]
    },
    {
      "id": "battery",
      "name": "Battery",
      "description": "Handle with care; do not puncture.",
      "images": ["battery.jpg"]
    }
  ]
}
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new teardown project",
		Long: `Initialize a new teardown project with the default layout.

This creates:
  - teardown.yaml configuration file
  - steps.json with two sample steps
  - parts.json with sample parts
  - images/steps/ and images/parts/ directories for photographs`,
		Example: `  # Initialize in the current directory
  teardown init

  # Initialize in a new directory
  teardown init my-teardown

  # Overwrite existing files
  teardown init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	styles := r.Styles()

	if dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, "teardown.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("teardown.yaml already exists. Use --force to overwrite")
	}

	files := []struct {
		path    string
		content string
	}{
		{configPath, initConfigTemplate},
		{filepath.Join(dir, config.DefaultStepsFile), initStepsTemplate},
		{filepath.Join(dir, config.DefaultPartsFile), initPartsTemplate},
	}
	for _, f := range files {
		if _, err := os.Stat(f.path); err == nil && !force {
			continue
		}
		if err := os.WriteFile(f.path, []byte(f.content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.path, err)
		}
	}

	for _, sub := range []string{config.DefaultStepImagesDir, config.DefaultPartImagesDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o750); err != nil {
			return fmt.Errorf("failed to create %s: %w", sub, err)
		}
	}

	for _, f := range []string{"teardown.yaml", config.DefaultStepsFile, config.DefaultPartsFile, config.DefaultStepImagesDir + "/", config.DefaultPartImagesDir + "/"} {
		r.Printf("  %s %s\n", styles.Success.Render("✓"), f)
	}

	r.Println("")
	r.Println(styles.Success.Render("Teardown project initialized!"))
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Describe your device's parts in parts.json")
	r.Println("  2. Describe the disassembly steps in steps.json")
	r.Println("  3. Drop photographs into images/steps/ and images/parts/")
	r.Println("  4. Run 'teardown guide' to start the walkthrough")

	return nil
}
