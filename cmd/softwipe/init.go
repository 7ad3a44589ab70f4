package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrianzap/softwipe/internal/config"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a softwipe configuration file",
		Long: `Generate a documented softwipe configuration file with sensible defaults.

By default, creates softwipe.yaml in the current directory with full
documentation. Use --interactive for a guided setup wizard.

Examples:
  # Create softwipe.yaml in current directory
  softwipe init

  # Custom output path
  softwipe init --config custom.yaml

  # Overwrite existing file
  softwipe init --force

  # Generate smaller config with essential options only
  softwipe init --minimal

  # Interactive setup wizard
  softwipe init --interactive
  softwipe init -i`,
		RunE: runInit,
	}

	cmd.Flags().StringP("config", "c", "softwipe.yaml",
		"Output path for the config file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing config file")
	cmd.Flags().Bool("minimal", false,
		"Generate minimal config with essential options only")
	cmd.Flags().BoolP("interactive", "i", false,
		"Interactive setup wizard")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	force, _ := cmd.Flags().GetBool("force")
	minimal, _ := cmd.Flags().GetBool("minimal")
	interactive, _ := cmd.Flags().GetBool("interactive")

	language := config.LanguageC
	jobs := config.DefaultJobs

	if interactive {
		var err error
		var interactiveConfigPath string
		language, jobs, interactiveConfigPath, err = runInteractiveSetup(configPath)
		if err != nil {
			return err
		}
		configPath = interactiveConfigPath
	}

	// Check if file exists
	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
		}
	}

	// Check if parent directory exists
	dir := filepath.Dir(configPath)
	if dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
	}

	var content string
	if minimal {
		content = config.GetMinimalConfigTemplate()
	} else {
		content = config.GetFullConfigTemplate(language, jobs)
	}

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	displayPath := configPath
	if absPath, err := filepath.Abs(configPath); err == nil {
		displayPath = absPath
	}
	fmt.Printf("Created %s\n", displayPath)
	fmt.Println("\nRun 'softwipe score <programdir>' to score your program.")

	return nil
}

func runInteractiveSetup(defaultConfigPath string) (config.Language, int, string, error) {
	fmt.Println()
	fmt.Println("softwipe Configuration Setup")
	fmt.Println("============================")
	fmt.Println()

	// Language selection
	languages := []struct {
		Label string
		Value config.Language
	}{
		{"C", config.LanguageC},
		{"C++", config.LanguageCPP},
	}

	languageTemplates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "\U0001F449 {{ .Label | cyan }}",
		Inactive: "   {{ .Label | white }}",
		Selected: "\U00002705 {{ .Label | green }}",
	}

	languagePrompt := promptui.Select{
		Label:     "What language is the program written in?",
		Items:     languages,
		Templates: languageTemplates,
	}

	languageIdx, _, err := languagePrompt.Run()
	if err != nil {
		return "", 0, "", fmt.Errorf("language selection cancelled: %w", err)
	}
	selectedLanguage := languages[languageIdx].Value

	fmt.Println()

	// Concurrency selection
	jobLevels := []struct {
		Label       string
		Description string
		Value       int
	}{
		{"Standard (recommended)", "Up to 6 tools run at once", config.DefaultJobs},
		{"Conserving", "Up to 2 tools run at once", 2},
		{"Sequential", "One tool at a time", 1},
	}

	jobTemplates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "\U0001F449 {{ .Label | cyan }} - {{ .Description | faint }}",
		Inactive: "   {{ .Label | white }} - {{ .Description | faint }}",
		Selected: "\U00002705 {{ .Label | green }}",
	}

	jobPrompt := promptui.Select{
		Label:     "How many tools may run concurrently?",
		Items:     jobLevels,
		Templates: jobTemplates,
	}

	jobIdx, _, err := jobPrompt.Run()
	if err != nil {
		return "", 0, "", fmt.Errorf("concurrency selection cancelled: %w", err)
	}
	selectedJobs := jobLevels[jobIdx].Value

	fmt.Println()

	// Output path prompt
	outputPrompt := promptui.Prompt{
		Label:   "Output file path",
		Default: defaultConfigPath,
	}

	outputPath, err := outputPrompt.Run()
	if err != nil {
		return "", 0, "", fmt.Errorf("output path input cancelled: %w", err)
	}

	if outputPath == "" {
		outputPath = defaultConfigPath
	}

	fmt.Println()
	fmt.Printf("Creating %s... ", outputPath)

	return selectedLanguage, selectedJobs, outputPath, nil
}
