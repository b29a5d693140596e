package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/ak0r/zero-theme/cmd/tools"
	"github.com/ak0r/zero-theme/config"
	"github.com/ak0r/zero-theme/content"
	"github.com/ak0r/zero-theme/filesystem"
	"github.com/ak0r/zero-theme/util/slug"
)

// entryCmd represents the new command
var entryCmd = &cobra.Command{
	Use:   "new",
	Short: "Interactive process to scaffold a new entry",
	RunE:  runNewEntry,
}

func init() {
	rootCmd.AddCommand(entryCmd)

	entryCmd.Flags().Bool("no-edit", false, "Do not open the editor afterwards")
}

var errEntryExists = errors.New("entry already exists")

// entryFrontMatter is the frontmatter written for a new entry.
type entryFrontMatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description,omitempty"`
	Date        string   `yaml:"date"`
	Author      string   `yaml:"author,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
	Draft       bool     `yaml:"draft"`
}

func runNewEntry(cmd *cobra.Command, args []string) error {
	if !config.HasContentDirectory() {
		return config.ErrNoContentDirectory
	}

	noEdit, err := cmd.Flags().GetBool("no-edit")
	if err != nil {
		return err
	}

	var collection string
	{
		prompt := &survey.Select{
			Message: "Collection",
			Options: []string{
				content.Posts.String(),
				content.Projects.String(),
				content.Docs.String(),
				content.Gallery.String(),
			},
			Default: content.Posts.String(),
		}
		err := survey.AskOne(prompt, &collection)
		exitOnInterrupt(err)
	}

	title := ""
	{
		prompt := survey.Input{
			Message: "Title",
		}
		err := survey.AskOne(
			&prompt,
			&title,
			survey.WithValidator(survey.Required),
			survey.WithValidator(
				func(ans interface{}) error {
					if slug.Make(ans.(string)) == "" {
						return fmt.Errorf("empty slug, try letters and digits")
					}
					return nil
				},
			),
		)
		exitOnInterrupt(err)
	}

	var description string
	{
		prompt := survey.Input{
			Message: "Description (optional)",
		}
		err := survey.AskOne(&prompt, &description)
		exitOnInterrupt(err)
	}

	var tags []string
	{
		prompt := survey.Input{
			Message: "Tag",
		}
		for {
			tag := ""
			err := survey.AskOne(&prompt, &tag)
			exitOnInterrupt(err)

			tag = strings.TrimSpace(tag)
			if len(tag) > 0 {
				tags = append(tags, tag)
				continue
			}

			break
		}
	}

	author := os.Getenv("USER")
	if configured := config.SiteAuthor(); configured != "" {
		author = configured
	}
	{
		prompt := survey.Input{
			Message: "Author",
			Default: author,
		}
		err := survey.AskOne(&prompt, &author)
		exitOnInterrupt(err)
	}

	fm := entryFrontMatter{
		Title:       title,
		Description: strings.TrimSpace(description),
		Date:        time.Now().Format("2006-01-02"),
		Author:      author,
		Tags:        tags,
		Draft:       true,
	}

	// Review front matter
	{
		if err := writeFrontMatter(os.Stdout, fm); err != nil {
			return err
		}

		isConfirmed := true
		prompt := &survey.Confirm{
			Message: "Proceed",
			Default: isConfirmed,
		}
		err := survey.AskOne(prompt, &isConfirmed)
		exitOnInterrupt(err)

		if !isConfirmed {
			return nil
		}
	}

	entryFile, err := scaffoldEntry(config.ContentDirectory(), content.Collection(collection), fm)
	if err != nil {
		return err
	}

	log.Printf("created entry '%s'", entryFile)

	if noEdit {
		return nil
	}

	return tools.RunEditor(entryFile)
}

// scaffoldEntry creates a folder-based entry below the collection directory
// with an empty attachments directory and returns the path of its index file.
func scaffoldEntry(contentDirectory string, c content.Collection, fm entryFrontMatter) (string, error) {
	entryDir := filepath.Join(contentDirectory, c.String(), slug.Make(fm.Title))
	entryFile := filepath.Join(entryDir, "index.md")

	if _, err := os.Stat(entryFile); err == nil {
		return "", fmt.Errorf("%w: %s", errEntryExists, entryFile)
	}

	if err := filesystem.CreateDirectoryIfNotExists(filepath.Join(entryDir, content.AttachmentsDirectory)); err != nil {
		return "", fmt.Errorf("could not create entry directory: %w", err)
	}

	f, err := os.Create(entryFile)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := writeFrontMatter(f, fm); err != nil {
		return "", err
	}

	return entryFile, nil
}

func writeFrontMatter(f io.Writer, fm entryFrontMatter) error {
	fmt.Fprintln(f, "---")

	enc := yaml.NewEncoder(f)
	if err := enc.Encode(fm); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}

	fmt.Fprintln(f, "---")

	return nil
}

func exitOnInterrupt(err error) {
	if err == terminal.InterruptErr {
		os.Exit(1)
	}
}
