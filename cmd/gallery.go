package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ak0r/zero-theme/config"
	"github.com/ak0r/zero-theme/content"
	"github.com/ak0r/zero-theme/filesystem"
	"github.com/ak0r/zero-theme/images"
)

// galleryCmd represents the gallery command
var galleryCmd = &cobra.Command{
	Use:   "gallery ENTRY-DIRECTORY PHOTO...",
	Short: "Scale pictures into the attachments of an entry",
	Long: `Takes paths of image files or folders which are then searched
for image files. All found images are scaled and copied to the attachments
directory of the given folder-based entry.`,

	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 2 {
			return fmt.Errorf("entry directory and at least one photo path required")
		}

		hasError := false

		for _, arg := range args {
			fi, err := os.Stat(arg)
			if err != nil {
				if os.IsNotExist(err) {
					fmt.Fprintf(os.Stderr, "argument %s: does not exist\n", arg)
				} else {
					fmt.Fprintf(os.Stderr, "argument %s: %s\n", arg, err)
				}
				hasError = true
				continue
			}

			if !fi.IsDir() && !fi.Mode().IsRegular() {
				fmt.Fprintf(os.Stderr, "argument %s: neither directory nor file\n", arg)
				hasError = true
				continue
			}
		}

		if hasError {
			return fmt.Errorf("erroneous arguments")
		}

		return nil
	},

	RunE: runGallery,
}

func init() {
	rootCmd.AddCommand(galleryCmd)

	galleryCmd.Flags().IntP("size", "s", config.DefaultMaxImageWidth(), "Maximum width of the scaled images")
	galleryCmd.Flags().Bool("append", false, "Append embeds of the imported images to the entry")
}

var galleryExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

func runGallery(cmd *cobra.Command, args []string) error {
	maxWidth, err := cmd.Flags().GetInt("size")
	if err != nil {
		return err
	}

	appendEmbeds, err := cmd.Flags().GetBool("append")
	if err != nil {
		return err
	}

	entryDir := args[0]
	entryFile := filepath.Join(entryDir, "index.md")
	if _, err := os.Stat(entryFile); err != nil {
		return fmt.Errorf("'%s' is not a folder-based entry: %w", entryDir, err)
	}

	names, err := importPhotos(entryDir, args[1:], maxWidth)
	if err != nil {
		return err
	}

	fmt.Printf("imported %d images\n", len(names))

	if !appendEmbeds {
		prompt := &survey.Confirm{
			Message: fmt.Sprintf("Append images to document (%s)", entryFile),
			Default: false,
		}
		err := survey.AskOne(prompt, &appendEmbeds)
		exitOnInterrupt(err)
	}

	if appendEmbeds {
		if err := appendImageEmbeds(entryFile, names); err != nil {
			return fmt.Errorf("add to document: %w", err)
		}
	}

	return nil
}

// importPhotos scales all images found below sources into the attachments
// directory of entryDir and returns the sorted file names written.
func importPhotos(entryDir string, sources []string, maxWidth int) ([]string, error) {
	filePaths, err := filesystem.GatherFiles(sources, galleryExtensions)
	if err != nil {
		return nil, fmt.Errorf("scanning files: %w", err)
	} else if len(filePaths) == 0 {
		return nil, fmt.Errorf("no files")
	}

	outputDir := filepath.Join(entryDir, content.AttachmentsDirectory)
	if err := filesystem.CreateDirectoryIfNotExists(outputDir); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	names := make([]string, len(filePaths))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for i, path := range filePaths {
		i, path := i, path

		srcExt := filepath.Ext(path)
		name := strings.TrimSuffix(filepath.Base(path), srcExt) + destinationImageExtension(srcExt)
		names[i] = name

		g.Go(func() error {
			dstPath := filepath.Join(outputDir, name)
			if err := images.Optimize(path, dstPath, maxWidth); err != nil {
				return fmt.Errorf("scale '%s': %w", path, err)
			}

			fmt.Printf("scaled: %s\n    to: %s\n", path, dstPath)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(names)

	return names, nil
}

func destinationImageExtension(ext string) string {
	ext = strings.ToLower(ext)
	if ext == ".jpeg" {
		ext = ".jpg"
	}
	return ext
}

// appendImageEmbeds appends one paragraph of image embeds to the entry, which
// renders as an image grid.
func appendImageEmbeds(entryFile string, names []string) error {
	f, err := os.OpenFile(entryFile, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}

	defer func() { _ = f.Close() }()

	fmt.Fprintln(f)
	for _, name := range names {
		fmt.Fprintf(f, "![[%s]]\n", name)
	}

	return nil
}
