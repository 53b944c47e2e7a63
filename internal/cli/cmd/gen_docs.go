package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/bnema/keepmeawake/internal/infrastructure/config"
)

const docsDirPerm = 0o755

// docFormat renders the command tree into dir.
type docFormat struct {
	ext        string
	defaultDir func() (string, error)
	generate   func(root *cobra.Command, dir string) error
}

var docFormats = map[string]docFormat{
	"man": {
		ext:        ".1",
		defaultDir: config.GetManDir,
		generate: func(root *cobra.Command, dir string) error {
			return doc.GenManTree(root, manHeader(), dir)
		},
	},
	"markdown": {
		ext:        ".md",
		defaultDir: func() (string, error) { return "docs", nil },
		generate:   doc.GenMarkdownTree,
	},
}

var (
	genDocsOutputDir string
	genDocsFormat    string
)

var genDocsCmd = &cobra.Command{
	Use:   "gen-docs",
	Short: "Generate man pages or markdown for every command",
	Long: `Generate one page per command: keepmeawake itself and get, set,
toggle, quit, shortcuts, config and version.

Man pages go to $XDG_DATA_HOME/man/man1 by default so 'man keepmeawake-set'
works right away (run 'mandb' if it does not). Markdown goes to ./docs.`,
	Args: cobra.NoArgs,
}

func init() {
	// RunE is assigned here to break the genDocsCmd <-> generateDocs
	// initialization cycle.
	genDocsCmd.RunE = runGenDocs
	rootCmd.AddCommand(genDocsCmd)
	genDocsCmd.Flags().StringVarP(&genDocsOutputDir, "output", "o", "", "Output directory (default depends on format)")
	genDocsCmd.Flags().StringVarP(&genDocsFormat, "format", "f", "man", "Output format: man, markdown")
}

func runGenDocs(_ *cobra.Command, _ []string) error {
	files, err := generateDocs(rootCmd, genDocsFormat, genDocsOutputDir)
	if err != nil {
		return err
	}
	fmt.Printf("Generated %d %s pages:\n", len(files), genDocsFormat)
	for _, f := range files {
		fmt.Printf("  - %s\n", f)
	}
	return nil
}

// generateDocs writes the pages of root in format to dir and returns the
// generated files. gen-docs itself and the help/completion commands are
// left out.
func generateDocs(root *cobra.Command, format, dir string) ([]string, error) {
	f, ok := docFormats[format]
	if !ok {
		return nil, fmt.Errorf("unsupported format %q (use: man, markdown)", format)
	}
	if dir == "" {
		var err error
		if dir, err = f.defaultDir(); err != nil {
			return nil, fmt.Errorf("resolve %s directory: %w", format, err)
		}
	}
	if err := os.MkdirAll(dir, docsDirPerm); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	genDocsCmd.Hidden = true
	defer func() { genDocsCmd.Hidden = false }()
	root.DisableAutoGenTag = true
	root.InitDefaultCompletionCmd()
	for _, c := range root.Commands() {
		if c.Name() == "completion" {
			c.Hidden = true
		}
	}

	if err := f.generate(root, dir); err != nil {
		return nil, fmt.Errorf("generate %s docs: %w", format, err)
	}

	files, err := filepath.Glob(filepath.Join(dir, root.Name()+"*"+f.ext))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func manHeader() *doc.GenManHeader {
	date := time.Now()
	if buildInfo.BuildDate != "" {
		if t, err := time.Parse(time.RFC3339, buildInfo.BuildDate); err == nil {
			date = t
		}
	}
	return &doc.GenManHeader{
		Title:   "KEEPMEAWAKE",
		Section: "1",
		Source:  "keepmeawake " + buildInfo.Version,
		Manual:  "Keep Me Awake Manual",
		Date:    &date,
	}
}
