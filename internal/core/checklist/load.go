package checklist

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/sharo-jef/checklist-sub001/internal/core/logging"
)

//go:embed content/default.yaml
var builtinContent []byte

// LoadOptions selects which content sources make up the library.
type LoadOptions struct {
	// IncludeBuiltin loads the bundled checklists before any user files.
	IncludeBuiltin bool
	// Paths are user content files, either literal paths or doublestar glob
	// patterns such as ~/.config/checklist/content/**/*.yaml (already
	// expanded for ~ by the caller).
	Paths []string
}

type contentFile struct {
	Categories []Category `yaml:"categories"`
}

// Load reads and merges all configured content sources into a validated
// Library. A user category with the same ID as an earlier one replaces it
// wholesale, so user files can override bundled categories.
func Load(opts LoadOptions) (*Library, error) {
	log := logging.Component("checklist")

	var categories []Category
	if opts.IncludeBuiltin {
		builtin, err := parseContent(builtinContent)
		if err != nil {
			return nil, fmt.Errorf("parse builtin content: %w", err)
		}
		categories = mergeCategories(categories, builtin)
	}

	files, err := expandPaths(opts.Paths)
	if err != nil {
		return nil, err
	}
	if len(opts.Paths) > 0 && len(files) == 0 {
		log.Warn().Strs("paths", opts.Paths).Msg("content paths matched no files")
	}

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read content file: %w", err)
		}
		parsed, err := parseContent(data)
		if err != nil {
			return nil, fmt.Errorf("parse content file %s: %w", file, err)
		}
		log.Debug().Str("file", file).Int("categories", len(parsed)).Msg("loaded content file")
		categories = mergeCategories(categories, parsed)
	}

	lib := &Library{Categories: categories}
	if err := lib.Validate(); err != nil {
		return nil, fmt.Errorf("invalid checklist content: %w", err)
	}
	return lib, nil
}

func parseContent(data []byte) ([]Category, error) {
	var file contentFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	return file.Categories, nil
}

// expandPaths resolves glob patterns to a deduplicated, sorted file list.
// Literal paths are globs without metacharacters, so they need no special
// case; a literal path that does not exist simply matches nothing.
func expandPaths(patterns []string) ([]string, error) {
	var files []string
	seen := map[string]struct{}{}
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad content pattern %q: %w", pattern, err)
		}
		sort.Strings(matches)
		for _, match := range matches {
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			files = append(files, match)
		}
	}
	return files, nil
}

// mergeCategories appends incoming categories, replacing any existing
// category that reuses an ID. Later sources win.
func mergeCategories(existing, incoming []Category) []Category {
	for _, cat := range incoming {
		replaced := false
		for i := range existing {
			if existing[i].ID == cat.ID {
				existing[i] = cat
				replaced = true
				break
			}
		}
		if !replaced {
			existing = append(existing, cat)
		}
	}
	return existing
}

// Builtin loads only the bundled content. It panics on failure since the
// bundled YAML is compiled in and covered by tests.
func Builtin() *Library {
	lib, err := Load(LoadOptions{IncludeBuiltin: true})
	if err != nil {
		panic(fmt.Sprintf("bundled checklist content is invalid: %v", err))
	}
	return lib
}
