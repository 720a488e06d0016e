package runner

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pylens/src/util"
)

// Input is one unit of work for the runner
type Input struct {
	Name string
	Load func() (string, error)
}

// FileInput reads its code from path when the runner reaches it
func FileInput(path string) Input {
	return Input{
		Name: path,
		Load: func() (string, error) {
			data, err := os.ReadFile(path)
			if err != nil {
				return "", err
			}
			return string(data), nil
		},
	}
}

// InlineInput wraps code that is already in memory
func InlineInput(name, code string) Input {
	return Input{
		Name: name,
		Load: func() (string, error) { return code, nil },
	}
}

// FileInputs wraps every path as a FileInput
func FileInputs(paths []string) []Input {
	inputs := make([]Input, len(paths))
	for i, p := range paths {
		inputs[i] = FileInput(p)
	}
	return inputs
}

// CollectFiles expands paths into a sorted list of files. Files named
// explicitly are always kept; directories contribute their .py files
// that the exclusion matcher lets through.
func CollectFiles(paths []string, exclusions *util.ExclusionMatcher) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(p string) {
		clean := filepath.Clean(p)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, util.AddContext(util.WrapError(err, util.CodeNotFound, "cannot access input"), util.CtxPath, root)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), ".py") {
				return nil
			}
			if exclusions != nil && exclusions.Matches(path) {
				util.Debug("Excluding %s", path)
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, util.AddContext(util.WrapError(err, util.CodeInternal, "failed to walk directory"), util.CtxPath, root)
		}
	}

	sort.Strings(files)
	return files, nil
}
