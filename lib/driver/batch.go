package driver

import (
	"os"
	"sync"

	"github.com/pkg/errors"

	"github.com/vyPal/ifjc/lib/compiler"
)

// FileResult is the outcome of compiling one file of a batch.
type FileResult struct {
	Path string
	Code string
	Err  error
}

// CompileFiles compiles independent programs concurrently. Every run owns its
// own analyzer and generator state, so the files share nothing. Results come
// back in the order of paths.
func CompileFiles(paths []string, opts compiler.Options) []FileResult {
	results := make([]FileResult, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			results[i] = compileFile(path, opts)
		}(i, path)
	}
	wg.Wait()

	return results
}

func compileFile(path string, opts compiler.Options) FileResult {
	f, err := os.Open(path)
	if err != nil {
		return FileResult{Path: path, Err: errors.Wrap(err, "opening source")}
	}
	defer f.Close()

	code, err := Compile(path, f, opts)
	return FileResult{Path: path, Code: code, Err: err}
}

// FirstError returns the first failed result's error, or nil.
func FirstError(results []FileResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
