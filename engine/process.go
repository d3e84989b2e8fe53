package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/awklab/treelight/internal/outline"
	"github.com/awklab/treelight/internal/types"
	"github.com/awklab/treelight/tree"
)

// Report is the result of running the engine's queries over one source
// file. Src is the exact buffer the spans were computed against, so
// renderers never re-read a file that may have changed since.
type Report struct {
	Path    string          `json:"path"`
	Src     []byte          `json:"-"`
	Styled  []types.Styled  `json:"highlight"`
	Outline []outline.Entry `json:"outline"`
}

// Processor runs some engine query set over one file path.
type Processor func(e *Engine, path string) (Report, error)

// LoadFile reads an AWK source file together with the parse-tree dump its
// external parser wrote next to it (<path>.json), and adapts the dump into
// a navigable tree.
func LoadFile(path string) (*tree.Raw, []byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	dumpPath := path + ".json"
	f, err := os.Open(dumpPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening tree dump for %s: %w", path, err)
	}
	defer f.Close()

	root, err := tree.DecodeJSON(f)
	if err != nil {
		return nil, nil, fmt.Errorf("tree dump %s: %w", dumpPath, err)
	}
	return root, src, nil
}

// ProcessFile is the default Processor: highlight plus outline.
func ProcessFile(e *Engine, path string) (Report, error) {
	root, src, err := LoadFile(path)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Path:    path,
		Src:     src,
		Styled:  e.Highlight(root, src),
		Outline: e.Outline(root, src),
	}, nil
}

// ProcessFiles runs the processor over every given path, descending into
// directories.
func ProcessFiles(ctx context.Context, logger *zap.Logger, e *Engine, paths []string, processor Processor) ([]Report, error) {
	var all []Report
	for _, path := range paths {
		reports, err := ProcessPath(ctx, logger, e, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		all = append(all, reports...)
	}
	return all, nil
}

// ProcessPath processes one file, or every .awk file under one directory
// using a bounded worker pool with a progress bar.
func ProcessPath(ctx context.Context, logger *zap.Logger, e *Engine, path string, processor Processor) ([]Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !hasDesiredExtension(path) {
			return nil, nil
		}
		report, err := processor(e, path)
		if err != nil {
			return nil, err
		}
		return []Report{report}, nil
	}

	var files []string
	filepath.Walk(path, func(filePath string, fileInfo os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fileInfo.IsDir() && hasDesiredExtension(filePath) {
			files = append(files, filePath)
		}
		return nil
	})

	type result struct {
		report Report
		err    error
	}
	resultChan := make(chan result, len(files))

	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
	)

	for _, filePath := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			sem <- struct{}{}
			go func(fp string) {
				defer func() { <-sem }()

				report, err := processor(e, fp)
				if err != nil && logger != nil {
					logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
				}
				resultChan <- result{report: report, err: err}
				bar.Add(1)
			}(filePath)
		}
	}

	var reports []Report
	for range files {
		res := <-resultChan
		if res.err != nil {
			continue
		}
		reports = append(reports, res.report)
	}

	fmt.Println()
	return reports, nil
}

func hasDesiredExtension(path string) bool {
	return filepath.Ext(path) == ".awk"
}
