// Package souffle exposes the Datalog program minimisation pipeline: loading
// program documents, shrinking them, and reporting what changed.
package souffle

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/andreabedini/souffle/internal"
	"github.com/andreabedini/souffle/internal/analysis"
	"github.com/andreabedini/souffle/internal/transform"
	tt "github.com/andreabedini/souffle/internal/types"
)

// Minimise runs the minimisation driver once on the translation unit and
// reports whether the program changed.
func Minimise(tu *analysis.TranslationUnit) bool {
	return transform.Minimise(tu)
}

// Engine is the part of the pipeline engine the processing helpers need.
type Engine interface {
	Run(filename string, tu *analysis.TranslationUnit) []tt.Change
	RunFile(path string) (*analysis.TranslationUnit, []tt.Change, error)
	IgnorePass(name string)
}

// New builds a pipeline engine from the configuration file at
// configurationPath. An empty path yields the default configuration.
func New(logger *zap.Logger, configurationPath string) (*internal.Engine, error) {
	config, err := parseConfigurationFile(configurationPath)
	if err != nil {
		return nil, err
	}

	engine := internal.NewEngine(logger, internal.Options{
		Fixpoint:      config.Fixpoint,
		MaxIterations: config.MaxIterations,
	})
	for name, enabled := range config.Passes {
		if !enabled {
			engine.IgnorePass(name)
		}
	}
	return engine, nil
}

// FileResult pairs a processed file with the changes made to it.
type FileResult struct {
	Filename string
	Tu       *analysis.TranslationUnit
	Changes  []tt.Change
}

// ProcessPaths minimises every program document under the given paths.
// Directories are walked for .yaml/.yml files and processed concurrently
// with a progress bar; single files are processed directly.
func ProcessPaths(ctx context.Context, logger *zap.Logger, engine Engine, paths []string) ([]FileResult, error) {
	var results []FileResult
	for _, path := range paths {
		pathResults, err := processPath(ctx, logger, engine, path)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		results = append(results, pathResults...)
	}
	return results, nil
}

func processPath(ctx context.Context, logger *zap.Logger, engine Engine, path string) ([]FileResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !hasProgramExtension(path) {
			return nil, fmt.Errorf("%s is not a program document", path)
		}
		result, err := processFile(engine, path)
		if err != nil {
			return nil, err
		}
		return []FileResult{result}, nil
	}

	var files []string
	filepath.Walk(path, func(filePath string, fileInfo os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fileInfo.IsDir() && hasProgramExtension(filePath) {
			files = append(files, filePath)
		}
		return nil
	})

	resultChan := make(chan FileResult, len(files))
	errorChan := make(chan error, len(files))

	// limit the number of workers
	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	for _, filePath := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			sem <- struct{}{}
			wg.Add(1)
			go func(fp string) {
				defer wg.Done()
				defer func() { <-sem }()

				result, err := processFile(engine, fp)
				if err != nil {
					if logger != nil {
						logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
					}
					errorChan <- err
				} else {
					resultChan <- result
				}
				bar.Add(1)
			}(filePath)
		}
	}

	wg.Wait()
	close(resultChan)
	close(errorChan)
	fmt.Println()

	var results []FileResult
	for result := range resultChan {
		results = append(results, result)
	}
	return results, nil
}

func processFile(engine Engine, path string) (FileResult, error) {
	tu, changes, err := engine.RunFile(path)
	if err != nil {
		return FileResult{}, err
	}
	return FileResult{Filename: path, Tu: tu, Changes: changes}, nil
}

var programExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
}

func hasProgramExtension(path string) bool {
	return programExtensions[filepath.Ext(path)]
}
