package cudahist

import (
	"errors"
	"os"
	"path/filepath"
)

// DefaultDataFile is the file name the CUDA miner writes its kernel log to.
const DefaultDataFile = "cuda_histogram_data.txt"

var ErrDataNotFound = errors.New("histogram data file not found")

// FindDataFile looks for DefaultDataFile in the working directory, in exeDir,
// in exeDir/../includes and in includes/. It returns the first match as an
// absolute path, and the list of searched paths.
func FindDataFile(exeDir string) (string, []string, error) {
	candidates := []string{DefaultDataFile}
	if exeDir != "" {
		candidates = append(candidates,
			filepath.Join(exeDir, DefaultDataFile),
			filepath.Join(exeDir, "..", "includes", DefaultDataFile),
		)
	}
	candidates = append(candidates, filepath.Join("includes", DefaultDataFile))

	var searched []string
	for _, c := range candidates {
		abs, err := filepath.Abs(c)
		if err != nil {
			continue
		}
		searched = append(searched, abs)
		if fi, err := os.Stat(abs); err == nil && !fi.IsDir() {
			return abs, searched, nil
		}
	}
	return "", searched, ErrDataNotFound
}

// ExeDir returns the directory holding the running executable, or "" if it
// can't be determined.
func ExeDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// InputFiles returns the files named on the command line, or the discovered
// default data file when none are given.
func InputFiles(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	file, searched, err := FindDataFile(ExeDir())
	if err != nil {
		return nil, &SearchError{Searched: searched}
	}
	return []string{file}, nil
}

// SearchError is returned by InputFiles when data file discovery fails.
type SearchError struct {
	Searched []string
}

func (e *SearchError) Error() string {
	return "could not find '" + DefaultDataFile + "' in any expected location"
}

func (e *SearchError) Unwrap() error { return ErrDataNotFound }
