package fs

import "os"

// DirExists returns true if a directory exists and is accessible.
// It returns false if the path is a file, but not a directory.
// It may return false when the path exists but is inaccessible, the disk is failing, etc.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// FileExists returns true if a file exists and is accessible.
// It returns false if the path is a directory, but not a file.
// It may return false when the path exists but is inaccessible, the disk is failing, etc.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// KeepExistingFiles returns only those files of the input slice which actually exist on disk
func KeepExistingFiles(paths []string) []string {
	var result []string
	for _, path := range paths {
		if FileExists(path) {
			result = append(result, path)
		}
	}
	return result
}
