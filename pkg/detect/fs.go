package detect

import "os"

// FS is the filesystem view a detector reads through. Both operations are
// failure-free by contract: any I/O error reads as absence.
type FS interface {
	// Exists reports whether path exists.
	Exists(path string) bool
	// ReadText returns the file's contents, or ok=false on any error.
	ReadText(path string) (string, bool)
}

type osFS struct{}

// OSFS returns an FS backed by the real filesystem.
func OSFS() FS { return osFS{} }

func (osFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (osFS) ReadText(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

func existsAny(fs FS, paths ...string) bool {
	for _, p := range paths {
		if fs.Exists(p) {
			return true
		}
	}
	return false
}
