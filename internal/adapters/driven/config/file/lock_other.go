//go:build !unix

package file

// lockFile is a no-op where flock(2) is unavailable.
func lockFile(string) (func(), error) {
	return func() {}, nil
}
