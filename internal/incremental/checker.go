// Package incremental decides which rendered outputs are out of date.
package incremental

import (
	"os"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

// OutputStale reports whether the output at outPath must be regenerated from
// the source at srcPath.
//
// The policy is timestamp-only: regeneration is required unless the output
// exists and its modification time is strictly newer than the source's.
// Touching a source without changing it therefore forces a rebuild, and clock
// skew between filesystems can make a stale output look fresh. Both are
// accepted limitations of the policy.
func OutputStale(srcPath, outPath string) (bool, error) {
	srcInfo, err := os.Stat(srcPath)
	if err != nil {
		return false, errors.IOFailure("stat", srcPath, err)
	}

	outInfo, err := os.Stat(outPath)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, errors.IOFailure("stat", outPath, err)
	}

	return !outInfo.ModTime().After(srcInfo.ModTime()), nil
}
