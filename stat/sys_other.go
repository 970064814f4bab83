//go:build !linux && !darwin

package stat

import "io/fs"

func fromSys(fs.FileInfo) platform {
	return platform{}
}
