package stat

import "io/fs"

// Type is the kind of a filesystem entry.
type Type string

const (
	TypeDirectory   Type = "directory"
	TypeFile        Type = "file"
	TypeLink        Type = "link"
	TypePipe        Type = "pipe"
	TypeSocket      Type = "socket"
	TypeBlockDevice Type = "block device"
	TypeCharDevice  Type = "character device"
	TypeUnknown     Type = "unknown"
)

// TypeOf classifies a file mode.
func TypeOf(mode fs.FileMode) Type {
	switch {
	case mode.IsRegular():
		return TypeFile
	case mode.IsDir():
		return TypeDirectory
	case mode&fs.ModeSymlink != 0:
		return TypeLink
	case mode&fs.ModeNamedPipe != 0:
		return TypePipe
	case mode&fs.ModeSocket != 0:
		return TypeSocket
	case mode&fs.ModeCharDevice != 0:
		return TypeCharDevice
	case mode&fs.ModeDevice != 0:
		return TypeBlockDevice
	default:
		return TypeUnknown
	}
}
