//go:build linux

package stat

import (
	"io/fs"
	"syscall"
	"time"
)

func fromSys(info fs.FileInfo) platform {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok || st == nil {
		return platform{}
	}
	return platform{
		ok:    true,
		uid:   st.Uid,
		gid:   st.Gid,
		csize: int64(st.Blocks) * 512,
		atime: time.Unix(int64(st.Atim.Sec), int64(st.Atim.Nsec)),
		ctime: time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec)),
		nlink: uint64(st.Nlink),
		inode: uint64(st.Ino),
		dev:   uint64(st.Dev),
	}
}
