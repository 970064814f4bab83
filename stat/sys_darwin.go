//go:build darwin

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
		csize: st.Blocks * 512,
		atime: time.Unix(st.Atimespec.Sec, st.Atimespec.Nsec),
		ctime: time.Unix(st.Ctimespec.Sec, st.Ctimespec.Nsec),
		nlink: uint64(st.Nlink),
		inode: st.Ino,
		dev:   uint64(st.Dev),
	}
}
