// Package stat turns filesystem metadata into typed records.
//
// A Request names the fields a caller wants. The pseudo-field "link" asks a
// path query not to follow a final symbolic link:
//
//	req, err := stat.ParseRequest("type", "size", "mtime", "link")
//	rec, err := stat.Query(fsys, "/etc/hosts", req)
//	fmt.Println(rec.Type, rec.Size, rec.MTime)
//
// On Unix the link count, inode, device, allocated size, access time,
// change time and owner are read from the platform stat record. Elsewhere,
// and for in-memory providers, those fields fall back to values derived
// from fs.FileInfo.
package stat
