// Package dir provides directory handles, entry iteration and recursive
// removal on top of a core.FS provider.
//
// A Dir owns a dedicated pool and the directory stream registered as a
// cleanup of that pool. Entries are returned as stat.Record values with the
// requested fields; the "." and ".." pseudo-entries are never returned.
//
//	d, err := dir.Open(fsys, "/var/log")
//	if err != nil {
//	    return err
//	}
//	defer d.Close()
//
//	entries, err := d.Entries("name", "type", "size")
//	if err != nil {
//	    return err
//	}
//	for rec, err := range entries.All() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(rec.Name, rec.Type, rec.Size)
//	}
//
// RemoveAll deletes a directory tree without recursion on the call stack.
// Symbolic links inside the tree are removed, never followed.
//
// A Dir is not safe for concurrent use.
package dir
