// Command fsio reads, writes and manages files through the fsio library.
package main

import "os"

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}
