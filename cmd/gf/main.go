// Command gf generates Gridfinity bins, baseplates and drawer-fit kits as STL
// files and tracks them in named projects.
package main

import (
	"os"

	"github.com/banshee-data/gridfit/internal/console"
)

func main() {
	con := console.NewStd()
	a := newApp(con)
	err := newRootCmd(a).Execute()
	a.close()
	if err != nil {
		con.Error("Error: %v", err)
		os.Exit(1)
	}
}
