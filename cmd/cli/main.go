// droidctl - Android device control CLI
//
// droidctl wraps the Android SDK's adb and aapt tools behind a single
// command-line interface for installing apps, moving files and watching
// device logs.
package main

import (
	"os"

	"github.com/droidctl/droidctl/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
