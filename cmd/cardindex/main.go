package main

import (
	"fmt"
	"os"

	"github.com/mwantia/cardindex/cmd/cardindex/cli"
)

var (
	version = "0.0.1-dev"
	commit  = "main"
)

func main() {
	root := cli.NewRootCommand(cli.VersionInfo{
		Version: version,
		Commit:  commit,
	})

	root.AddCommand(cli.NewVersionCommand())

	root.AddCommand(cli.NewSyncCommand())
	root.AddCommand(cli.NewSourcesCommand())
	root.AddCommand(cli.NewImportCommand())
	root.AddCommand(cli.NewDFCCommand())
	root.AddCommand(cli.NewAgentCommand())
	root.AddCommand(cli.NewConfigCommand())

	if err := root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
