package main

import (
	"fmt"
	"os"

	"github.com/Exotik850/ollama-file-find/cmd/subcmd"
	"github.com/Exotik850/ollama-file-find/impl/config"
	"github.com/Exotik850/ollama-file-find/impl/globals"
)

// buildVer and buildDtm are injected by the linker at build time
var (
	buildVer string = "SNAPSHOT"
	buildDtm string = ""
)

func main() {
	command, err := getCfg()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error parsing the command line: %s\n", err)
		os.Exit(1)
	}
	globals.ConfigureLogging(config.GetLogLevel(), config.GetLogFile())

	var cmdErr error
	switch command {
	case "list":
		cmdErr = subcmd.List()
	case "verify":
		cmdErr = subcmd.Verify()
	case "serve":
		cmdErr = subcmd.Serve(buildVer, buildDtm)
	case "version":
		fmt.Printf("ollama-file-find version: %s build date: %s\n", buildVer, buildDtm)
	case "":
		// no sub-command on the command line - the parser displayed help
	default:
		cmdErr = fmt.Errorf("unknown command: %s", command)
	}
	if cmdErr != nil {
		fmt.Fprintln(os.Stderr, cmdErr)
		os.Exit(1)
	}
}
