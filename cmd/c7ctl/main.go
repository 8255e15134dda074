// Command c7ctl manages the Context7 MCP server integration: editor
// configuration, the local documentation cache, and automatic usage rules.
package main

import (
	"fmt"
	"os"

	"github.com/morikuni/failure/v2"
	"github.com/yomek/c7ctl/cli"
)

func main() {
	if err := cli.Run(); err != nil {
		var userMessage string
		if fmsg := failure.MessageOf(err); fmsg != "" {
			userMessage = fmsg.String()
		} else {
			userMessage = err.Error()
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", userMessage)
		// TODO: if verbose mode, print details like error code and callstack
		os.Exit(1)
	}
}
