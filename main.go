package main

import (
	"github.com/exoscale/syslog-canary/cmd"
)

func main() {
	cmd.Execute()
}
