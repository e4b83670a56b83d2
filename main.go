package main

import (
	"github.com/sika7/editor4ai-go/cmd"
)

func main() {
	cmd.Execute()
}
