package main

import "github.com/funny233-github/mc-launcher/cmd"

func main() {
	cmd.Execute()
}
