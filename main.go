package main

import "github.com/LegacyCodeHQ/deadfile/cmd"

func main() {
	cmd.Execute()
}
