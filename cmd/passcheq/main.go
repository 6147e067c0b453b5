package main

import "passcheq/cmd"

func main() {
	cmd.Execute()
}
