package main

import "github.com/chris/datepick/cmd"

func main() {
	cmd.Execute()
}
