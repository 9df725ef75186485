package main

import (
	"moodfm/cmd"
)

func main() {
	cmd.Execute()
}
