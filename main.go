package main

import "github.com/kushkukrejapq/Ubuntu-hooks/cmd"

func main() {
	cmd.Execute()
}
