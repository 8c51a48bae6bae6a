package main

import "scene-sync/cmd"

func main() {
	cmd.Execute()
}
