package main

import "github.com/KaramelBytes/plotease-cli/cmd"

func main() {
	cmd.Execute()
}
