package main

import "go_5s_keep/cmd/fivesctl/root"

func main() {
	root.Execute()
}
