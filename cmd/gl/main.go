package main

import "gamifylife/cmd/gl/root"

func main() {
	root.Execute()
}
