package main

import "github.com/jsphweid/orchestra/cmd"

func main() {
	cmd.Execute()
}
