package main

import "github.com/Sohaib432002/Dashboard/cmd"

func main() {
	cmd.Execute()
}
