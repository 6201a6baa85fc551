package main

import "github.com/gaurav-prasanna/wpimport/cmd"

func main() {
	cmd.Execute()
}
