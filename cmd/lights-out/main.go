package main

import "github.com/oshokin/lights-out/cmd/lights-out/cmd"

func main() {
	cmd.Execute()
}
