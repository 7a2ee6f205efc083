package main

import "github.com/jmartinm/inspire-dojson/internal/cmd"

func main() {
	cmd.Execute()
}
