package main

import "asset-variants/cmd"

func main() {
	cmd.Execute()
}
