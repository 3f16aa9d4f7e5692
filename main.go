package main

import "github.com/buildbidz/buildbidz-go/cmd"

func main() {
	cmd.Run()
}
