package main

import "github.com/nsxzhou1114/blog-data/cmd"

func main() {
	cmd.Execute()
}
