package main

import (
	"github.com/tech-blog-pro/blog-api/cmd"
)

func main() {
	cmd.Execute()
}
