package main

import (
	cmd "github.com/arthomnix/libaoc/internal/cli"
)

func main() {
	cmd.Execute()
}
