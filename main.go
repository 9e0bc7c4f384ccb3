package main

import "github.com/quocvuong92/vconsole/cmd"

func main() {
	cmd.Execute()
}
