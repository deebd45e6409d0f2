package main

import "github.com/sanpii/cargo-godot/cmd/cargo-godot/internal"

func main() {
	internal.Execute()
}
