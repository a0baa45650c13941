// Package main is the entry point for the authorkit CLI.
package main

func main() {
	Execute()
}
