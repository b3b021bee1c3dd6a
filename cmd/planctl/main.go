// Package main is the entry point for the planctl CLI.
package main

func main() {
	Execute()
}
