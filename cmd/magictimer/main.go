package main

import "os"

const appName = "MagicTimer"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
