package main

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/lukaszgryglicki/photonwalk/internal/photonwalk"
)

func main() {
	photonwalk.Debug = os.Getenv("DEBUG") != ""
	stopProfile := startProfile(os.Getenv("PROFILE") != "")
	err := rootCmd.Execute()
	stopProfile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startProfile writes a CPU profile to cpu.out until the returned func is called.
func startProfile(enabled bool) func() {
	if !enabled {
		return func() {}
	}
	f, err := os.Create("cpu.out")
	if err != nil {
		panic(err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		panic(err)
	}
	return func() {
		pprof.StopCPUProfile()
		_ = f.Close()
	}
}
