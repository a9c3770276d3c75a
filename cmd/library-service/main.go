package main

import (
	"os"

	_ "time/tzdata"

	"github.com/ipryshchepa/FTG12-sub001/cmd/library-service/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
