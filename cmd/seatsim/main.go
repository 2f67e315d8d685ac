// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command seatsim runs European Parliament seat simulations offline.
//
//	seatsim run --share "EPP@Germany=31%" --turnout "Germany=65%"
//	seatsim rules
//	seatsim admin-key --salt ...
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
