// FILE: krail-config/cmd/krailcfg/main.go
// krailcfg resolves keys from a set of layered configuration files
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
