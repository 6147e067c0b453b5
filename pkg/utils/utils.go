package utils

import (
	"fmt"
	"os"
)

// CheckErr prints msg and err to stderr and exits when err is non-nil.
func CheckErr(err error, msg string) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
		os.Exit(1)
	}
}

// Plural returns "" for one and "s" otherwise.
func Plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
