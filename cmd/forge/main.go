// Command forge is a personal tracker for runs, focus sessions, meals and
// workouts with streaks, weekly scores and a weekly coach review.
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
