package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

var (
	headerStyle = color.New(color.FgCyan, color.Bold)
	labelStyle  = color.New(color.FgYellow, color.Bold)
	doneStyle   = color.New(color.FgGreen, color.Bold)
	mutedStyle  = color.New(color.FgHiBlack)
	amberStyle  = color.New(color.FgYellow)
)

// printBoxedHeader prints the title in a Unicode box with a fixed width.
func printBoxedHeader(w io.Writer, title string) {
	width := 40
	border := strings.Repeat("═", width)
	fmt.Fprintln(w, headerStyle.Sprint("╔"+border+"╗"))
	fmt.Fprintln(w, headerStyle.Sprint("║"+centerText(title, width)+"║"))
	fmt.Fprintln(w, headerStyle.Sprint("╚"+border+"╝"))
}

func centerText(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + s + strings.Repeat(" ", width-n-padding)
}

// printMetric prints a label and value using bold yellow for the label.
func printMetric(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "  %s: %v\n", labelStyle.Sprint(label), value)
}

// printCheck prints one checklist line.
func printCheck(w io.Writer, label string, done bool, value string) {
	mark := mutedStyle.Sprint("○")
	if done {
		mark = doneStyle.Sprint("✓")
		value = amberStyle.Sprint(value)
	} else {
		value = mutedStyle.Sprint(value)
	}
	fmt.Fprintf(w, "  %s %-9s %s\n", mark, label, value)
}

// bar renders a fraction in [0,1] as a fixed-width text bar.
func bar(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// clock renders a duration as mm:ss or h:mm:ss.
func clock(d time.Duration) string {
	s := int(d / time.Second)
	if h := s / 3600; h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, s%3600/60, s%60)
	}
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
