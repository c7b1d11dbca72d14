package main

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgCyan, color.Bold)
)

func initUI(disable bool) {
	if disable {
		color.NoColor = true
	}
}

func success(format string, args ...any) {
	successColor.Printf("✓ %s\n", fmt.Sprintf(format, args...))
}

func failure(format string, args ...any) {
	errorColor.Printf("✗ %s\n", fmt.Sprintf(format, args...))
}

func warn(format string, args ...any) {
	warnColor.Printf("⚠ %s\n", fmt.Sprintf(format, args...))
}

func info(format string, args ...any) {
	infoColor.Printf("ℹ %s\n", fmt.Sprintf(format, args...))
}

func section(title string) {
	headerColor.Println(title)
}
