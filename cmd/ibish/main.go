// SPDX-FileCopyrightText: 2025 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Ibish is the interactive shell of an Ibis system. It reads one
// command line at a time, runs the command with the shell's standard
// streams and waits for it to terminate. The builtin "exit" terminates
// the shell itself.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

const prompt = "> "

func main() {
	err := run(os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ibish: %v\n", err)
		os.Exit(1)
	}
}

// run reads and executes command lines until the input ends or the exit
// builtin is called.
func run(in io.Reader, out, errOut io.Writer) error {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, prompt)

		if !scanner.Scan() {
			break
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "exit" {
			return nil
		}

		err := runCommand(in, out, errOut, fields)
		if err != nil {
			fmt.Fprintf(errOut, "ibish: %v\n", err)
		}
	}

	err := scanner.Err()
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	return nil
}

func runCommand(in io.Reader, out, errOut io.Writer, fields []string) error {
	cmd := exec.Command(fields[0], fields[1:]...)
	cmd.Stdin = in
	cmd.Stdout = out
	cmd.Stderr = errOut

	err := cmd.Run()

	// The command's exit status does not matter.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}

	return err
}
