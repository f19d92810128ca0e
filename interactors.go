package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rmitchellscott/WxMinima/fetch"
)

// stdinIsPiped reports whether input is being piped in
func stdinIsPiped() bool {
	info, err := os.Stdin.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice == 0
}

// readReport reads a whole piped report, which for a TAF spans several
// lines, and extracts its station code
func readReport(r io.Reader) (string, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", "", fmt.Errorf("error reading input: %w", err)
	}

	rawInput := strings.TrimSpace(strings.ReplaceAll(string(data), "\r\n", "\n"))
	if rawInput == "" {
		return "", "", fmt.Errorf("no report data on stdin")
	}

	return stationFromReport(rawInput), rawInput, nil
}

// getStationCodeFromArgs gets station code from command-line args
func getStationCodeFromArgs(args []string) (string, error) {
	if len(args) < 1 {
		return "", fmt.Errorf("no station code provided")
	}
	return fetch.NormalizeStation(args[0])
}

// promptForStationCode prompts the user for a station code
func promptForStationCode(r io.Reader, w io.Writer) (string, error) {
	reader := bufio.NewReader(r)
	fmt.Fprint(w, "Enter ICAO airport code (e.g., KJFK, EGLL): ")
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return fetch.NormalizeStation(input)
}
