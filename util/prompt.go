package util

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompts read from In and write to Out. A single buffered reader is kept so
// that consecutive prompts do not lose piped input.
var (
	In  io.Reader = os.Stdin
	Out io.Writer = os.Stdout

	reader   *bufio.Reader
	readerOf io.Reader
)

func readLine() string {
	if reader == nil || readerOf != In {
		reader = bufio.NewReader(In)
		readerOf = In
	}
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		// No more input: behave as if the user accepted the default.
		return ""
	}
	return strings.TrimSpace(response)
}

func PromptString(prompt string, def string) string {
	fmt.Fprintf(Out, "%s (%s): ", prompt, def)

	response := readLine()
	if response == "" {
		return def
	}
	return response
}

func PromptYN(prompt string, def bool) bool {
	if def {
		fmt.Fprintf(Out, "%s (Y/n): ", prompt)
	} else {
		fmt.Fprintf(Out, "%s (y/N): ", prompt)
	}

	response := readLine()
	if response == "" {
		return def
	}
	return strings.ToLower(response) == "y"
}
