package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// readPassword prompts on out and reads a password from in without echo
// when in is a terminal. Otherwise the first line of in is used.
func readPassword(in *os.File, out io.Writer, prompt string) (string, error) {
	if term.IsTerminal(int(in.Fd())) {
		_, _ = fmt.Fprint(out, prompt)
		b, err := term.ReadPassword(int(in.Fd()))
		_, _ = fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return checkPassword(string(b))
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return checkPassword(strings.TrimRight(line, "\r\n"))
}

func checkPassword(p string) (string, error) {
	if p == "" {
		return "", errors.New("empty password")
	}
	return p, nil
}

func printTotals(w io.Writer, wallets, assets, netWorth string) {
	rows := [][2]string{
		{"Wallets", wallets},
		{"Assets", assets},
		{"Net worth", netWorth},
	}
	for _, r := range rows {
		_, _ = label.Fprintf(w, "%-10s", r[0])
		_, _ = fmt.Fprintln(w, r[1])
	}
}

func init() {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		color.NoColor = true
	}
}
