package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"blog-go/internal/blog"
	"blog-go/internal/view"
)

var errNoTerminal = errors.New("stdin is not a terminal")

// promptPassphrase returns BLOG_PASSPHRASE when set, and otherwise reads
// the passphrase from the terminal without echo.
func promptPassphrase() (string, error) {
	if p := os.Getenv("BLOG_PASSPHRASE"); p != "" {
		return p, nil
	}
	return readSecret("Passphrase: ")
}

// promptNewPassphrase reads a new passphrase twice and requires both to
// match. BLOG_PASSPHRASE skips the prompt.
func promptNewPassphrase() (string, error) {
	if p := os.Getenv("BLOG_PASSPHRASE"); p != "" {
		return p, nil
	}

	first, err := readSecret("New passphrase: ")
	if err != nil {
		return "", err
	}
	second, err := readSecret("Repeat passphrase: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errors.New("passphrases do not match")
	}
	return first, nil
}

func readSecret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("cannot prompt for passphrase: %w (set BLOG_PASSPHRASE)", errNoTerminal)
	}

	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(b), nil
}

// confirmDelete asks on the terminal whether p should be deleted. It
// refuses to guess when stdin is not a terminal.
func confirmDelete(p blog.Post) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, fmt.Errorf("refusing to delete without confirmation: %w (use --yes)", errNoTerminal)
	}

	fmt.Printf("Are you sure you want to delete %q? [y/N] ", p.Title)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && answer == "" {
		return false, nil
	}
	return view.IsYes(answer), nil
}
