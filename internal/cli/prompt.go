package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yolodolo42/emberwallet/internal/wallet"
	"golang.org/x/term"
)

// readMnemonic prompts for a recovery phrase without echoing it. Whitespace
// is normalized (leading/trailing trimmed, internal runs collapsed) so that
// phrases pasted from backups validate cleanly.
func readMnemonic() (string, error) {
	fmt.Print("Recovery phrase: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read recovery phrase: %w", err)
	}
	defer wallet.Zero(raw)

	mnemonic := strings.Join(strings.Fields(string(raw)), " ")
	if mnemonic == "" {
		return "", fmt.Errorf("recovery phrase is required")
	}
	if !wallet.ValidateMnemonic(mnemonic) {
		return "", wallet.ErrInvalidMnemonic
	}
	return mnemonic, nil
}

// confirm asks a yes/no question on stdin, defaulting to no.
func confirm(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// parseAmount parses a whole-unit EMB amount. The chain has no sub-unit
// precision, so fractional or negative input is rejected outright.
func parseAmount(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("amount is required")
	}
	amount, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount must be a non-negative whole number of EMB: %q", s)
	}
	return amount, nil
}
