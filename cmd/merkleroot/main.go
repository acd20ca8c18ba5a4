// Command merkleroot builds the allowlist commitment for a tier. It reads one
// wallet address per line, prints the Merkle root, and optionally prints the
// proof for a single wallet so operators can hand it to the front end.
//
// Usage:
//
//	merkleroot -in alpha.txt
//	merkleroot -in alpha.txt -proof 0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/platform-web3/hypehaus-contract/internal/allowlist"
	"github.com/platform-web3/hypehaus-contract/pkg/domain"
	platformstrings "github.com/platform-web3/hypehaus-contract/pkg/platform/strings"
)

func main() {
	var (
		in     = flag.String("in", "", "file with one wallet address per line (default stdin)")
		target = flag.String("proof", "", "also print the proof for this wallet")
	)
	flag.Parse()

	if err := run(*in, *target); err != nil {
		fmt.Fprintln(os.Stderr, "merkleroot:", err)
		os.Exit(1)
	}
}

func run(in, target string) error {
	source := os.Stdin
	if in != "" {
		f, err := os.Open(in)
		if err != nil {
			return err
		}
		defer f.Close()
		source = f
	}

	wallets, err := readWallets(source)
	if err != nil {
		return err
	}
	if len(wallets) == 0 {
		return fmt.Errorf("no wallet addresses given")
	}

	tree := allowlist.BuildTree(wallets)
	fmt.Printf("wallets: %d\n", tree.Len())
	fmt.Printf("root:    %s\n", tree.Root().Hex())

	if target != "" {
		wallet, err := domain.ParseAddress(target)
		if err != nil {
			return err
		}
		proof, err := tree.Proof(wallet)
		if err != nil {
			return err
		}
		fmt.Printf("proof for %s:\n", wallet.Hex())
		for _, h := range proof {
			fmt.Printf("  %s\n", h.Hex())
		}
	}
	return nil
}

// readWallets parses one address per line, skipping blanks and # comments.
// Lines are case-folded and deduplicated first: operator CSV exports repeat
// wallets in mixed checksum casings, and each wallet gets one leaf.
func readWallets(source *os.File) ([]domain.Address, error) {
	var lines []string
	scanner := bufio.NewScanner(source)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	var wallets []domain.Address
	for _, line := range platformstrings.DedupeAndTrimLower(lines) {
		wallet, err := domain.ParseAddress(line)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", line, err)
		}
		wallets = append(wallets, wallet)
	}
	return wallets, nil
}
