package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yolodolo42/emberwallet/internal/ui"
	"github.com/yolodolo42/emberwallet/internal/wallet"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Derive and discover accounts",
	Long:  `Derive accounts from a recovery phrase and discover used accounts on chain.`,
}

var accountDeriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive the account at a given index",
	RunE:  runAccountDerive,
}

var accountNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate a new recovery phrase and its first account",
	RunE:  runAccountNew,
}

var accountDiscoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Scan the chain for previously used accounts",
	RunE:  runAccountDiscover,
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountDeriveCmd)
	accountCmd.AddCommand(accountNewCmd)
	accountCmd.AddCommand(accountDiscoverCmd)

	accountDeriveCmd.Flags().Uint32("index", 0, "Account index to derive")
	accountDiscoverCmd.Flags().Int("max-scan", 100, "Maximum number of indices to scan")
	accountDiscoverCmd.Flags().Int("gap", 20, "Stop after this many consecutive unused indices")
}

func runAccountDerive(cmd *cobra.Command, args []string) error {
	index, _ := cmd.Flags().GetUint32("index")

	mnemonic, err := readMnemonic()
	if err != nil {
		return err
	}

	acct, err := wallet.NewManager().DeriveAccount(mnemonic, index)
	if err != nil {
		return fmt.Errorf("derive account %d: %w", index, err)
	}
	acct.Wipe()

	fmt.Printf("%s %d\n", ui.DimStyle.Render("Index:  "), acct.Index)
	fmt.Printf("%s %s\n", ui.DimStyle.Render("Address:"), ui.AddressStyle.Render(acct.Address))
	fmt.Printf("%s %x\n", ui.DimStyle.Render("Pubkey: "), acct.PublicKey)
	return nil
}

func runAccountNew(cmd *cobra.Command, args []string) error {
	mnemonic, err := wallet.GenerateMnemonic()
	if err != nil {
		return err
	}

	acct, err := wallet.NewManager().DeriveAccount(mnemonic, 0)
	if err != nil {
		return fmt.Errorf("derive first account: %w", err)
	}
	acct.Wipe()

	fmt.Println(ui.TitleStyle.Render("New wallet"))
	fmt.Println()
	fmt.Println(ui.WarningStyle.Render("Write down this recovery phrase. Anyone who has it controls the wallet;"))
	fmt.Println(ui.WarningStyle.Render("there is no way to recover it if lost. It is not stored anywhere."))
	fmt.Println()
	fmt.Printf("  %s\n\n", mnemonic)
	fmt.Printf("%s %s\n", ui.DimStyle.Render("First address:"), ui.AddressStyle.Render(acct.Address))
	return nil
}

func runAccountDiscover(cmd *cobra.Command, args []string) error {
	maxScan, _ := cmd.Flags().GetInt("max-scan")
	gap, _ := cmd.Flags().GetInt("gap")

	mnemonic, err := readMnemonic()
	if err != nil {
		return err
	}

	client, err := newChainClient()
	if err != nil {
		return err
	}
	defer client.Close()
	network := currentNetwork()

	ctx := cmd.Context()
	exists := func(ctx context.Context, address string) (bool, error) {
		return client.AccountExists(ctx, network, address)
	}

	found, err := wallet.NewManager().DiscoverAccounts(ctx, mnemonic, exists, maxScan, gap)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	if len(found) == 0 {
		fmt.Println(ui.DimStyle.Render("No used accounts found."))
		return nil
	}
	fmt.Printf("Found %d account(s) on %s:\n\n", len(found), network)
	for _, acct := range found {
		fmt.Printf("  %s %3d  %s\n", ui.SuccessStyle.Render(ui.SymbolCheck), acct.Index, ui.AddressStyle.Render(acct.Address))
	}
	fmt.Println()
	fmt.Println(ui.DimStyle.Render(fmt.Sprintf("Scan stops after %d consecutive unused indices; accounts beyond that are not listed.", gap)))
	return nil
}
