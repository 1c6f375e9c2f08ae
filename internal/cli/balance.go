package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yolodolo42/emberwallet/internal/ui"
	"github.com/yolodolo42/emberwallet/internal/wallet"
)

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Show the EMB balance of an address",
	Long: `Show the EMB balance of an address. With no address argument, the
account at --index is derived from a recovery phrase prompt.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBalance,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
	balanceCmd.Flags().Uint32("index", 0, "Account index to derive when no address is given")
}

func runBalance(cmd *cobra.Command, args []string) error {
	var address string
	if len(args) == 1 {
		address = args[0]
	} else {
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
		address = acct.Address
	}

	client, err := newChainClient()
	if err != nil {
		return err
	}
	defer client.Close()
	network := currentNetwork()

	balance, err := client.GetBalance(cmd.Context(), network, address)
	if err != nil {
		return fmt.Errorf("fetch balance for %s: %w", address, err)
	}

	symbol := "EMB"
	if cfg, err := client.GetNetworkConfig(network); err == nil {
		symbol = cfg.Symbol
	}
	fmt.Printf("%s %s\n", ui.DimStyle.Render("Address:"), ui.AddressStyle.Render(address))
	fmt.Printf("%s %s %s\n", ui.DimStyle.Render("Balance:"), ui.AmountStyle.Render(fmt.Sprintf("%d", balance)), symbol)
	return nil
}
