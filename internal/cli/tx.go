package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/yolodolo42/emberwallet/internal/tx"
	"github.com/yolodolo42/emberwallet/internal/ui"
	"github.com/yolodolo42/emberwallet/internal/wallet"
)

var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "Sign and send transactions",
}

var txSignCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign a transaction offline and print the signed payload",
	RunE:  runTxSign,
}

var txSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Sign a transaction and submit it to the network",
	RunE:  runTxSend,
}

func init() {
	rootCmd.AddCommand(txCmd)
	txCmd.AddCommand(txSignCmd)
	txCmd.AddCommand(txSendCmd)

	for _, c := range []*cobra.Command{txSignCmd, txSendCmd} {
		c.Flags().String("to", "", "Recipient address")
		c.Flags().String("amount", "", "Amount in whole EMB")
		c.Flags().Uint32("index", 0, "Account index to sign with")
		c.Flags().Uint64("gas-price", 1, "Gas price")
		c.Flags().Uint64("gas-limit", 21000, "Gas limit")
		_ = c.MarkFlagRequired("to")
		_ = c.MarkFlagRequired("amount")
	}
	// Offline signing cannot ask the node, so the nonce must be supplied.
	txSignCmd.Flags().Uint64("nonce", 0, "Transaction nonce")
	_ = txSignCmd.MarkFlagRequired("nonce")
	txSendCmd.Flags().Uint64("nonce", 0, "Transaction nonce (fetched from the node if omitted)")
}

// signFromFlags assembles transaction fields from flags, derives the sender
// address, and signs. Key material never leaves this call.
func signFromFlags(cmd *cobra.Command, nonce uint64) (*tx.Signed, error) {
	to, _ := cmd.Flags().GetString("to")
	rawAmount, _ := cmd.Flags().GetString("amount")
	index, _ := cmd.Flags().GetUint32("index")
	gasPrice, _ := cmd.Flags().GetUint64("gas-price")
	gasLimit, _ := cmd.Flags().GetUint64("gas-limit")

	amount, err := parseAmount(rawAmount)
	if err != nil {
		return nil, err
	}

	mnemonic, err := readMnemonic()
	if err != nil {
		return nil, err
	}

	manager := wallet.NewManager()
	acct, err := manager.DeriveAccount(mnemonic, index)
	if err != nil {
		return nil, fmt.Errorf("derive account %d: %w", index, err)
	}
	from := acct.Address
	acct.Wipe()

	fields := tx.Fields{
		From:      from,
		To:        to,
		Amount:    amount,
		Nonce:     nonce,
		Timestamp: uint64(time.Now().Unix()),
		GasPrice:  gasPrice,
		GasLimit:  gasLimit,
	}
	return manager.SignTransaction(mnemonic, index, fields)
}

func runTxSign(cmd *cobra.Command, args []string) error {
	nonce, _ := cmd.Flags().GetUint64("nonce")

	signed, err := signFromFlags(cmd, nonce)
	if err != nil {
		return err
	}

	payload, err := json.MarshalIndent(signed, "", "  ")
	if err != nil {
		return fmt.Errorf("encode signed transaction: %w", err)
	}
	fmt.Println(string(payload))
	return nil
}

func runTxSend(cmd *cobra.Command, args []string) error {
	to, _ := cmd.Flags().GetString("to")
	rawAmount, _ := cmd.Flags().GetString("amount")
	index, _ := cmd.Flags().GetUint32("index")

	amount, err := parseAmount(rawAmount)
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

	fmt.Printf("Send %s EMB to %s on %s\n",
		ui.AmountStyle.Render(fmt.Sprintf("%d", amount)),
		ui.AddressStyle.Render(to),
		network)
	if !confirm("Proceed?") {
		fmt.Println(ui.DimStyle.Render("Aborted."))
		return nil
	}

	mnemonic, err := readMnemonic()
	if err != nil {
		return err
	}

	manager := wallet.NewManager()
	acct, err := manager.DeriveAccount(mnemonic, index)
	if err != nil {
		return fmt.Errorf("derive account %d: %w", index, err)
	}
	from := acct.Address
	acct.Wipe()

	nonce, _ := cmd.Flags().GetUint64("nonce")
	if !cmd.Flags().Changed("nonce") {
		nonce, err = client.GetNonce(ctx, network, from)
		if err != nil {
			return fmt.Errorf("fetch nonce for %s: %w", from, err)
		}
	}

	gasPrice, _ := cmd.Flags().GetUint64("gas-price")
	gasLimit, _ := cmd.Flags().GetUint64("gas-limit")
	signed, err := manager.SignTransaction(mnemonic, index, tx.Fields{
		From:      from,
		To:        to,
		Amount:    amount,
		Nonce:     nonce,
		Timestamp: uint64(time.Now().Unix()),
		GasPrice:  gasPrice,
		GasLimit:  gasLimit,
	})
	if err != nil {
		return err
	}

	txID, err := client.SubmitTransaction(ctx, network, signed)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s transaction submitted\n", ui.SuccessStyle.Render(ui.SymbolCheck))
	fmt.Printf("%s %s\n", ui.DimStyle.Render("Tx ID:"), txID)
	if cfg, err := client.GetNetworkConfig(network); err == nil && cfg.ExplorerURL != "" {
		fmt.Printf("%s %s/tx/%s\n", ui.DimStyle.Render("Explorer:"), cfg.ExplorerURL, txID)
	}
	return nil
}
