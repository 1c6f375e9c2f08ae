package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yolodolo42/emberwallet/internal/chain"
	"github.com/yolodolo42/emberwallet/internal/setup"
	"gopkg.in/yaml.v3"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "emberwallet",
		Short: "Deterministic hot wallet for the Ember chain",
		Long: `emberwallet derives accounts from a BIP-39 recovery phrase and signs
Ember transactions locally. Private keys exist only for the duration of a
single operation and are never written to disk or sent anywhere.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, err := setup.GetDataDir()
			if err != nil {
				return fmt.Errorf("resolve data directory: %w", err)
			}

			if setup.NeedsSetup(dataDir) {
				if !setup.IsInteractive() {
					setup.PrintEnvInstructions()
					return fmt.Errorf("setup required: run emberwallet interactively or write a config file")
				}
				result, err := setup.RunWizard()
				if err != nil {
					return fmt.Errorf("setup failed: %w", err)
				}
				if result == nil || result.Cancelled {
					return nil
				}
				fmt.Printf("Configured for network %q.\n\n", result.Network)
			}

			return cmd.Help()
		},
	}
)

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.emberwallet/config.yaml)")
	rootCmd.PersistentFlags().String("network", "mainnet", "Network to use (mainnet, testnet, localnet)")
	_ = viper.BindPFlag("network", rootCmd.PersistentFlags().Lookup("network"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".emberwallet")
		viper.AddConfigPath(configDir)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("emberwallet")
	viper.AutomaticEnv()

	// Config file is optional; flags and env cover everything it holds.
	_ = viper.ReadInConfig()
}

// currentNetwork returns the network selected by flag, env, or config file.
func currentNetwork() string {
	return viper.GetString("network")
}

// newChainClient builds the chain client with any custom networks from the
// config file layered over the built-in ones.
func newChainClient() (*chain.Client, error) {
	client := chain.NewClient()

	path := viper.ConfigFileUsed()
	if path == "" {
		return client, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg struct {
		Networks map[string]*chain.NetworkConfig `yaml:"networks"`
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	for name, nc := range cfg.Networks {
		if nc != nil && len(nc.APIURLs) > 0 {
			client.AddNetwork(name, nc)
		}
	}
	return client, nil
}
