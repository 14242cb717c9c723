package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/app"
	"github.com/tokenswap/swapper/client"
	"github.com/tokenswap/swapper/store/iavl"
)

const (
	flagHome     = "home"
	flagLogLevel = "log-level"
	flagKey      = "key"
	flagMaker    = "maker"
	flagTaker    = "taker"
	flagMintA    = "mint-a"
	flagMintB    = "mint-b"
	flagID       = "id"
	flagOffered  = "offered"
	flagWanted   = "wanted"
	flagProgram  = "program"
)

// env carries the configuration and logger shared by all commands. It is
// filled in before any command runs.
type env struct {
	v      *viper.Viper
	logger log.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{v: viper.New()}
	root := &cobra.Command{
		Use:           "swapd",
		Short:         "Trust minimized two party token swaps",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.load(cmd)
		},
	}
	root.PersistentFlags().String(flagHome, defaultHome(), "directory to store keys and state under")
	root.PersistentFlags().String(flagLogLevel, "info", "log level: debug, info, error or none")

	root.AddCommand(
		initCmd(e),
		keysCmd(e),
		deriveCmd(e),
		makeOfferCmd(e),
		takeOfferCmd(e),
		offersCmd(e),
		inspectCmd(e),
		versionCmd(),
	)
	return root
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".swapd"
	}
	return filepath.Join(home, ".swapd")
}

// load binds the flags of the running command, reads the optional config
// file from the home directory and builds the logger.
func (e *env) load(cmd *cobra.Command) error {
	e.v.SetEnvPrefix("SWAPD")
	e.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	e.v.AutomaticEnv()
	if err := e.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	e.v.SetConfigName("swapd")
	e.v.SetConfigType("toml")
	e.v.AddConfigPath(e.home())
	if err := e.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("config file: %s", err)
		}
	}

	allow, err := log.AllowLevel(e.v.GetString(flagLogLevel))
	if err != nil {
		return err
	}
	logger := log.NewTMLogger(log.NewSyncWriter(cmd.ErrOrStderr()))
	e.logger = log.NewFilter(logger, allow).With("module", "swapd")
	return nil
}

func (e *env) home() string {
	return e.v.GetString(flagHome)
}

// openNode loads the ledger stored in the home directory. Call the
// returned function to release it.
func (e *env) openNode() (*app.App, func(), error) {
	db, err := iavl.NewCommitStore(filepath.Join(e.home(), "data"), "swapd")
	if err != nil {
		return nil, nil, err
	}
	node, err := app.NewSwapApp(db, e.logger, nil)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return node, db.Close, nil
}

// openClient is openNode for commands that require an initialized chain.
func (e *env) openClient() (*client.Client, func(), error) {
	node, closeFn, err := e.openNode()
	if err != nil {
		return nil, nil, err
	}
	if node.ChainID() == "" {
		closeFn()
		return nil, nil, fmt.Errorf("ledger in %s is not initialized, run init first", e.home())
	}
	return client.NewClient(node), closeFn, nil
}

// address resolves a flag value that is either a base58 address or the
// name of a key in the home directory.
func (e *env) address(flag string) (swapper.Address, error) {
	value := e.v.GetString(flag)
	if value == "" {
		return swapper.Address{}, fmt.Errorf("--%s is required", flag)
	}
	if addr, err := solana.PublicKeyFromBase58(value); err == nil {
		return addr, nil
	}
	key, err := e.loadKey(value)
	if err != nil {
		return swapper.Address{}, fmt.Errorf("--%s: not an address nor a known key: %s", flag, err)
	}
	return key.PublicKey(), nil
}

// optionalAddress is address that returns the zero address for unset
// flags.
func (e *env) optionalAddress(flag string) (swapper.Address, error) {
	if e.v.GetString(flag) == "" {
		return swapper.Address{}, nil
	}
	return e.address(flag)
}

func printJSON(w io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), swapper.Version())
			return err
		},
	}
}
