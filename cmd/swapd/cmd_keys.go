package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

var isKeyName = regexp.MustCompile(`^[a-zA-Z0-9_\-]{1,40}$`).MatchString

func keysCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage signing keys stored in the home directory",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "new <name>",
			Short: "Generate a new key",
			Long: `Generate a new ed25519 key and store it in the keygen JSON format.

This command fails if a key with the same name already exists.`,
			Args: cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				key, err := solana.NewRandomPrivateKey()
				if err != nil {
					return fmt.Errorf("cannot generate key: %s", err)
				}
				path, err := e.keyPath(args[0])
				if err != nil {
					return err
				}
				if err := writeKeyFile(path, key); err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), key.PublicKey())
				return err
			},
		},
		&cobra.Command{
			Use:   "show <name>",
			Short: "Print the address of a key",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				key, err := e.loadKey(args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), key.PublicKey())
				return err
			},
		},
	)
	return cmd
}

func (e *env) keyPath(name string) (string, error) {
	if !isKeyName(name) {
		return "", fmt.Errorf("invalid key name %q", name)
	}
	return filepath.Join(e.home(), "keys", name+".json"), nil
}

// loadKey reads a key by name from the home directory, or from a path when
// the value is not a key name.
func (e *env) loadKey(nameOrPath string) (solana.PrivateKey, error) {
	path := nameOrPath
	if isKeyName(nameOrPath) {
		path, _ = e.keyPath(nameOrPath)
	}
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read key %q: %s", nameOrPath, err)
	}
	return key, nil
}

// signer returns the key named by the --key flag.
func (e *env) signer() (solana.PrivateKey, error) {
	name := e.v.GetString(flagKey)
	if name == "" {
		return nil, fmt.Errorf("--%s is required", flagKey)
	}
	return e.loadKey(name)
}

// writeKeyFile stores the key as a JSON array of bytes. An existing file is
// never overwritten.
func writeKeyFile(path string, key solana.PrivateKey) error {
	ints := make([]int, len(key))
	for i, b := range key {
		ints[i] = int(b)
	}
	raw, err := json.Marshal(ints)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("cannot create key directory: %s", err)
	}
	fd, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("key file %q already exists, delete this file and try again", path)
		}
		return fmt.Errorf("cannot create key file: %s", err)
	}
	defer fd.Close()

	if _, err := fd.Write(raw); err != nil {
		return fmt.Errorf("cannot write key: %s", err)
	}
	return fd.Close()
}
