package main

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/x/offer"
	"github.com/tokenswap/swapper/x/token"
)

func makeOfferCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "make-offer",
		Short: "Escrow tokens of mint A in exchange for tokens of mint B",
		Long: `Escrow the offered amount of mint A, held by the signing key, in a vault
owned by a new offer. Anyone paying the wanted amount of mint B to the
maker can settle it.

When no id is given a random one is chosen. The id together with the
maker identifies the offer.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := e.signer()
			if err != nil {
				return err
			}
			mintA, err := e.address(flagMintA)
			if err != nil {
				return err
			}
			mintB, err := e.address(flagMintB)
			if err != nil {
				return err
			}
			id := e.v.GetUint64(flagID)
			if id == 0 {
				if id, err = randomID(); err != nil {
					return err
				}
			}

			c, closeFn, err := e.openClient()
			if err != nil {
				return err
			}
			defer closeFn()

			addr, err := c.MakeOffer(context.Background(), key, mintA, mintB, id,
				e.v.GetUint64(flagOffered), e.v.GetUint64(flagWanted))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "offer %s id %d\n", addr, id)
			return err
		},
	}
	cmd.Flags().String(flagKey, "", "name of, or path to, the maker key")
	cmd.Flags().String(flagMintA, "", "mint of the offered tokens")
	cmd.Flags().String(flagMintB, "", "mint of the wanted tokens")
	cmd.Flags().Uint64(flagID, 0, "offer id, random if not set")
	cmd.Flags().Uint64(flagOffered, 0, "amount of mint A to escrow")
	cmd.Flags().Uint64(flagWanted, 0, "amount of mint B wanted in exchange")
	return cmd
}

func randomID() (uint64, error) {
	var raw [8]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return 0, fmt.Errorf("cannot generate offer id: %s", err)
	}
	return binary.LittleEndian.Uint64(raw[:]), nil
}

func takeOfferCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "take-offer",
		Short: "Settle an open offer",
		Long: `Pay the wanted amount of mint B to the maker and receive the escrowed
tokens of mint A. Missing token accounts of the taker and the maker are
created and paid for by the signing key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := e.signer()
			if err != nil {
				return err
			}
			o, err := e.offerFlags()
			if err != nil {
				return err
			}

			c, closeFn, err := e.openClient()
			if err != nil {
				return err
			}
			defer closeFn()

			if err := c.TakeOffer(context.Background(), key, o.maker, o.mintA, o.mintB, o.id); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "offer %d of %s settled\n", o.id, o.maker)
			return err
		},
	}
	cmd.Flags().String(flagKey, "", "name of, or path to, the taker key")
	addOfferFlags(cmd)
	return cmd
}

func offersCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "offers",
		Short: "List open offers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				filter offer.Filter
				err    error
			)
			if filter.Maker, err = e.optionalAddress(flagMaker); err != nil {
				return err
			}
			if filter.TokenMintA, err = e.optionalAddress(flagMintA); err != nil {
				return err
			}
			if filter.TokenMintB, err = e.optionalAddress(flagMintB); err != nil {
				return err
			}
			filter.WantedAmountB = e.v.GetUint64(flagWanted)

			c, closeFn, err := e.openClient()
			if err != nil {
				return err
			}
			defer closeFn()

			offers, err := c.FindOffers(context.Background(), filter)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), offers)
		},
	}
	cmd.Flags().String(flagMaker, "", "only offers of this maker")
	cmd.Flags().String(flagMintA, "", "only offers escrowing this mint")
	cmd.Flags().String(flagMintB, "", "only offers wanting this mint")
	cmd.Flags().Uint64(flagWanted, 0, "only offers wanting exactly this amount")
	return cmd
}

func inspectCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the balances a settlement of an offer would touch",
		Long: `Show whether an offer is open, together with the balances of the vault,
the taker's accounts of both mints and the maker's account of mint B.
Nothing is modified.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			taker, err := e.address(flagTaker)
			if err != nil {
				return err
			}
			o, err := e.offerFlags()
			if err != nil {
				return err
			}

			c, closeFn, err := e.openClient()
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := c.Inspect(context.Background(), taker, o.maker, o.mintA, o.mintB, o.id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().String(flagTaker, "", "taker address or key name")
	addOfferFlags(cmd)
	return cmd
}

func deriveCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Print the addresses of an offer and its vault",
		Long: `Print the offer address derived from the program, the maker and the id,
and, when mint A is given, the address of the vault. No ledger is needed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := solana.PublicKeyFromBase58(e.v.GetString(flagProgram))
			if err != nil {
				return fmt.Errorf("--%s: %s", flagProgram, err)
			}
			maker, err := e.address(flagMaker)
			if err != nil {
				return err
			}
			id := e.v.GetUint64(flagID)
			addr, bump, err := offer.DeriveOfferAddress(program, maker, id)
			if err != nil {
				return err
			}
			res := derived{Offer: addr.String(), Bump: bump}

			mintA, err := e.optionalAddress(flagMintA)
			if err != nil {
				return err
			}
			if !mintA.IsZero() {
				vault, err := token.AssociatedAddress(addr, mintA)
				if err != nil {
					return err
				}
				res.Vault = vault.String()
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().String(flagProgram, offer.DefaultProgramID.String(), "program owning the offer")
	cmd.Flags().String(flagMaker, "", "maker address or key name")
	cmd.Flags().Uint64(flagID, 0, "offer id")
	cmd.Flags().String(flagMintA, "", "mint of the escrowed tokens")
	return cmd
}

type derived struct {
	Offer string `json:"offer"`
	Bump  uint8  `json:"bump"`
	Vault string `json:"vault,omitempty"`
}

// offerRef identifies an offer and the mints it trades.
type offerRef struct {
	maker, mintA, mintB swapper.Address
	id                  uint64
}

func addOfferFlags(cmd *cobra.Command) {
	cmd.Flags().String(flagMaker, "", "maker address or key name")
	cmd.Flags().String(flagMintA, "", "mint of the escrowed tokens")
	cmd.Flags().String(flagMintB, "", "mint of the wanted tokens")
	cmd.Flags().Uint64(flagID, 0, "offer id")
}

func (e *env) offerFlags() (offerRef, error) {
	var (
		ref offerRef
		err error
	)
	if ref.maker, err = e.address(flagMaker); err != nil {
		return ref, err
	}
	if ref.mintA, err = e.address(flagMintA); err != nil {
		return ref, err
	}
	if ref.mintB, err = e.address(flagMintB); err != nil {
		return ref, err
	}
	ref.id = e.v.GetUint64(flagID)
	return ref, nil
}
