package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scrt-labs/secret-sdk-go/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate or inspect the X25519 encryption identity",
}

var seedGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a fresh random seed and print its derived keypair",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := seed.Generate()
		cobra.CheckErr(err)
		printKeyPair(s)
	},
}

var seedShowCmd = &cobra.Command{
	Use:   "show <hex-seed>",
	Short: "Print the keypair derived from a hex-encoded 32-byte seed",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		raw, err := hex.DecodeString(args[0])
		cobra.CheckErr(err)
		s, err := seed.New(raw)
		cobra.CheckErr(err)
		printKeyPair(s)
	},
}

func printKeyPair(s seed.Seed) {
	kp, err := seed.KeyPairFromSeed(s)
	cobra.CheckErr(err)
	fmt.Printf("seed:        %s\n", hex.EncodeToString(s[:]))
	fmt.Printf("private key: %s\n", hex.EncodeToString(kp.Priv[:]))
	fmt.Printf("public key:  %s\n", hex.EncodeToString(kp.Pub[:]))
}

func init() {
	seedCmd.AddCommand(seedGenerateCmd)
	seedCmd.AddCommand(seedShowCmd)
}
