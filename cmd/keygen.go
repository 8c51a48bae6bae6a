package cmd

import (
	"fmt"

	"scene-sync/core/crypto"

	"github.com/spf13/cobra"
)

var keyBits int

// keygenCmd represents the keygen command
var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a room key",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := crypto.GenerateKey(keyBits)
		if err != nil {
			return err
		}
		fmt.Println(key)
		return nil
	},
}

func init() {
	keygenCmd.Flags().IntVar(&keyBits, "bits", crypto.DefaultKeyBits, "Key size in bits (128, 192 or 256)")
	RootCmd.AddCommand(keygenCmd)
}
