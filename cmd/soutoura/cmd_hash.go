package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

// soutoura hash — generate the value for OWNER_PASSWORD_HASH so the
// plaintext owner password can be dropped from the environment.
var hashCmd = &cobra.Command{
	Use:   "hash <password>",
	Short: "Generate a bcrypt hash for OWNER_PASSWORD_HASH",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := bcrypt.GenerateFromPassword([]byte(args[0]), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		fmt.Println(string(h))
		return nil
	},
}
