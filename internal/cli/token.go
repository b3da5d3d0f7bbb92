package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/issue-battleships/internal/services/auth"
)

// TokenPrefix marks generated API tokens
const TokenPrefix = "bsk_"

func newHashTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-token [token]",
		Short: "Hash an API token for API_TOKEN_HASH",
		Long: `Print the bcrypt hash to configure as API_TOKEN_HASH on the server.

With no argument a new random token is generated and printed with its hash.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result TokenResult
			token := ""
			if len(args) == 1 {
				token = args[0]
			} else {
				token = auth.GenerateToken(TokenPrefix)
				result.Token = token
			}

			hash, err := auth.HashToken(token)
			if err != nil {
				return err
			}
			result.Hash = hash

			newOutput(cmd).Print(result)
			return nil
		},
	}
}
