package main

import (
	"fmt"

	"vigcrack/internal/cipher"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runEncrypt(cmd *cobra.Command, args []string) error {
	key := args[0]
	if key == "" {
		return fmt.Errorf("key must not be empty")
	}
	for _, r := range key {
		if !cipher.IsLetter(r) {
			return fmt.Errorf("invalid key %q: only letters A-Z are allowed", key)
		}
	}

	logger.Debug("Encrypting", zap.Int("key_length", len(key)), zap.Int("text_len", len(args[1])))
	fmt.Fprintln(cmd.OutOrStdout(), cipher.Encrypt(key, args[1]))
	return nil
}
