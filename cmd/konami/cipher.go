package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dcrodman/konami/internal/konami"
)

func newEncryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt [message]",
		Short: "Encrypts a message into a token string",
		Long:  "Encrypts a message into a token string. The message is read from stdin when not passed as an argument.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  EncryptCommand,
	}
	cmd.Flags().StringP("key", "k", "", "Token string key (defaults to default_key from the config)")
	return cmd
}

func newDecryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrypt [ciphertext]",
		Short: "Decrypts a token string",
		Long:  "Decrypts a token string and writes the raw bytes. The ciphertext is read from stdin when not passed as an argument.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  DecryptCommand,
	}
	cmd.Flags().StringP("key", "k", "", "Token string key (defaults to default_key from the config)")
	return cmd
}

func EncryptCommand(cmd *cobra.Command, args []string) error {
	key, input, closeLog, err := cipherArgs(cmd, args)
	if err != nil {
		return err
	}
	defer closeLog()

	encrypted, err := konami.Encrypt([]byte(input), key)
	if err != nil {
		return fmt.Errorf("encrypting: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), encrypted)
	return err
}

func DecryptCommand(cmd *cobra.Command, args []string) error {
	key, input, closeLog, err := cipherArgs(cmd, args)
	if err != nil {
		return err
	}
	defer closeLog()

	decrypted, err := konami.Decrypt(input, key)
	if err != nil {
		return fmt.Errorf("decrypting: %w", err)
	}
	out := cmd.OutOrStdout()
	if _, err := out.Write(decrypted); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out)
	return err
}

// cipherArgs resolves the key and the text to operate on for the one-shot
// cipher commands. On success the caller owns closing the log.
func cipherArgs(cmd *cobra.Command, args []string) (string, string, func() error, error) {
	cfg, logger, closeLog, err := setup(cmd)
	if err != nil {
		return "", "", nil, err
	}

	key, err := cmd.Flags().GetString("key")
	if err != nil {
		closeLog()
		return "", "", nil, err
	}
	if key == "" {
		key = cfg.DefaultKey
		logger.Debug("using default key from config")
	}

	input, err := argOrStdin(cmd, args)
	if err != nil {
		closeLog()
		return "", "", nil, err
	}
	return key, input, closeLog, nil
}

// argOrStdin returns the first argument or, without one, everything on stdin
// minus the final line ending.
func argOrStdin(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	s := strings.TrimSuffix(string(b), "\n")
	return strings.TrimSuffix(s, "\r"), nil
}
