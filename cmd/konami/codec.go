package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dcrodman/konami/internal/konami"
)

const textFlagUsage = "Treat the input as raw text instead of decimal byte values"

func newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [byte...]",
		Short: "Encodes byte values (0-255) as a token string",
		Args:  cobra.MinimumNArgs(1),
		RunE:  EncodeCommand,
	}
	cmd.Flags().BoolP("text", "t", false, textFlagUsage)
	return cmd
}

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [tokens]",
		Short: "Decodes a token string into byte values",
		Long:  "Decodes a token string into byte values. The tokens are read from stdin when not passed as an argument.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  DecodeCommand,
	}
	cmd.Flags().BoolP("text", "t", false, textFlagUsage)
	return cmd
}

func EncodeCommand(cmd *cobra.Command, args []string) error {
	text, err := cmd.Flags().GetBool("text")
	if err != nil {
		return err
	}

	var data []byte
	if text {
		data = []byte(strings.Join(args, " "))
	} else {
		for _, arg := range args {
			b, err := strconv.ParseUint(arg, 10, 8)
			if err != nil {
				return fmt.Errorf("invalid byte value %q: must be between 0 and 255", arg)
			}
			data = append(data, byte(b))
		}
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), konami.EncodeBytes(data))
	return err
}

func DecodeCommand(cmd *cobra.Command, args []string) error {
	text, err := cmd.Flags().GetBool("text")
	if err != nil {
		return err
	}
	input, err := argOrStdin(cmd, args)
	if err != nil {
		return err
	}

	decoded, err := konami.Decode(input)
	if err != nil {
		return fmt.Errorf("decoding: %w", err)
	}

	out := cmd.OutOrStdout()
	if text {
		if _, err := out.Write(decoded); err != nil {
			return err
		}
		_, err = fmt.Fprintln(out)
		return err
	}

	values := make([]string, len(decoded))
	for i, b := range decoded {
		values[i] = strconv.Itoa(int(b))
	}
	_, err = fmt.Fprintln(out, strings.Join(values, " "))
	return err
}
