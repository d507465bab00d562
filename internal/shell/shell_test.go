package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcrodman/konami/internal/konami"
)

const (
	actionPrompt  = "Do you want to encrypt or decrypt? "
	keyPrompt     = "Enter your key: "
	invalidAction = "Please enter either encrypt or decrypt\n"
	zeroKey       = "^^vv<><>baStart"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.DebugLevel)
	return logger
}

func runShell(t *testing.T, input string, opts ...Option) string {
	t.Helper()
	var out bytes.Buffer
	s := New(strings.NewReader(input), &out, testLogger(), opts...)
	require.NoError(t, s.Run(context.Background()))
	return out.String()
}

func TestShell_Encrypt(t *testing.T) {
	encrypted, err := konami.Encrypt([]byte("hi"), ">>abStart")
	require.NoError(t, err)

	got := runShell(t, "bogus\nENCRYPT\nhi\n>>abStart\n")

	want := actionPrompt + invalidAction +
		actionPrompt + "Enter the message you would like to encrypt: " + keyPrompt +
		"Output: " + encrypted + "\n\n" +
		actionPrompt
	assert.Equal(t, want, got)
}

func TestShell_Decrypt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "round trip",
			input: "decrypt\n" + mustEncrypt(t, "The quick brown fox", ">>abStart<<abStart") + "\n>>abStart<<abStart\n",
			want:  "Output: The quick brown fox\n\n",
		},
		{
			name:  "bytes above ascii",
			input: "Decrypt\n" + konami.Encode(233) + "\n" + zeroKey + "\n",
			want:  "Output: é\n\n",
		},
		{
			name:  "trailing whitespace and no final newline",
			input: "decrypt  \r\n" + konami.Encode('A') + " \r\n" + zeroKey,
			want:  "Output: A\n\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runShell(t, tt.input)
			assert.True(t, strings.HasSuffix(got, tt.want+actionPrompt), "unexpected output %q", got)
		})
	}
}

func TestShell_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty key",
			input: "encrypt\nhello\n\n",
			want:  "Error calculating output: " + konami.ErrEmptyInput.Error() + "\n\n",
		},
		{
			name:  "malformed ciphertext",
			input: "decrypt\n>>abStart?\n" + zeroKey + "\n",
			want:  "Error calculating output: konami: unexpected character '?' at position 9\n\n",
		},
		{
			name:  "too many repeats in key",
			input: "encrypt\nhello\n^^^^^\n",
			want:  "Error calculating output: konami: too many repeated up/down tokens at position 4\n\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runShell(t, tt.input)
			assert.True(t, strings.HasSuffix(got, tt.want+actionPrompt), "unexpected output %q", got)
		})
	}
}

type countingSource struct {
	calls int
}

func (c *countingSource) Offsets(key string) ([]byte, error) {
	c.calls++
	return konami.DecodeKey(key)
}

func TestShell_OffsetSource(t *testing.T) {
	src := &countingSource{}
	input := "encrypt\na\n" + zeroKey + "\nencrypt\nb\n" + zeroKey + "\n"

	got := runShell(t, input, WithOffsetSource(src), WithOffsetDump(true))

	assert.Equal(t, 2, src.calls)
	assert.Equal(t, 2, strings.Count(got, "Output: "))
}

func TestShell_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := New(strings.NewReader("encrypt\n"), &out, testLogger()).Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, "", out.String())
}

func TestShell_CancelledWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- New(pr, io.Discard, testLogger()).Run(ctx)
	}()

	// Write returns once the shell has read the line, after which it waits
	// for a message that never comes.
	if _, err := pw.Write([]byte("encrypt\n")); err != nil {
		t.Fatal(err)
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() want = %v, got = %v", context.Canceled, err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() kept waiting for input after the context was cancelled")
	}
}

func TestShell_EmptyInput(t *testing.T) {
	assert.Equal(t, actionPrompt, runShell(t, ""))
}

func TestParseAction(t *testing.T) {
	s := New(strings.NewReader(""), io.Discard, testLogger())
	tests := []struct {
		inp    string
		want   Action
		wantOK bool
	}{
		{"encrypt", Encrypt, true},
		{"EnCrYpT", Encrypt, true},
		{"DECRYPT", Decrypt, true},
		{"", "", false},
		{"encrypt please", "", false},
	}
	for _, tt := range tests {
		got, ok := s.parseAction(tt.inp)
		assert.Equal(t, tt.wantOK, ok, "parseAction(%q)", tt.inp)
		assert.Equal(t, tt.want, got, "parseAction(%q)", tt.inp)
	}
}

func mustEncrypt(t *testing.T, message, key string) string {
	t.Helper()
	encrypted, err := konami.Encrypt([]byte(message), key)
	require.NoError(t, err)
	return encrypted
}
