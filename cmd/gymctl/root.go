package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aussiebroadwan/gymtab/pkg/gymsdk"
	"github.com/aussiebroadwan/gymtab/pkg/slogx"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cli is the state shared by every subcommand.
type cli struct {
	v      *viper.Viper
	logger *slog.Logger
}

func newRootCommand() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:           "gymctl",
		Short:         "Administer a gymtab membership service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if c.v.GetBool("verbose") {
				level = "debug"
			}
			c.logger = slogx.New(slogx.Config{
				Service: "gymctl",
				Level:   level,
				Format:  "text",
				Output:  cmd.ErrOrStderr(),
			})
		},
	}

	flags := root.PersistentFlags()
	flags.String("url", "http://localhost:8080", "gymd base URL (env GYM_URL)")
	flags.String("token", "", "bearer token for the API (env GYM_TOKEN)")
	flags.BoolP("verbose", "v", false, "log requests to stderr")

	c.v.SetEnvPrefix("GYM")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
	_ = c.v.BindPFlag("url", flags.Lookup("url"))
	_ = c.v.BindPFlag("token", flags.Lookup("token"))
	_ = c.v.BindPFlag("verbose", flags.Lookup("verbose"))

	root.AddCommand(
		newTokenCommand(c),
		newMemberCommand(c),
		newPaymentCommand(c),
		newCheckInCommand(c),
		newSettingsCommand(c),
		newSweepCommand(c),
		newQRCommand(c),
	)
	return root
}

// session builds an API session from --url and --token.
func (c *cli) session() (*gymsdk.Session, error) {
	token := c.v.GetString("token")
	if token == "" {
		return nil, fmt.Errorf("no token: pass --token or set GYM_TOKEN (see gymctl token mint)")
	}
	url := c.v.GetString("url")
	c.logger.Debug("using gymd", "url", url)

	client := gymsdk.NewSDKClient(url)
	// The server is the authority on scopes.
	client.CheckScopes = false
	return client.NewSession(token), nil
}

// printJSON writes v indented so output can be piped into jq.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeFileOrStdout(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
