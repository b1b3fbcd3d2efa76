package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/Veraticus/askarray/internal/cli"
	"github.com/Veraticus/askarray/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with external services",
	}

	cmd.AddCommand(authSheetsCmd())

	return cmd
}

func authSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Authenticate with Google Sheets",
		Long: `Authenticate with Google Sheets using OAuth2.

This command will:
1. Open your browser to authenticate with Google
2. Save the token next to your config
3. Print the refresh token, or store it in your config with --save-config

You'll need to run this once to set up Google Sheets export.`,
		RunE: runAuthSheets,
	}

	cmd.Flags().String("client-id", "", "OAuth2 Client ID (overrides config)")
	cmd.Flags().String("client-secret", "", "OAuth2 Client Secret (overrides config)")
	cmd.Flags().String("addr", sheets.DefaultCallbackAddr, "local address for the OAuth2 callback")
	cmd.Flags().Bool("save-config", false, "write the refresh token to the config file")
	cmd.Flags().Bool("no-browser", false, "print the consent URL instead of opening a browser")

	return cmd
}

func runAuthSheets(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	clientID := viper.GetString("sheets.client_id")
	clientSecret := viper.GetString("sheets.client_secret")

	if flagID, _ := cmd.Flags().GetString("client-id"); flagID != "" {
		clientID = flagID
	}
	if flagSecret, _ := cmd.Flags().GetString("client-secret"); flagSecret != "" {
		clientSecret = flagSecret
	}

	if clientID == "" {
		clientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if clientSecret == "" {
		clientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}

	if clientID == "" || clientSecret == "" {
		return fmt.Errorf("OAuth2 credentials not found. Please set sheets.client_id and sheets.client_secret in config or use --client-id and --client-secret flags")
	}

	dir, err := configDir()
	if err != nil {
		return err
	}
	tokenFile := filepath.Join(dir, "sheets-token.json")
	addr, _ := cmd.Flags().GetString("addr")
	noBrowser, _ := cmd.Flags().GetBool("no-browser")

	slog.Info("Starting Google Sheets authentication", "token_file", tokenFile)

	token, err := sheets.AuthenticateOAuth2Interactive(ctx, sheets.OAuth2Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenFile:    tokenFile,
		CallbackAddr: addr,
	}, func(url string) {
		_, _ = fmt.Fprintln(out, cli.FormatInfo("Open this URL to grant access:"))
		_, _ = fmt.Fprintln(out, url)
		if !noBrowser {
			openBrowser(url)
		}
	})
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	if token.RefreshToken == "" {
		return fmt.Errorf("google did not return a refresh token; revoke the app's access and try again")
	}

	if save, _ := cmd.Flags().GetBool("save-config"); save {
		viper.Set("sheets.client_id", clientID)
		viper.Set("sheets.client_secret", clientSecret)
		viper.Set("sheets.refresh_token", token.RefreshToken)
		if err := saveConfig(); err != nil {
			slog.Warn("Failed to update config file with refresh token", "error", err)
		} else {
			_, _ = fmt.Fprintln(out, cli.FormatSuccess("Updated config file with refresh token"))
			return nil
		}
	}

	_, err = fmt.Fprintf(out, "%s\nAdd this to your config.yaml:\n\nsheets:\n  refresh_token: %q\n",
		cli.FormatSuccess("Authentication successful!"), token.RefreshToken)
	return err
}

// openBrowser tries to open the URL in the default browser.
func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start() //nolint:gosec
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start() //nolint:gosec
	case "darwin":
		err = exec.Command("open", url).Start() //nolint:gosec
	}
	if err != nil {
		slog.Debug("Failed to open browser", "error", err)
	}
}
