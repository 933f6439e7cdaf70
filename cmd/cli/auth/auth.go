package auth

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/miky2184/chargeability-manager-api/cmd/cli/client"
	"github.com/miky2184/chargeability-manager-api/cmd/cli/config"
)

// Init registers auth-related CLI commands (login, register) on the root command.
func Init(rootCmd *cobra.Command) {
	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(registerCmd())
}

// loginCmd logs in with username/password and stores the bearer token locally.
func loginCmd() *cobra.Command {
	var username string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the Chargeability Manager API",
		Long:  "Authenticate with the API and store a bearer token for subsequent CLI commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return fmt.Errorf("username and password are required")
			}

			// /token takes form fields, not JSON.
			form := url.Values{}
			form.Set("username", username)
			form.Set("password", password)

			resp, err := http.Post(config.APIURL()+"/token",
				"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
			if err != nil {
				return fmt.Errorf("failed to login: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("login failed: status %d", resp.StatusCode)
			}

			var out struct {
				AccessToken string `json:"access_token"`
			}
			body, _ := io.ReadAll(resp.Body)
			if err := json.Unmarshal(body, &out); err != nil {
				return err
			}
			if out.AccessToken == "" {
				return fmt.Errorf("login succeeded but no token returned")
			}

			if err := config.SaveToken(out.AccessToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Println("Login successful. Token stored locally.")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username to authenticate as")
	cmd.Flags().StringVar(&password, "password", "", "Password")

	return cmd
}

// registerCmd creates a new user account.
func registerCmd() *cobra.Command {
	var username, email, password, fullName string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || email == "" || password == "" {
				return fmt.Errorf("username, email and password are required")
			}

			payload := map[string]any{
				"username": username,
				"email":    email,
				"password": password,
			}
			if fullName != "" {
				payload["full_name"] = fullName
			}

			var out struct {
				ID      int    `json:"id"`
				Message string `json:"message"`
			}
			if err := client.Do(http.MethodPost, "/register", payload, &out); err != nil {
				return fmt.Errorf("failed to register: %w", err)
			}

			fmt.Printf("Registered user %s (id %d)\n", username, out.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.Flags().StringVar(&fullName, "full-name", "", "Full name (optional)")

	return cmd
}
