package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/catalog"
	"github.com/s0up4200/marquee/credentials"
)

var (
	username  string
	email     string
	firstName string
	lastName  string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store API tokens",
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget stored API tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sess.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user and token expiry",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVarP(&username, "username", "u", "", "account username")

	registerCmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	registerCmd.Flags().StringVar(&email, "email", "", "account email")
	registerCmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	registerCmd.Flags().StringVar(&lastName, "last-name", "", "last name")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}

func readUsername() (string, error) {
	if username != "" {
		return username, nil
	}
	name, err := prompt("Username: ")
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", fmt.Errorf("username is required")
	}
	return name, nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	name, err := readUsername()
	if err != nil {
		return err
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	if err := sess.Login(commandContext(cmd), name, password); err != nil {
		return err
	}
	fmt.Printf("Logged in as %s.\n", name)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	name, err := readUsername()
	if err != nil {
		return err
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	result, err := sess.Register(commandContext(cmd), catalog.Registration{
		Username:  name,
		Password:  password,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Registered and logged in as %s.\n", result.User.Username)
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	token, ok := sess.Store().Access()
	if !ok {
		fmt.Println("Not logged in.")
		return nil
	}

	info, err := credentials.Inspect(token)
	if err != nil {
		return err
	}

	fmt.Printf("User ID: %s\n", info.UserID)
	if !info.ExpiresAt.IsZero() {
		state := "valid"
		if info.Expired(time.Now()) {
			state = "expired, renewed on next request"
		}
		fmt.Printf("Access token expires: %s (%s)\n", info.ExpiresAt.Local().Format(time.RFC1123), state)
	}
	if _, ok := sess.Store().Renewal(); !ok {
		fmt.Println("No renewal token stored; you will need to log in again when the access token expires.")
	}
	return nil
}
