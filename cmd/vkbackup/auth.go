package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"vkbackup/pkg/auth"
	"vkbackup/pkg/ui"
)

// authCmd represents the auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage stored VK and Yandex Disk tokens",
	Long: `Manage stored tokens securely.

Tokens are stored using:
  - System keychain (when available)
  - Encrypted file with PBKDF2 key derivation
  - Environment variables (VKBACKUP_VK_TOKEN, VKBACKUP_DISK_TOKEN, read only)

Never share your tokens or config files!`,
}

// loginCmd represents the auth login command
var loginCmd = &cobra.Command{
	Use:   "login [name]",
	Short: "Store a VK token and a Yandex Disk token",
	Long: `Store a named pair of tokens in the system keychain or an encrypted file.

The account is called "default" unless a name is given. The default account
is used by backups that do not pass --account.

You will be prompted for:
  - VK access token (hidden)
  - Yandex Disk OAuth token (hidden)

Either token may be left blank to keep supplying it another way.`,
	Example: `  # Store the default account
  vkbackup auth login

  # Store a second account
  vkbackup auth login work`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

// logoutCmd represents the auth logout command
var logoutCmd = &cobra.Command{
	Use:   "logout [name]",
	Short: "Remove stored tokens",
	Long:  `Remove a stored account. Without a name the default account is removed.`,
	Example: `  vkbackup auth logout
  vkbackup auth logout work`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogout,
}

// listCmd represents the auth list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored accounts",
	Long:  `List all stored accounts with masked token information.`,
	RunE:  runList,
}

// guideCmd represents the auth guide command
var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Show how to obtain the tokens",
	Run: func(cmd *cobra.Command, args []string) {
		auth.ShowTokenGuide(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(listCmd)
	authCmd.AddCommand(guideCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	manager, err := auth.NewManager()
	if err != nil {
		return fmt.Errorf("failed to initialize credential manager: %w", err)
	}

	name := auth.DefaultAccountName
	if len(args) > 0 {
		name = strings.TrimSpace(args[0])
	}

	out := ui.Output()
	prompter := ui.NewPrompter(os.Stdin, out)

	auth.ShowQuickTokenGuide(out)
	fmt.Fprintln(out)

	if existing, _ := manager.Retrieve(name); existing != nil {
		answer, err := prompter.ReadLine(fmt.Sprintf("Account '%s' already exists. Update tokens? (y/N): ", name))
		if err != nil {
			return err
		}
		if !strings.HasPrefix(strings.ToLower(answer), "y") {
			return nil
		}
	}

	vkToken, err := readToken(prompter, "VK access token: ")
	if err != nil {
		return err
	}
	diskToken, err := readToken(prompter, "Yandex Disk token: ")
	if err != nil {
		return err
	}

	account := &auth.Account{
		Name:         name,
		VKToken:      vkToken,
		DiskToken:    diskToken,
		LastModified: time.Now(),
	}
	if err := manager.Store(account); err != nil {
		return fmt.Errorf("failed to store credentials: %w", err)
	}

	ui.PrintSuccess(fmt.Sprintf("Account saved: %s", name))
	if name != auth.DefaultAccountName {
		fmt.Fprintf(out, "\nUse it with:\n  $ vkbackup --account %s\n", name)
	}
	return nil
}

// readToken reads a token, showing the full guide when the answer is "help"
func readToken(p *ui.Prompter, prompt string) (string, error) {
	for {
		token, err := p.ReadSecret(prompt)
		if err != nil {
			return "", err
		}
		if strings.EqualFold(token, "help") {
			auth.ShowTokenGuide(ui.Output())
			continue
		}
		return token, nil
	}
}

func runLogout(cmd *cobra.Command, args []string) error {
	manager, err := auth.NewManager()
	if err != nil {
		return fmt.Errorf("failed to initialize credential manager: %w", err)
	}

	name := auth.DefaultAccountName
	if len(args) > 0 {
		name = args[0]
	}

	if err := manager.Delete(name); err != nil {
		return fmt.Errorf("failed to remove account: %w", err)
	}
	ui.PrintSuccess("Account removed: " + name)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	manager, err := auth.NewManager()
	if err != nil {
		return fmt.Errorf("failed to initialize credential manager: %w", err)
	}

	accounts, err := manager.List()
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}

	if len(accounts) == 0 {
		ui.PrintInfo("No stored accounts", "Use 'vkbackup auth login' to add an account")
		return nil
	}

	ui.PrintHighlight("Stored Accounts")
	out := ui.Output()
	fmt.Fprintln(out)

	for i, account := range accounts {
		sanitized := auth.SanitizeAccount(account)
		fmt.Fprintf(out, "%d. Name: %s\n", i+1, sanitized.Name)
		fmt.Fprintf(out, "   VK Token: %s\n", orNone(sanitized.VKToken))
		fmt.Fprintf(out, "   Disk Token: %s\n", orNone(sanitized.DiskToken))
		fmt.Fprintf(out, "   Last Modified: %s\n", sanitized.LastModified.Format("2006-01-02 15:04:05"))
		fmt.Fprintln(out)
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
