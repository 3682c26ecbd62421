package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/podium/pkg/settings"
)

// store returns the settings store selected by --config.
func (c *CLI) store() (*settings.Store, error) {
	return settings.NewStore(c.settingsPath)
}

// loadSettings reads the settings file, falling back to defaults when it
// is missing.
func (c *CLI) loadSettings() (settings.Settings, error) {
	st, err := c.store()
	if err != nil {
		return settings.Settings{}, err
	}
	s, err := st.Load()
	if err != nil {
		return settings.Settings{}, err
	}
	c.Logger.Debug("settings loaded", "path", st.Path)
	return s, nil
}

// saveSettings writes s to the settings store.
func (c *CLI) saveSettings(s settings.Settings) error {
	st, err := c.store()
	if err != nil {
		return err
	}
	return st.Save(s)
}

// settingsCommand creates the settings management command.
func (c *CLI) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or reset the persisted settings",
	}

	cmd.AddCommand(c.settingsShowCommand())
	cmd.AddCommand(c.settingsPathCommand())
	cmd.AddCommand(c.settingsResetCommand())

	return cmd
}

// settingsShowCommand creates the "settings show" subcommand.
func (c *CLI) settingsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.loadSettings()
			if err != nil {
				return err
			}
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(s)
		},
	}
}

// settingsPathCommand creates the "settings path" subcommand.
func (c *CLI) settingsPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.store()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), st.Path)
			return nil
		},
	}
}

// settingsResetCommand creates the "settings reset" subcommand.
func (c *CLI) settingsResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Overwrite the settings file with the defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.store()
			if err != nil {
				return err
			}
			if _, err := os.Stat(st.Path); os.IsNotExist(err) {
				printInfo("No settings file, defaults already in effect")
			}
			if err := st.Save(settings.Default()); err != nil {
				return err
			}
			printSuccess("Settings reset")
			printFile(st.Path)
			return nil
		},
	}
}
