package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mume-dayo/kato-daikou/internal/interaction"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the slash commands registered at startup",
	Run: func(cmd *cobra.Command, args []string) {
		printHeader(cmd, "📋 Slash Commands")
		out := cmd.OutOrStdout()
		for _, c := range interaction.Commands() {
			fmt.Fprintf(out, "%s  %s\n", color.GreenString("/"+c.Name), c.Description)
			for _, o := range c.Options {
				fmt.Fprintf(out, "    %-12s %-8s %s\n", o.Name, optionSummary(o), o.Description)
			}
		}
	},
}

func optionSummary(o interaction.OptionDescriptor) string {
	var b strings.Builder
	if o.Type == interaction.OptionInteger {
		b.WriteString("int")
	} else {
		b.WriteString("string")
	}
	if o.MinValue != nil || o.MaxValue != nil {
		b.WriteString("[")
		if o.MinValue != nil {
			fmt.Fprintf(&b, "%d", *o.MinValue)
		}
		b.WriteString("..")
		if o.MaxValue != nil {
			fmt.Fprintf(&b, "%d", *o.MaxValue)
		}
		b.WriteString("]")
	}
	if !o.Required {
		b.WriteString("?")
	}
	return b.String()
}
