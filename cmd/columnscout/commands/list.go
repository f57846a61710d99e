/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: list.go
Description: The plugins and locales commands.
*/

package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kleascm/columnscout/pkg/locale"
	"github.com/kleascm/columnscout/pkg/plugins"
)

// RunPlugins lists the semantic types in detection order
func RunPlugins(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("plugins")
	threshold, _ := cmd.Flags().GetInt("plugin-threshold")
	if threshold == 0 {
		threshold = plugins.DefaultThreshold
	}
	registry, err := LoadRegistry(path)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "QUALIFIER\tPRIORITY\tTHRESHOLD\tBASE TYPES\tREGEXP")
	for _, p := range registry.Plugins() {
		bases := make([]string, len(p.BaseTypes()))
		for i, b := range p.BaseTypes() {
			bases[i] = b.String()
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n",
			p.Qualifier(), p.Priority(), plugins.Threshold(p, threshold),
			strings.Join(bases, ","), p.RegExp())
	}
	return tw.Flush()
}

// RunLocales lists the locales and their conventions
func RunLocales(cmd *cobra.Command, args []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LOCALE\tDECIMAL\tGROUPING\tMINUS\tDATE ORDER\tYES\tNO")
	for _, tag := range locale.Available() {
		ctx, err := locale.Get(tag)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%q\t%q\t%q\t%s\t%s\t%s\n",
			ctx.Name, ctx.DecimalSeparator, ctx.GroupingSeparator, ctx.MinusSign,
			ctx.DateOrder, strings.Join(ctx.YesWords, ","), strings.Join(ctx.NoWords, ","))
	}
	return tw.Flush()
}
