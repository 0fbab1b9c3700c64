package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"gradelint/internal/check"
)

var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "List registered checks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}
		group, err := cmd.Flags().GetString("group")
		if err != nil {
			return fmt.Errorf("failed to get group flag: %w", err)
		}
		defs := check.All()
		if group != "" {
			defs = check.ByGroup(group)
		}
		switch strings.ToLower(format) {
		case "text":
			return renderChecksText(cmd.OutOrStdout(), defs)
		case "json":
			return renderChecksJSON(cmd.OutOrStdout(), defs)
		default:
			return fmt.Errorf("unsupported format %q (must be text or json)", format)
		}
	},
}

func init() {
	checksCmd.Flags().String("format", "text", "output format (text|json)")
	checksCmd.Flags().String("group", "", "only list checks of this group")
}

type checkInfo struct {
	Name        string   `json:"name"`
	Group       string   `json:"group"`
	Kinds       []string `json:"kinds"`
	MaxProblems int      `json:"max_problems"`
	Description string   `json:"description"`
}

func describeCheck(d check.Def) checkInfo {
	kinds := make([]string, 0, len(d.Kinds))
	for _, k := range d.Kinds {
		kinds = append(kinds, k.ID())
	}
	return checkInfo{
		Name:        d.Name,
		Group:       d.Group,
		Kinds:       kinds,
		MaxProblems: d.MaxProblems,
		Description: d.Description,
	}
}

func renderChecksText(out io.Writer, defs []check.Def) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tGROUP\tKINDS\tCAP\tDESCRIPTION")
	for _, d := range defs {
		info := describeCheck(d)
		limit := "-"
		if info.MaxProblems != check.Unlimited {
			limit = strconv.Itoa(info.MaxProblems)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", info.Name, info.Group, strings.Join(info.Kinds, ","), limit, info.Description)
	}
	return tw.Flush()
}

func renderChecksJSON(out io.Writer, defs []check.Def) error {
	infos := make([]checkInfo, 0, len(defs))
	for _, d := range defs {
		infos = append(infos, describeCheck(d))
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(infos)
}
